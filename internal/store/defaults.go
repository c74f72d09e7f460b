package store

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// defaultRecords is the collection seeded into empty storage.
var defaultRecords = []types.Record{
	{
		ID:         "LNK-1",
		POPName:    "Barisal Robi",
		BTSName:    "Barisal Robi",
		ClientName: "Barishal Robi to Muladi BL",
		BaseIP:     "10.30.133.122",
		ClientIP:   "10.30.133.123",
		LoopbackIP: "10.30.133.222",
		Location:   "Muladi",
	},
	{
		ID:         "LNK-2",
		POPName:    "Bogura POP",
		BTSName:    "Bogura POP",
		ClientName: "Bogra POP to Kahalo BB",
		BaseIP:     "10.30.136.154",
		ClientIP:   "10.30.136.155",
		LoopbackIP: "118.179.187.130",
		Location:   "Kahalo BB",
	},
}

// DefaultRecords returns a copy of the built-in collection.
func DefaultRecords() []types.Record {
	out := make([]types.Record, len(defaultRecords))
	copy(out, defaultRecords)
	return out
}

// IDPrefix starts every generated link ID.
const IDPrefix = "LNK-"

// NewID generates a link ID for records added without one.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to a random v4 if the clock source fails.
		return IDPrefix + uuid.New().String()
	}
	return IDPrefix + id.String()
}
