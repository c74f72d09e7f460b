package types

import "strings"

// Field names, in header order. They double as the JSON keys of the
// persisted collection and the CSV header.
const (
	FieldID         = "Link_ID"
	FieldPOPName    = "POP_Name"
	FieldBTSName    = "BTS_Name"
	FieldClientName = "Client_Name"
	FieldBaseIP     = "Base_IP"
	FieldClientIP   = "Client_IP"
	FieldLoopbackIP = "Loopback_IP"
	FieldLocation   = "Location"
)

// Fields lists every record field in its fixed order.
var Fields = []string{
	FieldID,
	FieldPOPName,
	FieldBTSName,
	FieldClientName,
	FieldBaseIP,
	FieldClientIP,
	FieldLoopbackIP,
	FieldLocation,
}

// Record is one RF network link. Addresses are kept as entered; nothing
// parses or validates them.
type Record struct {
	// ID identifies the link and is unique within a collection.
	ID string `json:"Link_ID"`

	// POPName is the point of presence the link hangs off.
	POPName string `json:"POP_Name"`

	// BTSName is the base transceiver station.
	BTSName string `json:"BTS_Name"`

	// ClientName is a free-text label for the far end.
	ClientName string `json:"Client_Name"`

	BaseIP     string `json:"Base_IP"`
	ClientIP   string `json:"Client_IP"`
	LoopbackIP string `json:"Loopback_IP"` // Optional; empty when the link has none.

	Location string `json:"Location"`
}

// Values returns the field values in Fields order.
func (r Record) Values() []string {
	return []string{
		r.ID,
		r.POPName,
		r.BTSName,
		r.ClientName,
		r.BaseIP,
		r.ClientIP,
		r.LoopbackIP,
		r.Location,
	}
}

// Field returns the value stored under the given field name. The second
// result is false when name is not one of Fields.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return r.ID, true
	case FieldPOPName:
		return r.POPName, true
	case FieldBTSName:
		return r.BTSName, true
	case FieldClientName:
		return r.ClientName, true
	case FieldBaseIP:
		return r.BaseIP, true
	case FieldClientIP:
		return r.ClientIP, true
	case FieldLoopbackIP:
		return r.LoopbackIP, true
	case FieldLocation:
		return r.Location, true
	default:
		return "", false
	}
}

// SetField stores value under the given field name. It reports false and
// leaves the record untouched when name is not one of Fields.
func (r *Record) SetField(name, value string) bool {
	switch name {
	case FieldID:
		r.ID = value
	case FieldPOPName:
		r.POPName = value
	case FieldBTSName:
		r.BTSName = value
	case FieldClientName:
		r.ClientName = value
	case FieldBaseIP:
		r.BaseIP = value
	case FieldClientIP:
		r.ClientIP = value
	case FieldLoopbackIP:
		r.LoopbackIP = value
	case FieldLocation:
		r.Location = value
	default:
		return false
	}
	return true
}

// Matches reports whether any field contains term, ignoring case. The
// caller passes term already lower-cased.
func (r Record) Matches(lowerTerm string) bool {
	for _, v := range r.Values() {
		if v != "" && strings.Contains(strings.ToLower(v), lowerTerm) {
			return true
		}
	}
	return false
}
