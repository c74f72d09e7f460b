package store

import (
	"strings"

	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// Stats summarizes the full collection.
type Stats struct {
	Total           int `json:"total"`
	UniqueLocations int `json:"unique_locations"`
	UniquePOPs      int `json:"unique_pops"`
}

// Search returns, in collection order, every record with a field that
// contains term ignoring case. An empty term returns the whole collection.
func (s *Store) Search(term string) []types.Record {
	if term == "" {
		return s.All()
	}
	lower := strings.ToLower(term)
	out := []types.Record{}
	for _, r := range s.records {
		if r.Matches(lower) {
			out = append(out, r)
		}
	}
	return out
}

// Stats counts the records, distinct locations and distinct POP names of
// the whole collection, whatever view the caller is showing.
func (s *Store) Stats() Stats {
	locations := make(map[string]struct{})
	pops := make(map[string]struct{})
	for _, r := range s.records {
		locations[r.Location] = struct{}{}
		pops[r.POPName] = struct{}{}
	}
	return Stats{
		Total:           len(s.records),
		UniqueLocations: len(locations),
		UniquePOPs:      len(pops),
	}
}

// Paginate returns page (1-indexed) of items with pageSize items per page.
// Pages outside the range, and non-positive page or pageSize, yield an
// empty slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	// Bound the page before multiplying so huge values cannot wrap.
	if len(items) == 0 || page-1 > (len(items)-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(items)-start)
	return items[start:end:end]
}

// PageCount returns how many pages of pageSize hold total items.
func PageCount(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
