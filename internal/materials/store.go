package materials

import (
	"fmt"
	"sort"
	"strings"
)

// Store is an immutable, validated snapshot of the material coefficient
// library. It is safe for concurrent readers and is never mutated after
// construction; refreshes build a new Store and swap it in.
type Store struct {
	byID   map[string]Record
	byName map[string]string // lowercased name -> id
}

// NewStore validates every record and builds an immutable snapshot.
// The first malformed record aborts the whole load: a coefficient table
// with a bad split must never reach the calculator.
func NewStore(records []Record) (*Store, error) {
	s := &Store{
		byID:   make(map[string]Record, len(records)),
		byName: make(map[string]string, len(records)),
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.byID[rec.ID]; exists {
			return nil, fmt.Errorf("duplicate material id: %s", rec.ID)
		}
		s.byID[rec.ID] = rec
		if rec.Name != "" {
			s.byName[strings.ToLower(rec.Name)] = rec.ID
		}
	}
	return s, nil
}

// Lookup resolves a material by id.
func (s *Store) Lookup(id string) (Record, bool) {
	rec, ok := s.byID[id]
	return rec, ok
}

// LookupByName resolves a material by its display name (case-insensitive).
func (s *Store) LookupByName(name string) (Record, bool) {
	id, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return Record{}, false
	}
	return s.byID[id], true
}

// All returns every record ordered by id.
func (s *Store) All() []Record {
	out := make([]Record, 0, len(s.byID))
	for _, rec := range s.byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of records in the snapshot.
func (s *Store) Len() int {
	return len(s.byID)
}
