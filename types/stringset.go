package types

import "encoding/json"

// StringSet is an ordered, duplicate-free string collection. It is the
// canonical container for set-valued state (visited locations, quest log
// buckets): older saves stored these as plain JSON arrays, sometimes with
// duplicates, so decoding coerces once at the boundary instead of every use
// site tolerating both shapes.
//
// The zero value is an empty set ready for use.
type StringSet struct {
	items []string
}

// NewStringSet returns a set seeded with the given values, in order.
func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v if not already present. Reports whether v was added.
func (s *StringSet) Add(v string) bool {
	if s.Has(v) {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Remove deletes v, preserving the order of the remaining items.
// Reports whether v was present.
func (s *StringSet) Remove(v string) bool {
	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether v is in the set.
func (s *StringSet) Has(v string) bool {
	for _, item := range s.items {
		if item == v {
			return true
		}
	}
	return false
}

// Len returns the number of items.
func (s *StringSet) Len() int { return len(s.items) }

// Items returns a copy of the contents in insertion order.
func (s *StringSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// MarshalJSON encodes the set as a JSON array, never null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array, dropping duplicates. null decodes to
// an empty set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.items = nil
	for _, v := range raw {
		s.Add(v)
	}
	return nil
}
