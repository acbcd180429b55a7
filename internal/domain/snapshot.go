package domain

import (
	"slices"
	"strings"
)

// Snapshot is an immutable view of one account's planning entities at a point
// in time. It is the sole input to every derivation; derivations never reach
// back into the store. Mutating a Snapshot after handing it to a derivation
// is a caller bug; use Clone for overlays.
type Snapshot struct {
	Weeks     []Week
	Children  []Child
	Items     []ScheduledItem
	Interests []CampInterest
	Camps     map[string]*Camp
	Profile   *Profile
}

// Clone returns a deep copy suitable for overlay mutation. Camp records are
// shared (read-only within the core), everything mutable is copied.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Weeks:     slices.Clone(s.Weeks),
		Children:  slices.Clone(s.Children),
		Items:     slices.Clone(s.Items),
		Interests: slices.Clone(s.Interests),
		Camps:     make(map[string]*Camp, len(s.Camps)),
	}
	for id, c := range s.Camps {
		out.Camps[id] = c
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}

// Camp resolves a camp reference, substituting a placeholder for ids missing
// from the catalog so that derivations never fail on deleted camps.
func (s *Snapshot) Camp(id string) *Camp {
	if c, ok := s.Camps[id]; ok {
		return c
	}
	return PlaceholderCamp(id)
}

// ItemsForChild returns the child's scheduled items ordered by start date
// ascending, then id ascending. This is the enumeration order for every
// derived output.
func (s *Snapshot) ItemsForChild(childID string) []ScheduledItem {
	var out []ScheduledItem
	for _, it := range s.Items {
		if it.ChildID == childID {
			out = append(out, it)
		}
	}
	SortItems(out)
	return out
}

// SortItems orders items by start date ascending, then id ascending.
func SortItems(items []ScheduledItem) {
	slices.SortFunc(items, func(a, b ScheduledItem) int {
		if c := strings.Compare(string(a.StartDate), string(b.StartDate)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
