// Package favorites tracks the set of item IDs a user has starred.
//
// A Set is an immutable value: Toggle returns a new Set and leaves the
// receiver untouched, which lets the store hand out old and new states
// side by side. Membership is a map lookup; insertion order is kept only
// so serialised snapshots are stable. IDs are never validated against the
// catalog, a favorite may outlive the catalog snapshot it came from.
package favorites

// Set is an immutable set of item IDs. The zero value is an empty set.
type Set struct {
	index map[string]struct{}
	order []string
}

// FromIDs builds a set from ids, dropping duplicates and keeping the first
// occurrence's position.
func FromIDs(ids []string) Set {
	var s Set
	for _, id := range ids {
		if s.Has(id) {
			continue
		}
		if s.index == nil {
			s.index = make(map[string]struct{}, len(ids))
		}
		s.index[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s
}

// Has reports whether id is a favorite.
func (s Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len is the number of favorites. The favorite count is always derived
// from here.
func (s Set) Len() int {
	return len(s.order)
}

// IDs returns the members in the order they were added.
func (s Set) IDs() []string {
	if len(s.order) == 0 {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Toggle returns a set with id added if absent or removed if present.
func (s Set) Toggle(id string) Set {
	if s.Has(id) {
		return s.without(id)
	}
	return s.with(id)
}

// Equal reports whether both sets have the same members.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for id := range s.index {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (s Set) with(id string) Set {
	next := Set{
		index: make(map[string]struct{}, len(s.index)+1),
		order: make([]string, 0, len(s.order)+1),
	}
	for _, existing := range s.order {
		next.index[existing] = struct{}{}
	}
	next.order = append(next.order, s.order...)
	next.index[id] = struct{}{}
	next.order = append(next.order, id)
	return next
}

func (s Set) without(id string) Set {
	if s.Len() == 1 {
		return Set{}
	}
	next := Set{
		index: make(map[string]struct{}, len(s.index)-1),
		order: make([]string, 0, len(s.order)-1),
	}
	for _, existing := range s.order {
		if existing == id {
			continue
		}
		next.index[existing] = struct{}{}
		next.order = append(next.order, existing)
	}
	return next
}
