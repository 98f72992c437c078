package core

// OrderedTargetSet is a set of targets that remembers insertion order.
//
// Attribution registers direct owners before archive-derived owners, so the
// first member is always the canonical owner of the file the set is keyed by.
type OrderedTargetSet struct {
	members []*Target
	present map[TargetID]struct{}
}

// NewOrderedTargetSet returns an empty set.
func NewOrderedTargetSet() *OrderedTargetSet {
	return &OrderedTargetSet{present: make(map[TargetID]struct{})}
}

// Add appends t if its ID is not already present.
// Reports whether the set changed.
func (s *OrderedTargetSet) Add(t *Target) bool {
	if t == nil {
		return false
	}
	if _, ok := s.present[t.ID]; ok {
		return false
	}
	s.present[t.ID] = struct{}{}
	s.members = append(s.members, t)
	return true
}

// Contains reports whether a target with the given ID is a member.
func (s *OrderedTargetSet) Contains(id TargetID) bool {
	_, ok := s.present[id]
	return ok
}

// Len returns the number of members.
func (s *OrderedTargetSet) Len() int { return len(s.members) }

// First returns the first-inserted member, or nil if the set is empty.
func (s *OrderedTargetSet) First() *Target {
	if len(s.members) == 0 {
		return nil
	}
	return s.members[0]
}

// Targets returns the members in insertion order. The slice is a copy.
func (s *OrderedTargetSet) Targets() []*Target {
	out := make([]*Target, len(s.members))
	copy(out, s.members)
	return out
}
