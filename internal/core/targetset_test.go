package core

import "testing"

func TestOrderedTargetSet_PreservesInsertionOrder(t *testing.T) {
	a := &Target{ID: "a", Kind: KindSource}
	b := &Target{ID: "b", Kind: KindSource}
	c := &Target{ID: "c", Kind: KindLibrary}

	s := NewOrderedTargetSet()
	for _, tgt := range []*Target{b, c, a} {
		if !s.Add(tgt) {
			t.Fatalf("expected Add(%q) to report change", tgt.ID)
		}
	}

	got := s.Targets()
	want := []TargetID{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("member %d: expected %q, got %q", i, id, got[i].ID)
		}
	}
	if first := s.First(); first == nil || first.ID != "b" {
		t.Fatalf("expected first member b, got %v", first)
	}
}

func TestOrderedTargetSet_DuplicateAddIsNoop(t *testing.T) {
	a := &Target{ID: "a", Kind: KindSource}

	s := NewOrderedTargetSet()
	if !s.Add(a) {
		t.Fatalf("first Add should change the set")
	}
	if s.Add(a) {
		t.Fatalf("second Add of the same ID should be a no-op")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", s.Len())
	}
	if !s.Contains("a") {
		t.Fatalf("expected set to contain a")
	}
}

func TestOrderedTargetSet_TargetsReturnsCopy(t *testing.T) {
	s := NewOrderedTargetSet()
	s.Add(&Target{ID: "a", Kind: KindSource})
	s.Add(&Target{ID: "b", Kind: KindSource})

	got := s.Targets()
	got[0] = &Target{ID: "mutated"}

	if s.Targets()[0].ID != "a" {
		t.Fatalf("mutating the returned slice must not affect the set")
	}
}
