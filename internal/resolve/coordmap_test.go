package resolve

import (
	"reflect"
	"testing"

	"depattr/internal/core"
)

func ref(org, name string) core.LibraryReference {
	return core.LibraryReference{Org: org, Name: name}
}

func TestTransitiveArchives_SingleModule(t *testing.T) {
	report := NewReport([]*Module{
		{Ref: ref("acme", "widgets"), Archive: "/repo/widgets.jar"},
	})

	m := NewCoordinateMap(report)
	got := m.TransitiveArchives(ref("acme", "widgets"))
	if !reflect.DeepEqual(got, []string{"/repo/widgets.jar"}) {
		t.Fatalf("TransitiveArchives = %v", got)
	}
}

func TestTransitiveArchives_Chain(t *testing.T) {
	report := NewReport([]*Module{
		{Ref: ref("acme", "app"), Archive: "/repo/app.jar", Deps: []core.LibraryReference{ref("acme", "mid")}},
		{Ref: ref("acme", "mid"), Archive: "/repo/mid.jar", Deps: []core.LibraryReference{ref("acme", "base")}},
		{Ref: ref("acme", "base"), Archive: "/repo/base.jar"},
	})

	m := NewCoordinateMap(report)
	got := m.TransitiveArchives(ref("acme", "app"))
	want := []string{"/repo/app.jar", "/repo/base.jar", "/repo/mid.jar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TransitiveArchives = %v, want %v", got, want)
	}
}

// A diamond in the reference graph contributes each archive once.
func TestTransitiveArchives_DiamondDeduplicates(t *testing.T) {
	report := NewReport([]*Module{
		{Ref: ref("acme", "top"), Archive: "/repo/top.jar", Deps: []core.LibraryReference{ref("acme", "left"), ref("acme", "right")}},
		{Ref: ref("acme", "left"), Archive: "/repo/left.jar", Deps: []core.LibraryReference{ref("acme", "shared")}},
		{Ref: ref("acme", "right"), Archive: "/repo/right.jar", Deps: []core.LibraryReference{ref("acme", "shared")}},
		{Ref: ref("acme", "shared"), Archive: "/repo/shared.jar"},
	})

	m := NewCoordinateMap(report)
	got := m.TransitiveArchives(ref("acme", "top"))
	want := []string{"/repo/left.jar", "/repo/right.jar", "/repo/shared.jar", "/repo/top.jar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TransitiveArchives = %v, want %v", got, want)
	}
}

func TestTransitiveArchives_MemoizedAcrossQueries(t *testing.T) {
	report := NewReport([]*Module{
		{Ref: ref("acme", "a"), Archive: "/repo/a.jar", Deps: []core.LibraryReference{ref("acme", "b")}},
		{Ref: ref("acme", "b"), Archive: "/repo/b.jar"},
	})

	m := NewCoordinateMap(report)
	first := m.TransitiveArchives(ref("acme", "a"))
	second := m.TransitiveArchives(ref("acme", "a"))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("memoized query diverged: %v vs %v", first, second)
	}
	// Overlapping subgraph query hits the same memo entries.
	if got := m.TransitiveArchives(ref("acme", "b")); !reflect.DeepEqual(got, []string{"/repo/b.jar"}) {
		t.Fatalf("TransitiveArchives(b) = %v", got)
	}
}

func TestTransitiveArchives_UnknownRefYieldsNothing(t *testing.T) {
	m := NewCoordinateMap(NewReport(nil))
	if got := m.TransitiveArchives(ref("acme", "ghost")); got != nil {
		t.Fatalf("expected nil for unknown ref, got %v", got)
	}
}

func TestTransitiveArchives_NilReportYieldsNothing(t *testing.T) {
	m := NewCoordinateMap(nil)
	if got := m.TransitiveArchives(ref("acme", "widgets")); got != nil {
		t.Fatalf("expected nil for nil report, got %v", got)
	}
}

func TestTransitiveArchives_ReferenceCycleTerminates(t *testing.T) {
	report := NewReport([]*Module{
		{Ref: ref("acme", "a"), Archive: "/repo/a.jar", Deps: []core.LibraryReference{ref("acme", "b")}},
		{Ref: ref("acme", "b"), Archive: "/repo/b.jar", Deps: []core.LibraryReference{ref("acme", "a")}},
	})

	m := NewCoordinateMap(report)
	got := m.TransitiveArchives(ref("acme", "a"))
	want := []string{"/repo/a.jar", "/repo/b.jar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TransitiveArchives = %v, want %v", got, want)
	}
}
