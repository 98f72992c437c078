package resolve

import (
	"sort"
	"sync"

	"depattr/internal/core"
)

// CoordinateMap answers transitive-archive queries against a Report.
//
// Results are memoized per reference, so repeated queries over overlapping
// subgraphs cost one map lookup after the first visit. Safe for concurrent
// use.
type CoordinateMap struct {
	report *Report

	mu   sync.Mutex
	memo map[core.LibraryReference][]string
}

// NewCoordinateMap returns a CoordinateMap over report. A nil report yields
// a map that answers every query with no archives.
func NewCoordinateMap(report *Report) *CoordinateMap {
	return &CoordinateMap{
		report: report,
		memo:   make(map[core.LibraryReference][]string),
	}
}

// TransitiveArchives returns the archives ref and all of its transitive
// dependencies resolved to, sorted and deduplicated. A reference absent from
// the report (or a nil report) yields nil.
//
// Diamonds in the reference graph contribute each archive once; reference
// cycles terminate via the per-traversal visited set.
func (m *CoordinateMap) TransitiveArchives(ref core.LibraryReference) []string {
	if m.report == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.report.Module(ref); !ok {
		return nil
	}
	return copyArchives(m.collect(ref, make(map[core.LibraryReference]struct{})))
}

// collect is the memoized traversal. Caller holds m.mu.
func (m *CoordinateMap) collect(ref core.LibraryReference, visiting map[core.LibraryReference]struct{}) []string {
	if cached, ok := m.memo[ref]; ok {
		return cached
	}
	if _, active := visiting[ref]; active {
		// Reference cycle: contribute nothing at the cycle point.
		return nil
	}
	mod, ok := m.report.Module(ref)
	if !ok {
		return nil
	}

	visiting[ref] = struct{}{}
	set := map[string]struct{}{}
	if mod.Archive != "" {
		set[mod.Archive] = struct{}{}
	}
	for _, dep := range mod.Deps {
		for _, a := range m.collect(dep, visiting) {
			set[a] = struct{}{}
		}
	}
	delete(visiting, ref)

	archives := make([]string, 0, len(set))
	for a := range set {
		archives = append(archives, a)
	}
	sort.Strings(archives)

	m.memo[ref] = archives
	return archives
}

func copyArchives(archives []string) []string {
	out := make([]string, len(archives))
	copy(out, archives)
	return out
}
