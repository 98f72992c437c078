package resolve

import (
	"sort"

	"depattr/internal/core"
)

// Module is one resolved module in a Report: the archive its reference
// resolved to plus its direct edges in the reference graph.
type Module struct {
	Ref     core.LibraryReference
	Archive string
	Deps    []core.LibraryReference
}

// Report is the per-invocation resolution record. Immutable once built.
type Report struct {
	modules map[core.LibraryReference]*Module
}

// NewReport builds a Report from resolved modules. Later duplicates of the
// same reference are ignored; the first resolution wins.
func NewReport(modules []*Module) *Report {
	byRef := make(map[core.LibraryReference]*Module, len(modules))
	for _, m := range modules {
		if m == nil {
			continue
		}
		if _, exists := byRef[m.Ref]; exists {
			continue
		}
		byRef[m.Ref] = m
	}
	return &Report{modules: byRef}
}

// Module returns the resolved module for ref, if present.
func (r *Report) Module(ref core.LibraryReference) (*Module, bool) {
	m, ok := r.modules[ref]
	return m, ok
}

// Refs returns every resolved reference, sorted by (org, name).
func (r *Report) Refs() []core.LibraryReference {
	out := make([]core.LibraryReference, 0, len(r.modules))
	for ref := range r.modules {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Org != out[j].Org {
			return out[i].Org < out[j].Org
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of resolved modules.
func (r *Report) Len() int { return len(r.modules) }
