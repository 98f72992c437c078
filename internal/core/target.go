package core

// TargetID is the unique identifier of a target within one build invocation.
type TargetID string

// TargetKind is the closed set of target variants.
//
// Attribution and closure logic switch exhaustively on TargetKind; adding a
// kind requires visiting every such switch.
type TargetKind string

const (
	// KindSource produces compiled artifacts from its declared sources.
	KindSource TargetKind = "source"

	// KindLibrary aggregates externally resolved library references and
	// produces nothing itself.
	KindLibrary TargetKind = "library"

	// KindDerivedWrapper is a source-producing target that additionally
	// carries nested derived sub-targets (generated wrapper sources in
	// another language, attributed to this outer target).
	KindDerivedWrapper TargetKind = "derived-wrapper"
)

// Valid reports whether k is a known kind.
func (k TargetKind) Valid() bool {
	switch k {
	case KindSource, KindLibrary, KindDerivedWrapper:
		return true
	default:
		return false
	}
}

// LibraryReference identifies an externally resolvable dependency.
//
// It is a value type so it can key maps directly.
type LibraryReference struct {
	Org  string
	Name string
}

func (r LibraryReference) String() string { return r.Org + ":" + r.Name }

// Target is a node in the build graph.
//
// Constructed once when the graph is loaded for an invocation and never
// mutated afterwards. Which fields are meaningful depends on Kind:
//
//   - KindSource: Sources, Deps
//   - KindLibrary: Libraries, Deps
//   - KindDerivedWrapper: Sources, Deps, Derived
type Target struct {
	ID   TargetID
	Kind TargetKind

	// Sources are declared source paths, relative to the build root.
	Sources []string

	// Deps are declared direct dependency edges to other targets.
	Deps []TargetID

	// Libraries are the symbolic references a library aggregate declares.
	Libraries []LibraryReference

	// Derived are the nested derived sub-targets of a derived wrapper.
	// Their sources are attributed to this outer target, but their own
	// dependency edges stay their own in the transitive closure.
	Derived []*Target
}
