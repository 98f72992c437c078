// Package core defines the domain model for dependency attribution over a
// JVM build graph.
//
// The model is declarative and immutable per build invocation:
//
// Target: a buildable or declarable unit in the build graph. A target is
// exactly one of a closed set of kinds (source-producing, library aggregate,
// derived wrapper); attribution and closure algorithms switch exhaustively
// on the kind rather than inspecting runtime types.
//
// LibraryReference: the symbolic (organization, name) identity of an
// externally resolved dependency, declared by library-aggregate targets.
//
// OrderedTargetSet: the owner set used throughout attribution. Insertion
// order is a contract, not an accident: the first target registered for a
// file is its canonical owner.
//
// The package also declares the collaborator interfaces the attribution core
// consumes (compiled-output manifests, distribution properties).
// Implementations live with their callers.
package core
