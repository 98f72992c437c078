// Package resolve models the result of an external dependency resolution
// and answers coordinate-level queries over it.
//
// A Report is the per-invocation record mapping library references to the
// concrete archive files they resolved to, together with the direct edges of
// the reference graph. CoordinateMap layers a memoized transitive traversal
// on top: for a reference, the set of archives it and everything it pulls in
// resolve to.
//
// SymlinkMap is the one piece of state shared with concurrently running
// build phases; consumers must take a Snapshot and never read the live map.
package resolve
