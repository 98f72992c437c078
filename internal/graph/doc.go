// Package graph adapts one build invocation's target set into an indexed
// dependency graph and computes transitive dependency closures over it.
//
// It is split into:
//   - Immutable graph structure (TargetGraph): targets + canonicalized
//     dependency edges + deterministic topological order
//   - Derived closure (Closure): target -> full transitive dependency set
//
// Unlike a task scheduler, attribution must not reject cyclic input: derived
// wrapper sub-targets may depend back on their outer target. Cycles are
// tolerated, reported, and yield a best-effort closure at the cycle point.
package graph
