package graph

import (
	"sort"

	"depattr/internal/core"
)

type nodeState uint8

const (
	stateUnvisited nodeState = iota
	stateInProgress
	stateDone
)

// CycleEdge records a dependency edge whose contribution to the closure was
// truncated because the dependency was not fully accumulated yet when the
// dependent was processed. Such edges only arise on cyclic graphs.
type CycleEdge struct {
	From core.TargetID // the dependent being processed
	To   core.TargetID // the not-yet-done dependency
}

// Closure is the transitive dependency map of a TargetGraph.
//
// For every target T and direct dependency D of T, Deps(T) is a superset of
// Deps(D) ∪ {D}, except across recorded cycle edges, where the dependency's
// accumulation at the time of processing is taken as-is (best effort).
type Closure struct {
	g      *TargetGraph
	deps   []map[int]struct{} // result table by canonical index
	cycles []CycleEdge
}

// ComputeClosure computes the full transitive dependency set of every target.
//
// Targets are processed in dependency order (each target only after its
// dependencies, cycle remnants in canonical order), accumulating for each
// target the union over its direct dependencies D of closure(D) ∪ {D}.
//
// Derived wrapper sub-targets get their own direct dependencies registered
// against their own entries afterwards: such sub-targets may depend back on
// their outer target and must not be folded into the outer target's set.
//
// The computation never fails: cycles terminate via the state arena and are
// reported through Cycles.
func ComputeClosure(g *TargetGraph) *Closure {
	n := g.Len()
	c := &Closure{
		g:    g,
		deps: make([]map[int]struct{}, n),
	}

	state := make([]nodeState, n)
	for _, u := range g.topoOrderIndices() {
		state[u] = stateInProgress
		set := make(map[int]struct{})
		for _, d := range g.deps[u] {
			if state[d] != stateDone {
				// Cycle: take whatever has accumulated for d so far.
				c.cycles = append(c.cycles, CycleEdge{From: g.nodes[u].ID, To: g.nodes[d].ID})
			}
			for k := range c.deps[d] {
				set[k] = struct{}{}
			}
			set[d] = struct{}{}
		}
		c.deps[u] = set
		state[u] = stateDone
	}

	// Nested derived sub-targets keep their own dependency entries.
	for _, t := range g.nodes {
		if t.Kind != core.KindDerivedWrapper {
			continue
		}
		for _, sub := range t.Derived {
			si, ok := g.nodesByID[sub.ID]
			if !ok {
				continue
			}
			for _, dep := range sub.Deps {
				if di, ok := g.nodesByID[dep]; ok {
					c.deps[si][di] = struct{}{}
				}
			}
		}
	}

	return c
}

// Deps returns the transitive dependency IDs of the given target, sorted.
// Unknown targets yield nil.
func (c *Closure) Deps(id core.TargetID) []core.TargetID {
	i, ok := c.g.nodesByID[id]
	if !ok {
		return nil
	}
	out := make([]core.TargetID, 0, len(c.deps[i]))
	for j := range c.deps[i] {
		out = append(out, c.g.nodes[j].ID)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Contains reports whether dep is in the transitive dependency set of id.
func (c *Closure) Contains(id, dep core.TargetID) bool {
	i, ok := c.g.nodesByID[id]
	if !ok {
		return false
	}
	j, ok := c.g.nodesByID[dep]
	if !ok {
		return false
	}
	_, in := c.deps[i][j]
	return in
}

// All returns the complete mapping with sorted dependency slices.
func (c *Closure) All() map[core.TargetID][]core.TargetID {
	out := make(map[core.TargetID][]core.TargetID, len(c.g.nodes))
	for _, t := range c.g.nodes {
		out[t.ID] = c.Deps(t.ID)
	}
	return out
}

// Cycles returns the truncated dependency edges detected during computation,
// in processing order. Empty on acyclic graphs.
func (c *Closure) Cycles() []CycleEdge {
	out := make([]CycleEdge, len(c.cycles))
	copy(out, c.cycles)
	return out
}
