package graph

import (
	"container/heap"
	"sort"

	"depattr/internal/core"
)

// TargetGraph is an immutable, indexed view of one invocation's targets.
//
// It is safe for concurrent read access.
type TargetGraph struct {
	nodesByID map[core.TargetID]int
	nodes     []*core.Target // canonical order (sorted by ID)

	deps       [][]int // direct dependencies by canonical index, sorted ascending
	dependents [][]int // reverse edges by canonical index, sorted ascending
	indeg      []int   // incoming dependency edges by canonical index
}

// New builds and validates a TargetGraph from the invocation's target list.
//
// Derived wrapper sub-targets become graph nodes of their own so they carry
// their own closure entries. Validation rejects:
//   - empty or duplicate target IDs
//   - unknown target kinds
//   - dependency edges referencing unknown targets
//   - self-dependencies
//
// Dependency cycles are NOT rejected; see Closure for how they degrade.
func New(targets []*core.Target) (*TargetGraph, error) {
	if len(targets) == 0 {
		return nil, invalidf("no targets")
	}

	byID := make(map[core.TargetID]*core.Target, len(targets))

	var add func(t *core.Target, derived bool) error
	add = func(t *core.Target, derived bool) error {
		if t == nil {
			return invalidf("nil target")
		}
		if t.ID == "" {
			return invalidf("target ID is required")
		}
		if !t.Kind.Valid() {
			return invalidf("target %q has unknown kind %q", t.ID, t.Kind)
		}
		if prev, exists := byID[t.ID]; exists {
			if derived && prev == t {
				// A derived sub-target may also be listed at top level.
				return nil
			}
			return invalidf("duplicate target ID: %q", t.ID)
		}
		byID[t.ID] = t
		for _, sub := range t.Derived {
			if err := add(sub, true); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range targets {
		if err := add(t, false); err != nil {
			return nil, err
		}
	}

	// Canonicalize nodes: sort by ID for a stable, insertion-independent order.
	nodes := make([]*core.Target, 0, len(byID))
	for _, t := range byID {
		nodes = append(nodes, t)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	index := make(map[core.TargetID]int, len(nodes))
	for i, t := range nodes {
		index[t.ID] = i
	}

	deps := make([][]int, len(nodes))
	dependents := make([][]int, len(nodes))
	indeg := make([]int, len(nodes))
	for i, t := range nodes {
		seen := make(map[int]struct{}, len(t.Deps))
		for _, dep := range t.Deps {
			j, ok := index[dep]
			if !ok {
				return nil, invalidf("target %q depends on unknown target %q", t.ID, dep)
			}
			if j == i {
				return nil, invalidf("target %q depends on itself", t.ID)
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			deps[i] = append(deps[i], j)
			dependents[j] = append(dependents[j], i)
			indeg[i]++
		}
	}
	for i := range deps {
		sort.Ints(deps[i])
	}
	for i := range dependents {
		sort.Ints(dependents[i])
	}

	return &TargetGraph{
		nodesByID:  index,
		nodes:      nodes,
		deps:       deps,
		dependents: dependents,
		indeg:      indeg,
	}, nil
}

// Target returns a target by ID.
func (g *TargetGraph) Target(id core.TargetID) (*core.Target, bool) {
	i, ok := g.nodesByID[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Targets returns all targets in canonical order. The slice is a copy.
func (g *TargetGraph) Targets() []*core.Target {
	out := make([]*core.Target, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of targets, derived sub-targets included.
func (g *TargetGraph) Len() int { return len(g.nodes) }

// TopologicalOrder returns a deterministic dependency ordering of target IDs:
// every target appears after all of its dependencies, except for targets
// caught in a cycle, which are appended in canonical order after all
// acyclic targets.
func (g *TargetGraph) TopologicalOrder() []core.TargetID {
	order := g.topoOrderIndices()
	ids := make([]core.TargetID, 0, len(order))
	for _, idx := range order {
		ids = append(ids, g.nodes[idx].ID)
	}
	return ids
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrderIndices returns a deterministic dependency-first ordering of node
// indices. Determinism: the ready queue is a min-heap by canonical index.
//
// Nodes stuck in a cycle never reach in-degree zero; they are appended at
// the end in canonical index order so every node appears exactly once.
func (g *TargetGraph) topoOrderIndices() []int {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &intMinHeap{}
	heap.Init(ready)
	for i := range indeg {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	emitted := make([]bool, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		emitted[n] = true
		for _, m := range g.dependents[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}

	for i := range g.nodes {
		if !emitted[i] {
			out = append(out, i)
		}
	}
	return out
}
