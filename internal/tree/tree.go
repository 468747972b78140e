// Package tree stores the growing search tree: an ordered node sequence, the
// edge sequence kept for rendering, and the child to parent mapping used to
// extract paths.
package tree

import (
	"math"

	"github.com/pkg/errors"

	"rrt-planner/internal/geometry"
)

var (
	// ErrNotConnected indicates a path was requested for a point with no parent chain.
	ErrNotConnected = errors.New("tree: point is not connected to the root")
	// ErrCycle indicates the parent mapping loops back on itself.
	ErrCycle = errors.New("tree: parent mapping contains a cycle")
)

// Edge represents a connection from a node already in the tree to a child.
type Edge struct {
	From geometry.Point `json:"from"`
	To   geometry.Point `json:"to"`
}

// Tree is an append-only rooted tree. Callers are responsible for adding a
// parent as a node before any child references it.
type Tree struct {
	root    geometry.Point
	nodes   []geometry.Point
	members map[geometry.Point]struct{}
	edges   []Edge
	parent  map[geometry.Point]geometry.Point
}

// New creates a tree containing only root.
func New(root geometry.Point) *Tree {
	t := &Tree{
		root:    root,
		members: make(map[geometry.Point]struct{}),
		parent:  make(map[geometry.Point]geometry.Point),
	}
	t.AddNode(root)
	return t
}

// Root returns the start point.
func (t *Tree) Root() geometry.Point { return t.root }

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// AddNode appends p to the node sequence.
func (t *Tree) AddNode(p geometry.Point) {
	t.nodes = append(t.nodes, p)
	t.members[p] = struct{}{}
}

// AddEdge appends the edge from -> to.
func (t *Tree) AddEdge(from, to geometry.Point) {
	t.edges = append(t.edges, Edge{From: from, To: to})
}

// SetParent records parent as the predecessor of child.
func (t *Tree) SetParent(child, parent geometry.Point) {
	t.parent[child] = parent
}

// Contains reports whether p was added as a node.
func (t *Tree) Contains(p geometry.Point) bool {
	_, ok := t.members[p]
	return ok
}

// Parent returns the recorded parent of p.
func (t *Tree) Parent(p geometry.Point) (geometry.Point, bool) {
	parent, ok := t.parent[p]
	return parent, ok
}

// Nearest scans every node and returns the one closest to target along with
// its distance. Ties go to the earliest inserted node.
func (t *Tree) Nearest(target geometry.Point) (geometry.Point, float64) {
	best := t.nodes[0]
	minDist := math.Inf(1)
	for _, p := range t.nodes {
		if dist := p.Distance(target); dist < minDist {
			minDist = dist
			best = p
		}
	}
	return best, minDist
}

// ReconstructPath walks parent links from goal back to the root and returns
// the sequence ordered root to goal.
func (t *Tree) ReconstructPath(goal geometry.Point) ([]geometry.Point, error) {
	if goal != t.root {
		if _, ok := t.parent[goal]; !ok {
			return nil, errors.Wrapf(ErrNotConnected, "goal %s", goal)
		}
	}

	reversed := []geometry.Point{goal}
	current := goal
	for current != t.root {
		parent, ok := t.parent[current]
		if !ok {
			return nil, errors.Wrapf(ErrNotConnected, "chain from %s stops at %s", goal, current)
		}
		if len(reversed) > len(t.parent) {
			return nil, errors.Wrapf(ErrCycle, "walking from %s", goal)
		}
		reversed = append(reversed, parent)
		current = parent
	}

	path := make([]geometry.Point, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path, nil
}

// Nodes returns a copy of the node sequence in insertion order.
func (t *Tree) Nodes() []geometry.Point {
	out := make([]geometry.Point, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Edges returns a copy of the edge sequence in insertion order.
func (t *Tree) Edges() []Edge {
	out := make([]Edge, len(t.edges))
	copy(out, t.edges)
	return out
}

// HasEdge reports whether from -> to was recorded.
func (t *Tree) HasEdge(from, to geometry.Point) bool {
	for _, e := range t.edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}
