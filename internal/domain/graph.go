package domain

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Store owns the set of nodes and edges. It is not safe for concurrent use;
// callers serialize access (the engine holds its own lock).
type Store struct {
	nodes map[string]*Node
	order []*Node
	edges []*Edge
	rng   *rand.Rand
}

// NewStore creates an empty store. Initial node placement is randomized from
// the current time.
func NewStore() *Store {
	return NewStoreWithSeed(time.Now().UnixNano())
}

// NewStoreWithSeed creates an empty store with deterministic node placement.
func NewStoreWithSeed(seed int64) *Store {
	return &Store{
		nodes: make(map[string]*Node),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// AddNode adds a node with the given label, or returns the existing node when
// the label is already present (the fixed argument is ignored in that case).
// New nodes are placed uniformly at random in [-SpawnExtent, SpawnExtent]^3
// with zero velocity.
func (s *Store) AddNode(label string, fixed bool) *Node {
	if n, ok := s.nodes[label]; ok {
		return n
	}

	n := &Node{
		Label: label,
		Pos: r3.Vec{
			X: (s.rng.Float64()*2 - 1) * SpawnExtent,
			Y: (s.rng.Float64()*2 - 1) * SpawnExtent,
			Z: (s.rng.Float64()*2 - 1) * SpawnExtent,
		},
		Fixed: fixed,
	}
	s.nodes[label] = n
	s.order = append(s.order, n)
	return n
}

// AddEdge appends a new edge from source to target, auto-creating any missing
// endpoint as a non-fixed node. Every call appends a new edge record.
func (s *Store) AddEdge(source, target, label string) *Edge {
	e := &Edge{
		Source: s.AddNode(source, false),
		Target: s.AddNode(target, false),
		Label:  label,
	}
	s.edges = append(s.edges, e)
	return e
}

// Node returns the node with the given label, if present.
func (s *Store) Node(label string) (*Node, bool) {
	n, ok := s.nodes[label]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice is shared with the
// store; callers must not append to or reorder it.
func (s *Store) Nodes() []*Node {
	return s.order
}

// Edges returns all edges in insertion order.
func (s *Store) Edges() []*Edge {
	return s.edges
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	return len(s.order)
}

// Clear drops all nodes, edges, and highlight state.
func (s *Store) Clear() {
	s.nodes = make(map[string]*Node)
	s.order = nil
	s.edges = nil
}
