package domain

import "gonum.org/v1/gonum/spatial/r3"

// Edge is a directed, labeled relation between two nodes. It owns no identity
// of its own: multiple edges between the same pair, and self-edges, are
// permitted. Source and Target are references into the store, never copies.
type Edge struct {
	Source      *Node  `json:"source"`
	Target      *Node  `json:"target"`
	Label       string `json:"label"`
	Highlighted bool   `json:"highlighted"`
}

// Length returns the current Euclidean distance between the edge's endpoints.
func (e *Edge) Length() float64 {
	return r3.Norm(r3.Sub(e.Target.Pos, e.Source.Pos))
}
