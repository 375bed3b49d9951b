package domain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SpawnExtent bounds the initial random placement of new nodes: each
// coordinate lands in [-SpawnExtent, SpawnExtent].
const SpawnExtent = 200.0

// Node is a labeled point entity in the graph. The label is the node's
// identity; adding a node with an existing label returns the existing node.
type Node struct {
	Label string `json:"label"`

	// Pos is the node's position in layout space. Mutated every simulation
	// step unless Fixed, and by drag interaction.
	Pos r3.Vec `json:"pos"`

	// Vel is re-derived from forces on every step; it carries no state
	// across frames.
	Vel r3.Vec `json:"-"`

	// Fixed excludes the node from force integration. Set at creation or
	// while the node is being dragged.
	Fixed bool `json:"fixed"`

	Highlighted       bool `json:"highlighted"`
	SearchHighlighted bool `json:"search_highlighted"`
}

// Speed returns the magnitude of the node's current velocity.
func (n *Node) Speed() float64 {
	return r3.Norm(n.Vel)
}

// DistanceTo returns the Euclidean distance to another node.
func (n *Node) DistanceTo(other *Node) float64 {
	return r3.Norm(r3.Sub(other.Pos, n.Pos))
}

// Finite reports whether the node's position contains no NaN or Inf
// component. Useful as a simulation sanity check.
func (n *Node) Finite() bool {
	for _, v := range []float64{n.Pos.X, n.Pos.Y, n.Pos.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
