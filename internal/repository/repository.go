// Package repository defines persistence for the graph topology. Only
// labels, edges, and the fixed flag are stored; layout positions are
// recomputed by the simulation on every start.
package repository

import "context"

// NodeRecord is a persisted node.
type NodeRecord struct {
	Label string
	Fixed bool
}

// EdgeRecord is a persisted edge. Source and target are node labels.
type EdgeRecord struct {
	Source string
	Target string
	Label  string
}

// Repository is the topology store.
type Repository interface {
	SaveNode(ctx context.Context, n NodeRecord) error
	SaveEdge(ctx context.Context, e EdgeRecord) error
	LoadGraph(ctx context.Context) ([]NodeRecord, []EdgeRecord, error)
	Clear(ctx context.Context) error
	Close() error
}
