// Package domain defines the core domain types for the Orrery graph view engine.
//
// This package contains the graph store and its entities: labeled nodes with
// 3D position and velocity, and directed labeled edges between them.
//
// # Core Types
//
// Node represents a labeled point entity with a 3D position, a per-step
// velocity, and display flags. A node's label is its identity.
//
// Edge represents a directed, labeled relation between two nodes. Edges hold
// references to their endpoint nodes, not copies; an edge never outlives its
// endpoints because nodes are only removed by clearing the whole store.
//
// Store owns all nodes and edges and preserves node insertion order, which is
// observable behavior: picking and search both iterate in that order.
//
// # Highlighting
//
// Nodes carry two independent highlight flags. Highlighted is set manually by
// callers; SearchHighlighted is driven by the substring/exact match helpers.
// Renderers give search highlights precedence over manual ones.
package domain
