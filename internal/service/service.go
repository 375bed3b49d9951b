// Package service coordinates the layout engine, the topology repository,
// and the event bus. Handlers talk to GraphService; GraphService keeps the
// engine's in-memory graph and the persisted snapshot in step and publishes
// change events for SSE delivery.
package service

import (
	"context"
	"fmt"

	"orrery/internal/domain"
	"orrery/internal/engine"
	"orrery/internal/loader"
	"orrery/internal/repository"
)

// GraphService owns graph mutations.
type GraphService struct {
	eng  *engine.Engine
	repo repository.Repository
	bus  *EventBus
}

// NodeView is a node prepared for clients: its label, projected screen
// position, depth scale, and highlight state.
type NodeView struct {
	Label             string  `json:"label"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	Scale             float64 `json:"scale"`
	Fixed             bool    `json:"fixed"`
	Highlighted       bool    `json:"highlighted,omitempty"`
	SearchHighlighted bool    `json:"search_highlighted,omitempty"`
}

// EdgeView is an edge prepared for clients, with both endpoints projected.
type EdgeView struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Label       string  `json:"label,omitempty"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// FrameView is one rendered-state snapshot, broadcast after layout ticks.
type FrameView struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// NewGraphService wires the service and bridges the engine's selection and
// click notifications onto the bus.
func NewGraphService(eng *engine.Engine, repo repository.Repository, bus *EventBus) *GraphService {
	s := &GraphService{eng: eng, repo: repo, bus: bus}

	eng.OnNodeSelect(func(n *domain.Node) {
		bus.Publish(Event{Type: EventNodeSelected, Payload: map[string]string{"label": n.Label}})
	})
	eng.OnCanvasClick(func(x, y float64) {
		bus.Publish(Event{Type: EventCanvasClicked, Payload: map[string]float64{"x": x, "y": y}})
	})

	return s
}

// AddNode inserts a node, persists it, and announces the change.
func (s *GraphService) AddNode(ctx context.Context, label string, fixed bool) (*domain.Node, error) {
	if label == "" {
		return nil, fmt.Errorf("node label must not be empty")
	}

	n := s.eng.AddNode(label, fixed)
	if err := s.repo.SaveNode(ctx, repository.NodeRecord{Label: n.Label, Fixed: n.Fixed}); err != nil {
		return nil, fmt.Errorf("failed to persist node: %w", err)
	}

	s.bus.Publish(Event{Type: EventGraphUpdated})
	return n, nil
}

// AddEdge inserts an edge (creating missing endpoints), persists it, and
// announces the change.
func (s *GraphService) AddEdge(ctx context.Context, source, target, label string) (*domain.Edge, error) {
	if source == "" || target == "" {
		return nil, fmt.Errorf("edge endpoints must not be empty")
	}

	e := s.eng.AddEdge(source, target, label)
	if err := s.repo.SaveEdge(ctx, repository.EdgeRecord{Source: source, Target: target, Label: label}); err != nil {
		return nil, fmt.Errorf("failed to persist edge: %w", err)
	}

	s.bus.Publish(Event{Type: EventGraphUpdated})
	return e, nil
}

// Clear drops the whole graph, in memory and on disk.
func (s *GraphService) Clear(ctx context.Context) error {
	s.eng.ClearGraph()
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored graph: %w", err)
	}

	s.bus.Publish(Event{Type: EventGraphUpdated})
	return nil
}

// Restore rebuilds the engine's graph from the persisted snapshot. Positions
// were never stored; restored nodes spawn at fresh random positions and the
// layout re-settles.
func (s *GraphService) Restore(ctx context.Context) error {
	nodes, edges, err := s.repo.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored graph: %w", err)
	}

	for _, n := range nodes {
		s.eng.AddNode(n.Label, n.Fixed)
	}
	for _, e := range edges {
		s.eng.AddEdge(e.Source, e.Target, e.Label)
	}

	if len(nodes) > 0 || len(edges) > 0 {
		s.bus.Publish(Event{Type: EventGraphUpdated})
	}
	return nil
}

// LoadGraphFile merges a topology file into the current graph.
func (s *GraphService) LoadGraphFile(ctx context.Context, path string) error {
	g, err := loader.LoadYAML(path)
	if err != nil {
		return err
	}
	return s.importGraph(ctx, g)
}

// ImportYAML merges topology YAML into the current graph.
func (s *GraphService) ImportYAML(ctx context.Context, data []byte) error {
	g, err := loader.ParseYAML(data)
	if err != nil {
		return err
	}
	return s.importGraph(ctx, g)
}

func (s *GraphService) importGraph(ctx context.Context, g *loader.GraphYAML) error {
	for _, n := range g.Nodes {
		s.eng.AddNode(n.Label, n.Fixed)
		if err := s.repo.SaveNode(ctx, repository.NodeRecord{Label: n.Label, Fixed: n.Fixed}); err != nil {
			return fmt.Errorf("failed to persist node %q: %w", n.Label, err)
		}
	}
	for _, e := range g.Edges {
		s.eng.AddEdge(e.Source, e.Target, e.Label)
		if err := s.repo.SaveEdge(ctx, repository.EdgeRecord{Source: e.Source, Target: e.Target, Label: e.Label}); err != nil {
			return fmt.Errorf("failed to persist edge %s-%s: %w", e.Source, e.Target, err)
		}
	}

	s.bus.Publish(Event{Type: EventGraphUpdated})
	return nil
}

// ExportYAML serializes the current topology.
func (s *GraphService) ExportYAML() ([]byte, error) {
	snap := s.eng.Snapshot()

	g := &loader.GraphYAML{Version: "1"}
	for _, n := range snap.Nodes {
		g.Nodes = append(g.Nodes, loader.NodeYAML{Label: n.Label, Fixed: n.Fixed})
	}
	for _, e := range snap.Edges {
		g.Edges = append(g.Edges, loader.EdgeYAML{Source: e.Source, Target: e.Target, Label: e.Label})
	}
	return loader.ExportYAML(g)
}

// Frame projects the whole graph for clients. The engine takes the snapshot
// under its lock, so a frame never mixes state from two ticks and is safe to
// build while pointer events are in flight.
func (s *GraphService) Frame() FrameView {
	snap := s.eng.Snapshot()

	var f FrameView
	for _, n := range snap.Nodes {
		f.Nodes = append(f.Nodes, NodeView{
			Label:             n.Label,
			X:                 n.X,
			Y:                 n.Y,
			Scale:             n.Scale,
			Fixed:             n.Fixed,
			Highlighted:       n.Highlighted,
			SearchHighlighted: n.SearchHighlighted,
		})
	}
	for _, e := range snap.Edges {
		f.Edges = append(f.Edges, EdgeView{
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			X1:          e.X1,
			Y1:          e.Y1,
			X2:          e.X2,
			Y2:          e.Y2,
			Highlighted: e.Highlighted,
		})
	}
	return f
}

// PublishFrame broadcasts the current frame, used as the engine's tick hook.
func (s *GraphService) PublishFrame() {
	s.bus.Publish(Event{Type: EventFrame, Payload: s.Frame()})
}

// Engine exposes the engine for pointer and render handlers.
func (s *GraphService) Engine() *engine.Engine {
	return s.eng
}
