package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
)

// GetGraph returns the projected state of the whole graph.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Frame(), http.StatusOK)
}

// ClearGraph deletes every node and edge.
func (h *GraphHandler) ClearGraph(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		log.Printf("Failed to clear graph: %v", err)
		h.writeError(w, "Failed to clear graph", err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateNode adds a node by label.
func (h *GraphHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
		Fixed bool   `json:"fixed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.AddNode(r.Context(), req.Label, req.Fixed)
	if err != nil {
		h.writeError(w, "Failed to create node", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, n, http.StatusCreated)
}

// CreateEdge adds an edge, creating missing endpoints.
func (h *GraphHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Label  string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.AddEdge(r.Context(), req.Source, req.Target, req.Label)
	if err != nil {
		h.writeError(w, "Failed to create edge", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, e, http.StatusCreated)
}

// Search highlights every node whose label contains the query.
func (h *GraphHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	matches := h.svc.Engine().SearchAndHighlight(req.Query)
	labels := make([]string, 0, len(matches))
	for _, n := range matches {
		labels = append(labels, n.Label)
	}

	h.writeJSON(w, map[string]any{"matches": labels}, http.StatusOK)
}

// Highlight marks the node with exactly the given label.
func (h *GraphHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	n := h.svc.Engine().HighlightLabel(req.Label)
	if n == nil {
		h.writeError(w, "Not found", "no node with label "+req.Label, http.StatusNotFound)
		return
	}

	h.writeJSON(w, map[string]string{"label": n.Label}, http.StatusOK)
}

// ClearHighlights clears every highlight, manual and search.
func (h *GraphHandler) ClearHighlights(w http.ResponseWriter, r *http.Request) {
	h.svc.Engine().ClearAllHighlights()
	w.WriteHeader(http.StatusNoContent)
}

// ClearSearchHighlights clears search highlights only.
func (h *GraphHandler) ClearSearchHighlights(w http.ResponseWriter, r *http.Request) {
	h.svc.Engine().ClearSearchHighlights()
	w.WriteHeader(http.StatusNoContent)
}

// ImportYAML merges a topology document into the graph.
func (h *GraphHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.ImportYAML(r.Context(), data); err != nil {
		h.writeError(w, "Failed to import graph", err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportYAML serializes the current topology.
func (h *GraphHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportYAML()
	if err != nil {
		log.Printf("Failed to export graph: %v", err)
		h.writeError(w, "Failed to export graph", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}
