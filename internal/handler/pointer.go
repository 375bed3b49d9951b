package handler

import (
	"encoding/json"
	"net/http"

	"orrery/internal/engine"
)

// Pointer feeds one pointer event into the interaction state machine.
// Event is one of "down", "move", "up", "leave"; button is "primary" or
// "secondary" and only matters on "down".
func (h *GraphHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Event  string  `json:"event"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Button string  `json:"button"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	eng := h.svc.Engine()
	switch req.Event {
	case "down":
		button := engine.ButtonPrimary
		if req.Button == "secondary" {
			button = engine.ButtonSecondary
		}
		eng.PointerDown(req.X, req.Y, button)
	case "move":
		eng.PointerMove(req.X, req.Y)
	case "up":
		eng.PointerUp()
	case "leave":
		eng.PointerLeave()
	default:
		h.writeError(w, "Invalid pointer event", "unknown event "+req.Event, http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]string{"mode": eng.Mode().String()}, http.StatusOK)
}

// Wheel applies one scroll notch to the zoom.
func (h *GraphHandler) Wheel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	h.svc.Engine().Wheel(req.Delta)
	w.WriteHeader(http.StatusNoContent)
}

// Viewport resizes the projection to track the client surface.
func (h *GraphHandler) Viewport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		h.writeError(w, "Invalid viewport", "width and height must be positive", http.StatusBadRequest)
		return
	}

	h.svc.Engine().Resize(req.Width, req.Height)
	w.WriteHeader(http.StatusNoContent)
}
