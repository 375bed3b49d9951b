// Package hub fans engine and graph events out to Server-Sent Events
// subscribers.
package hub

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const keepAliveInterval = 30 * time.Second

type client struct {
	id     string
	events chan []byte
}

// Hub owns the set of connected SSE clients. All membership changes go
// through the Run loop's channels; only the broadcast fan-out itself runs in
// Run's goroutine, so a slow client can never block a publisher.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan any
}

func New() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan any, 256),
	}
}

// Run processes registrations and broadcasts; the caller starts it in its
// own goroutine and it runs for the life of the process.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			log.Printf("sse client connected: %s (total %d)", c.id, len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.events)
			}
			log.Printf("sse client disconnected: %s (total %d)", c.id, len(h.clients))

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("marshal sse event: %v", err)
				continue
			}
			frame := []byte(fmt.Sprintf("data: %s\n\n", data))

			for c := range h.clients {
				select {
				case c.events <- frame:
				default:
					// Slow consumer; it misses this frame rather than
					// stalling everyone else.
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. Events are dropped,
// not queued unboundedly, when the hub is saturated.
func (h *Hub) Broadcast(event any) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("sse broadcast queue full, dropping event")
	}
}

// ServeHTTP subscribes the caller to the event stream until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{
		id:     uuid.NewString(),
		events: make(chan []byte, 64),
	}
	h.register <- c
	defer func() { h.unregister <- c }()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case frame, ok := <-c.events:
			if !ok {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()

		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
