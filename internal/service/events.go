package service

// EventType names a bus event.
type EventType string

const (
	EventNodeSelected  EventType = "node_selected"
	EventCanvasClicked EventType = "canvas_clicked"
	EventGraphUpdated  EventType = "graph_updated"
	EventFrame         EventType = "frame"
)

// Event is what flows over the bus and out to SSE clients.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventBus fans events out to its subscribers. Subscribe before the
// producers start; the subscriber list is not guarded.
type EventBus struct {
	subscribers []chan<- Event
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe adds a channel that will receive every published event.
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish delivers event to every subscriber without blocking; a full
// subscriber misses the event.
func (eb *EventBus) Publish(event Event) {
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
