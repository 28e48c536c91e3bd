// Package event provides a unified event type for observing workflow runs.
// The event types are designed for 1:1 mapping with the AG-UI protocol so
// a front end can follow a run as it traverses the graph.
package event

import "time"

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a workflow run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run reaches the End marker.
	RunEnd Type = "run_end"

	// RunError fires when a run fails.
	RunError Type = "run_error"
)

// Node lifecycle events
const (
	// NodeStart fires when a node's transform function is invoked.
	NodeStart Type = "node_start"

	// NodeEnd fires after a node's partial update has been merged.
	NodeEnd Type = "node_end"
)

// Routing events
const (
	// RouteSelected fires when a conditional edge resolves a label.
	RouteSelected Type = "route_selected"
)

// Event represents an observable occurrence during a workflow run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Node identifies the node for node and routing events.
	Node string

	// Router identifies the router for RouteSelected events.
	Router string

	// Label is the resolved label for RouteSelected events.
	Label string

	// Error contains the error for RunError events.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
// A full channel drops the event rather than stalling the run.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
