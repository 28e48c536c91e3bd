package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/gridmind-ai/gridmind/event"
)

// RunOption configures a single run.
type RunOption func(*runOptions)

type runOptions struct {
	timeout     time.Duration
	nodeTimeout time.Duration
	onNode      func(ctx context.Context, nodeID string)
	events      chan<- event.Event
}

// WithTimeout bounds the whole run. The run fails with the context error if
// it has not reached End within d.
func WithTimeout(d time.Duration) RunOption {
	return func(o *runOptions) {
		o.timeout = d
	}
}

// WithNodeTimeout bounds each node invocation individually.
func WithNodeTimeout(d time.Duration) RunOption {
	return func(o *runOptions) {
		o.nodeTimeout = d
	}
}

// WithNodeHook installs a callback invoked after each node's update has been
// merged. Useful for logging and tests.
func WithNodeHook(fn func(ctx context.Context, nodeID string)) RunOption {
	return func(o *runOptions) {
		o.onNode = fn
	}
}

// WithEvents streams run lifecycle events to ch. Emission is non-blocking;
// the caller owns the channel.
func WithEvents(ch chan<- event.Event) RunOption {
	return func(o *runOptions) {
		o.events = ch
	}
}

// Run executes the graph against an initial state and returns the final
// state once End is reached. Nodes execute strictly one at a time in
// traversal order; each node's partial update is merged before the next edge
// is resolved, and routers see the post-merge state. Run never mutates the
// graph; concurrent runs of the same compiled graph are independent.
//
// On error the state accumulated so far is returned alongside the error.
func (g *Graph[S]) Run(ctx context.Context, initial S, opts ...RunOption) (S, error) {
	o := &runOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	event.Emit(o.events, event.Event{Type: event.RunStart})

	state := initial
	current := g.entry

	// The compiled graph is acyclic, so a valid run invokes at most one node
	// per registered node.
	for steps := 0; ; steps++ {
		if steps >= len(g.nodes) {
			err := &IntegrityError{Reason: fmt.Sprintf("run exceeded %d steps without reaching End", len(g.nodes))}
			event.Emit(o.events, event.Event{Type: event.RunError, Error: err})
			return state, err
		}

		if err := ctx.Err(); err != nil {
			event.Emit(o.events, event.Event{Type: event.RunError, Node: current, Error: err})
			return state, err
		}

		fn, ok := g.nodes[current]
		if !ok {
			err := &IntegrityError{Reason: fmt.Sprintf("no node registered for %q", current)}
			event.Emit(o.events, event.Event{Type: event.RunError, Node: current, Error: err})
			return state, err
		}

		event.Emit(o.events, event.Event{Type: event.NodeStart, Node: current})

		update, err := g.invoke(ctx, fn, state, o.nodeTimeout)
		if err != nil {
			nodeErr := &NodeError{Node: current, Err: err}
			event.Emit(o.events, event.Event{Type: event.RunError, Node: current, Error: nodeErr})
			return state, nodeErr
		}
		if update != nil {
			state = update.Apply(state)
		}

		event.Emit(o.events, event.Event{Type: event.NodeEnd, Node: current})
		if o.onNode != nil {
			o.onNode(ctx, current)
		}

		next, err := g.next(current, state, o)
		if err != nil {
			event.Emit(o.events, event.Event{Type: event.RunError, Node: current, Error: err})
			return state, err
		}
		if next == End {
			event.Emit(o.events, event.Event{Type: event.RunEnd})
			return state, nil
		}
		current = next
	}
}

// invoke runs a single node, scoping the per-node timeout context to the
// invocation so its timer is released as soon as the node returns.
func (g *Graph[S]) invoke(ctx context.Context, fn Node[S], state S, nodeTimeout time.Duration) (Update[S], error) {
	if nodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, nodeTimeout)
		defer cancel()
	}
	return fn(ctx, state)
}

// next resolves the outgoing edge of a node against the post-merge state.
func (g *Graph[S]) next(current string, state S, o *runOptions) (string, error) {
	if ce, ok := g.conditional[current]; ok {
		label := ce.router.Route(state)
		to, ok := ce.targets[label]
		if !ok {
			return "", &RoutingError{Node: current, Router: ce.router.Name, Label: label}
		}
		event.Emit(o.events, event.Event{
			Type:   event.RouteSelected,
			Node:   current,
			Router: ce.router.Name,
			Label:  string(label),
		})
		return to, nil
	}
	if to, ok := g.edges[current]; ok {
		return to, nil
	}
	// Compile guarantees every node has an outgoing edge on some path to End,
	// so a missing edge here means the definition was tampered with.
	return "", &IntegrityError{Reason: fmt.Sprintf("node %q has no outgoing edge", current)}
}
