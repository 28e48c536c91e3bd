package graph

import "fmt"

// IntegrityError reports a structural defect in a graph definition. It is
// returned by Compile; a graph that compiled cleanly never produces one
// during a run except when the run-time step bound trips, which indicates the
// compiled definition was mutated or the cycle check was bypassed.
type IntegrityError struct {
	Reason string
}

// Error returns a formatted message describing the defect.
func (e *IntegrityError) Error() string {
	return "graph: " + e.Reason
}

// RoutingError reports that a router returned a label with no entry in its
// conditional-edge mapping. It signals a programming defect in the
// node/router pairing, not a data error.
type RoutingError struct {
	Node   string
	Router string
	Label  Label
}

// Error returns a formatted message naming the node, router, and label.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("graph: router %q at node %q returned unmapped label %q", e.Router, e.Node, e.Label)
}

// NodeError wraps a failure from a node's transform function.
type NodeError struct {
	Node string
	Err  error
}

// Error returns a formatted message including the node identifier.
func (e *NodeError) Error() string {
	return fmt.Sprintf("graph: node %q failed: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *NodeError) Unwrap() error {
	return e.Err
}
