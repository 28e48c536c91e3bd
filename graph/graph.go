package graph

import (
	"context"
	"fmt"
	"sort"
)

// End is the terminal marker. Every valid path through a compiled graph
// reaches it; an edge to End terminates the run.
const End = "__end__"

// Update is a partial state update produced by a node. Apply merges the
// update into the state and returns the result, overwriting only the fields
// the node set. A nil Update leaves the state unchanged.
type Update[S any] interface {
	Apply(S) S
}

// Node is a single workflow step: given the current state it produces a
// partial update. Nodes may perform I/O and must honor ctx cancellation.
type Node[S any] func(ctx context.Context, state S) (Update[S], error)

// Label names one outcome of a routing decision.
type Label string

// Router is a named decision function. Route inspects the post-update state
// and returns one of the labels in Labels; the label set is closed and is
// validated against the conditional-edge target map at compile time.
type Router[S any] struct {
	Name   string
	Labels []Label
	Route  func(S) Label
}

type conditionalEdge[S any] struct {
	router  Router[S]
	targets map[Label]string
}

// Builder accumulates a graph definition. Methods may be called in any
// order; all validation happens in Compile.
type Builder[S any] struct {
	entry       string
	nodes       map[string]Node[S]
	nodeOrder   []string
	edges       map[string]string
	conditional map[string]conditionalEdge[S]
	errs        []string
}

// NewBuilder creates an empty graph builder.
func NewBuilder[S any]() *Builder[S] {
	return &Builder[S]{
		nodes:       make(map[string]Node[S]),
		edges:       make(map[string]string),
		conditional: make(map[string]conditionalEdge[S]),
	}
}

// AddNode registers a node under the given identifier.
func (b *Builder[S]) AddNode(id string, fn Node[S]) *Builder[S] {
	switch {
	case id == "" || id == End:
		b.errs = append(b.errs, fmt.Sprintf("invalid node identifier %q", id))
	case fn == nil:
		b.errs = append(b.errs, fmt.Sprintf("node %q has no transform function", id))
	default:
		if _, exists := b.nodes[id]; exists {
			b.errs = append(b.errs, fmt.Sprintf("duplicate node %q", id))
			return b
		}
		b.nodes[id] = fn
		b.nodeOrder = append(b.nodeOrder, id)
	}
	return b
}

// AddEdge adds an unconditional edge, always taken after from completes.
// The destination may be End.
func (b *Builder[S]) AddEdge(from, to string) *Builder[S] {
	if _, exists := b.edges[from]; exists {
		b.errs = append(b.errs, fmt.Sprintf("node %q already has an outgoing edge", from))
		return b
	}
	if _, exists := b.conditional[from]; exists {
		b.errs = append(b.errs, fmt.Sprintf("node %q already has a conditional edge", from))
		return b
	}
	b.edges[from] = to
	return b
}

// AddConditionalEdge adds a routed edge: after from completes, router.Route
// is evaluated against the merged state and the resulting label selects the
// next node from targets. Target values may be End.
func (b *Builder[S]) AddConditionalEdge(from string, router Router[S], targets map[Label]string) *Builder[S] {
	if _, exists := b.edges[from]; exists {
		b.errs = append(b.errs, fmt.Sprintf("node %q already has an outgoing edge", from))
		return b
	}
	if _, exists := b.conditional[from]; exists {
		b.errs = append(b.errs, fmt.Sprintf("node %q already has a conditional edge", from))
		return b
	}
	b.conditional[from] = conditionalEdge[S]{router: router, targets: targets}
	return b
}

// SetEntryPoint designates the node where every run begins.
func (b *Builder[S]) SetEntryPoint(id string) *Builder[S] {
	b.entry = id
	return b
}

// Compile validates the accumulated definition and returns an immutable
// Graph. It fails with *IntegrityError if the entry point is unset or
// unregistered, any edge references an unregistered node, a router's label
// set is not covered by its target map, any node is unreachable from the
// entry point, End is unreachable, or the structure contains a cycle.
func (b *Builder[S]) Compile() (*Graph[S], error) {
	if len(b.errs) > 0 {
		return nil, &IntegrityError{Reason: b.errs[0]}
	}

	if b.entry == "" {
		return nil, &IntegrityError{Reason: "entry point not set"}
	}
	if _, ok := b.nodes[b.entry]; !ok {
		return nil, &IntegrityError{Reason: fmt.Sprintf("entry point %q is not a registered node", b.entry)}
	}

	valid := func(id string) bool {
		if id == End {
			return true
		}
		_, ok := b.nodes[id]
		return ok
	}

	for _, from := range sortedKeys(b.edges) {
		to := b.edges[from]
		if _, ok := b.nodes[from]; !ok {
			return nil, &IntegrityError{Reason: fmt.Sprintf("edge from unregistered node %q", from)}
		}
		if !valid(to) {
			return nil, &IntegrityError{Reason: fmt.Sprintf("edge from %q to unregistered node %q", from, to)}
		}
	}

	for _, from := range sortedKeys(b.conditional) {
		ce := b.conditional[from]
		if _, ok := b.nodes[from]; !ok {
			return nil, &IntegrityError{Reason: fmt.Sprintf("conditional edge from unregistered node %q", from)}
		}
		if ce.router.Route == nil {
			return nil, &IntegrityError{Reason: fmt.Sprintf("conditional edge from %q has no router function", from)}
		}
		if len(ce.router.Labels) == 0 {
			return nil, &IntegrityError{Reason: fmt.Sprintf("router %q declares no labels", ce.router.Name)}
		}
		if len(ce.targets) == 0 {
			return nil, &IntegrityError{Reason: fmt.Sprintf("conditional edge from %q has no targets", from)}
		}
		for _, label := range ce.router.Labels {
			if _, ok := ce.targets[label]; !ok {
				return nil, &IntegrityError{Reason: fmt.Sprintf("router %q label %q has no target at node %q", ce.router.Name, label, from)}
			}
		}
		for _, label := range sortedLabels(ce.targets) {
			if to := ce.targets[label]; !valid(to) {
				return nil, &IntegrityError{Reason: fmt.Sprintf("conditional edge from %q maps label %q to unregistered node %q", from, label, to)}
			}
		}
	}

	// Every node needs an outgoing edge; combined with acyclicity this makes
	// End reachable from every path, not just from the entry point.
	for _, id := range b.nodeOrder {
		_, hasEdge := b.edges[id]
		_, hasCond := b.conditional[id]
		if !hasEdge && !hasCond {
			return nil, &IntegrityError{Reason: fmt.Sprintf("node %q has no outgoing edge", id)}
		}
	}

	if err := b.checkReachability(); err != nil {
		return nil, err
	}
	if err := b.checkAcyclic(); err != nil {
		return nil, err
	}

	g := &Graph[S]{
		entry:       b.entry,
		nodes:       make(map[string]Node[S], len(b.nodes)),
		edges:       make(map[string]string, len(b.edges)),
		conditional: make(map[string]conditionalEdge[S], len(b.conditional)),
	}
	for id, fn := range b.nodes {
		g.nodes[id] = fn
	}
	for from, to := range b.edges {
		g.edges[from] = to
	}
	for from, ce := range b.conditional {
		targets := make(map[Label]string, len(ce.targets))
		for label, to := range ce.targets {
			targets[label] = to
		}
		g.conditional[from] = conditionalEdge[S]{router: ce.router, targets: targets}
	}
	return g, nil
}

// successors returns the outgoing destinations of a node, in a stable order.
func (b *Builder[S]) successors(id string) []string {
	if to, ok := b.edges[id]; ok {
		return []string{to}
	}
	if ce, ok := b.conditional[id]; ok {
		out := make([]string, 0, len(ce.targets))
		for _, label := range sortedLabels(ce.targets) {
			out = append(out, ce.targets[label])
		}
		return out
	}
	return nil
}

func (b *Builder[S]) checkReachability() error {
	seen := map[string]bool{b.entry: true}
	endReached := false
	queue := []string{b.entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range b.successors(id) {
			if next == End {
				endReached = true
				continue
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, id := range b.nodeOrder {
		if !seen[id] {
			return &IntegrityError{Reason: fmt.Sprintf("node %q is unreachable from entry point %q", id, b.entry)}
		}
	}
	if !endReached {
		return &IntegrityError{Reason: "no path from entry point reaches End"}
	}
	return nil
}

func (b *Builder[S]) checkAcyclic() error {
	const (
		visiting = 1
		done     = 2
	)
	color := make(map[string]int, len(b.nodes))

	var visit func(id string) error
	visit = func(id string) error {
		color[id] = visiting
		for _, next := range b.successors(id) {
			if next == End {
				continue
			}
			switch color[next] {
			case visiting:
				return &IntegrityError{Reason: fmt.Sprintf("cycle detected through node %q", next)}
			case done:
				continue
			default:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		color[id] = done
		return nil
	}

	for _, id := range b.nodeOrder {
		if color[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Graph is a compiled, immutable workflow definition. It holds no mutable
// run state and may be shared freely across concurrent runs.
type Graph[S any] struct {
	entry       string
	nodes       map[string]Node[S]
	edges       map[string]string
	conditional map[string]conditionalEdge[S]
}

// EntryPoint returns the identifier of the node where runs begin.
func (g *Graph[S]) EntryPoint() string { return g.entry }

// Nodes returns the registered node identifiers in sorted order.
func (g *Graph[S]) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedLabels(m map[Label]string) []Label {
	labels := make([]Label, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
