package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind-ai/gridmind/event"
)

func linearGraph(t *testing.T) *Graph[testState] {
	t.Helper()
	g, err := NewBuilder[testState]().
		AddNode("a", visitNode("a")).
		AddNode("b", visitNode("b")).
		AddNode("c", visitNode("c")).
		AddEdge("a", "b").
		AddEdge("b", "c").
		AddEdge("c", End).
		SetEntryPoint("a").
		Compile()
	require.NoError(t, err)
	return g
}

func branchGraph(t *testing.T) *Graph[testState] {
	t.Helper()
	router := Router[testState]{
		Name:   "branch",
		Labels: []Label{"left", "right"},
		Route: func(s testState) Label {
			return Label(s.Label)
		},
	}
	g, err := NewBuilder[testState]().
		AddNode("start", visitNode("start")).
		AddNode("left", visitNode("left")).
		AddNode("right", visitNode("right")).
		AddConditionalEdge("start", router, map[Label]string{"left": "left", "right": "right"}).
		AddEdge("left", End).
		AddEdge("right", End).
		SetEntryPoint("start").
		Compile()
	require.NoError(t, err)
	return g
}

func TestRunLinearTraversal(t *testing.T) {
	state, err := linearGraph(t).Run(context.Background(), testState{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, state.Path)
}

func TestRunConditionalRouting(t *testing.T) {
	g := branchGraph(t)

	state, err := g.Run(context.Background(), testState{Label: "left"})
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "left"}, state.Path)

	state, err = g.Run(context.Background(), testState{Label: "right"})
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "right"}, state.Path)
}

func TestRunRoutingErrorOnUnmappedLabel(t *testing.T) {
	g := branchGraph(t)

	// The router's Route function can still return a label outside its
	// declared set at run time; that is a RoutingError.
	state, err := g.Run(context.Background(), testState{Label: "sideways"})

	var re *RoutingError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "start", re.Node)
	assert.Equal(t, "branch", re.Router)
	assert.Equal(t, Label("sideways"), re.Label)
	assert.Equal(t, []string{"start"}, state.Path, "state up to the failure is returned")
}

func TestRunMergePreservesUntouchedFields(t *testing.T) {
	label := "set-by-b"
	g, err := NewBuilder[testState]().
		AddNode("a", func(ctx context.Context, s testState) (Update[testState], error) {
			n := 7
			return testUpdate{visit: "a", count: &n}, nil
		}).
		AddNode("b", func(ctx context.Context, s testState) (Update[testState], error) {
			return testUpdate{label: &label}, nil
		}).
		AddNode("c", func(ctx context.Context, s testState) (Update[testState], error) {
			// A nil update leaves the state exactly as it was.
			return nil, nil
		}).
		AddEdge("a", "b").
		AddEdge("b", "c").
		AddEdge("c", End).
		SetEntryPoint("a").
		Compile()
	require.NoError(t, err)

	state, err := g.Run(context.Background(), testState{Path: []string{"seed"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"seed", "a"}, state.Path)
	assert.Equal(t, 7, state.Count, "field set by a survives b and c")
	assert.Equal(t, "set-by-b", state.Label)
}

func TestRunNodeError(t *testing.T) {
	boom := errors.New("boom")
	g, err := NewBuilder[testState]().
		AddNode("a", visitNode("a")).
		AddNode("b", func(ctx context.Context, s testState) (Update[testState], error) {
			return nil, boom
		}).
		AddEdge("a", "b").
		AddEdge("b", End).
		SetEntryPoint("a").
		Compile()
	require.NoError(t, err)

	state, err := g.Run(context.Background(), testState{})
	var ne *NodeError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "b", ne.Node)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, state.Path)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, err := NewBuilder[testState]().
		AddNode("a", visitNode("a")).
		AddNode("b", func(c context.Context, s testState) (Update[testState], error) {
			cancel()
			return testUpdate{visit: "b"}, nil
		}).
		AddNode("c", visitNode("c")).
		AddEdge("a", "b").
		AddEdge("b", "c").
		AddEdge("c", End).
		SetEntryPoint("a").
		Compile()
	require.NoError(t, err)

	state, err := g.Run(ctx, testState{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "b"}, state.Path, "node c never runs")
}

func TestRunTimeout(t *testing.T) {
	g, err := NewBuilder[testState]().
		AddNode("slow", func(ctx context.Context, s testState) (Update[testState], error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return testUpdate{visit: "slow"}, nil
			}
		}).
		AddEdge("slow", End).
		SetEntryPoint("slow").
		Compile()
	require.NoError(t, err)

	_, err = g.Run(context.Background(), testState{}, WithTimeout(10*time.Millisecond))
	var ne *NodeError
	require.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunNodeTimeout(t *testing.T) {
	t.Run("bounds each node invocation", func(t *testing.T) {
		g, err := NewBuilder[testState]().
			AddNode("slow", func(ctx context.Context, s testState) (Update[testState], error) {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return testUpdate{visit: "slow"}, nil
				}
			}).
			AddEdge("slow", End).
			SetEntryPoint("slow").
			Compile()
		require.NoError(t, err)

		_, err = g.Run(context.Background(), testState{}, WithNodeTimeout(10*time.Millisecond))
		var ne *NodeError
		require.ErrorAs(t, err, &ne)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("releases the timeout context after each node", func(t *testing.T) {
		var firstCtx context.Context
		g, err := NewBuilder[testState]().
			AddNode("a", func(ctx context.Context, s testState) (Update[testState], error) {
				firstCtx = ctx
				return testUpdate{visit: "a"}, nil
			}).
			AddNode("b", func(ctx context.Context, s testState) (Update[testState], error) {
				// The previous node's context must already be cancelled.
				assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
				return testUpdate{visit: "b"}, nil
			}).
			AddEdge("a", "b").
			AddEdge("b", End).
			SetEntryPoint("a").
			Compile()
		require.NoError(t, err)

		state, err := g.Run(context.Background(), testState{}, WithNodeTimeout(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, state.Path)
	})
}

func TestRunEmitsEvents(t *testing.T) {
	ch := event.NewChannel()
	g := branchGraph(t)

	_, err := g.Run(context.Background(), testState{Label: "left"}, WithEvents(ch))
	require.NoError(t, err)
	close(ch)

	var types []event.Type
	var routed event.Event
	for e := range ch {
		types = append(types, e.Type)
		if e.Type == event.RouteSelected {
			routed = e
		}
	}
	assert.Equal(t, []event.Type{
		event.RunStart,
		event.NodeStart, event.NodeEnd, event.RouteSelected,
		event.NodeStart, event.NodeEnd,
		event.RunEnd,
	}, types)
	assert.Equal(t, "branch", routed.Router)
	assert.Equal(t, "left", routed.Label)
	assert.Equal(t, "start", routed.Node)
}

func TestRunNodeHook(t *testing.T) {
	var visited []string
	_, err := linearGraph(t).Run(context.Background(), testState{},
		WithNodeHook(func(ctx context.Context, nodeID string) {
			visited = append(visited, nodeID)
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}

func TestRunConcurrentRunsAreIndependent(t *testing.T) {
	g := branchGraph(t)

	done := make(chan testState, 2)
	for _, label := range []string{"left", "right"} {
		go func(label string) {
			state, err := g.Run(context.Background(), testState{Label: label})
			assert.NoError(t, err)
			done <- state
		}(label)
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		state := <-done
		require.Len(t, state.Path, 2)
		seen[state.Path[1]] = true
	}
	assert.True(t, seen["left"] && seen["right"])
}
