// Package graph implements a small directed-workflow engine: named nodes
// transform a shared state record, unconditional and conditional edges wire
// the nodes together, and a compiled graph runs an initial state through to
// the End marker.
//
// A graph is built once, validated by Compile, and is then immutable and safe
// to share across concurrent runs:
//
//	b := graph.NewBuilder[MyState]()
//	b.AddNode("classify", classify)
//	b.AddNode("answer", answer)
//	b.AddConditionalEdge("classify", router, map[graph.Label]string{
//	    "question": "answer",
//	    "other":    graph.End,
//	})
//	b.AddEdge("answer", graph.End)
//	b.SetEntryPoint("classify")
//	g, err := b.Compile()
//
//	final, err := g.Run(ctx, MyState{Input: "..."})
//
// Nodes return partial updates, never whole states: an Update's Apply method
// overwrites only the fields the node produced, so every untouched field
// keeps its prior value. Workflows are acyclic and single-pass; Compile
// rejects structural cycles and Run bounds node invocations by the node
// count.
package graph
