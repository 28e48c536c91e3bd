// Package agui provides utilities for integrating gridmind with the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol that
// standardizes how AI agents connect to user-facing applications. This package
// maps gridmind workflow events to AG-UI events so an AG-UI-compatible frontend
// (such as an Excel add-in task pane) can follow a run as it traverses the graph.
//
// # Overview
//
// This package provides:
//   - [Mapper]: converts workflow events to AG-UI events for a single run
//   - Message conversion utilities: [ToMessages], [FromMessages]
//   - Tool conversion utilities for tool definitions sent by the frontend
//
// The package does NOT provide HTTP handlers or transport implementations. Users
// are responsible for implementing their own server using the AG-UI SDK's SSE
// writer or their preferred transport mechanism.
//
// # Usage
//
// Create a Mapper for each run and use it to convert workflow events:
//
//	mapper := agui.NewMapper(threadID, runID)
//	ch := event.NewChannel()
//
//	go func() {
//	    for e := range ch {
//	        if aguiEvent := mapper.MapEvent(e); aguiEvent != nil {
//	            writeEvent(aguiEvent)
//	        }
//	    }
//	}()
//
//	final, err := compiled.Run(ctx, initial, graph.WithEvents(ch))
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use. Each goroutine should have its own
// Mapper instance. Message conversion functions are stateless and safe for
// concurrent use.
package agui
