package agui

import (
	"errors"
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/gridmind-ai/gridmind/event"
)

func TestNewMapper(t *testing.T) {
	t.Run("with provided IDs", func(t *testing.T) {
		m := NewMapper("thread-123", "run-456")
		if m.ThreadID() != "thread-123" {
			t.Errorf("expected thread ID 'thread-123', got %q", m.ThreadID())
		}
		if m.RunID() != "run-456" {
			t.Errorf("expected run ID 'run-456', got %q", m.RunID())
		}
	})

	t.Run("generates IDs when empty", func(t *testing.T) {
		m := NewMapper("", "")
		if m.ThreadID() == "" {
			t.Error("expected generated thread ID, got empty")
		}
		if m.RunID() == "" {
			t.Error("expected generated run ID, got empty")
		}
	})
}

func TestMapperLifecycleEvents(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	t.Run("RunStarted", func(t *testing.T) {
		ev := m.RunStarted()
		if ev.Type() != events.EventTypeRunStarted {
			t.Errorf("expected RUN_STARTED, got %s", ev.Type())
		}
	})

	t.Run("RunFinished", func(t *testing.T) {
		ev := m.RunFinished()
		if ev.Type() != events.EventTypeRunFinished {
			t.Errorf("expected RUN_FINISHED, got %s", ev.Type())
		}
	})

	t.Run("RunError", func(t *testing.T) {
		ev := m.RunError(errors.New("test error"))
		if ev.Type() != events.EventTypeRunError {
			t.Errorf("expected RUN_ERROR, got %s", ev.Type())
		}
	})

	t.Run("RunError with nil error", func(t *testing.T) {
		ev := m.RunError(nil)
		if ev.Type() != events.EventTypeRunError {
			t.Errorf("expected RUN_ERROR, got %s", ev.Type())
		}
	})
}

func TestMapperMapEvent(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	cases := []struct {
		name string
		in   event.Event
		want events.EventType
	}{
		{"run start", event.Event{Type: event.RunStart}, events.EventTypeRunStarted},
		{"run end", event.Event{Type: event.RunEnd}, events.EventTypeRunFinished},
		{"run error", event.Event{Type: event.RunError, Error: errors.New("boom")}, events.EventTypeRunError},
		{"node start", event.Event{Type: event.NodeStart, Node: "understand_intent"}, events.EventTypeStepStarted},
		{"node end", event.Event{Type: event.NodeEnd, Node: "understand_intent"}, events.EventTypeStepFinished},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.MapEvent(tc.in)
			if got == nil {
				t.Fatal("expected event, got nil")
			}
			if got.Type() != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got.Type())
			}
		})
	}

	t.Run("route selected has no AG-UI equivalent", func(t *testing.T) {
		got := m.MapEvent(event.Event{Type: event.RouteSelected, Router: "route_by_intent", Label: "excel_query"})
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("unknown type returns nil", func(t *testing.T) {
		got := m.MapEvent(event.Event{Type: event.Type("bogus")})
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
