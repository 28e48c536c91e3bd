package agui

import (
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ai "github.com/gridmind-ai/gridmind"
)

func strPtr(s string) *string { return &s }

func TestToMessage(t *testing.T) {
	t.Run("converts user message", func(t *testing.T) {
		msg := ToMessage(events.Message{
			ID:      "msg-1",
			Role:    RoleUser,
			Content: strPtr("sum column B"),
		})

		if msg.Role != ai.RoleUser {
			t.Errorf("expected user role, got %s", msg.Role)
		}
		if msg.Content != "sum column B" {
			t.Errorf("unexpected content: %q", msg.Content)
		}
	})

	t.Run("converts assistant tool calls", func(t *testing.T) {
		msg := ToMessage(events.Message{
			ID:   "msg-2",
			Role: RoleAssistant,
			ToolCalls: []events.ToolCall{{
				ID:   "call_1",
				Type: "function",
				Function: events.Function{
					Name:      "write_excel_cell",
					Arguments: `{"cell_address":"A1","value":5}`,
				},
			}},
		})

		if len(msg.ToolCalls) != 1 {
			t.Fatalf("expected 1 tool call, got %d", len(msg.ToolCalls))
		}
		if msg.ToolCalls[0].Name != "write_excel_cell" {
			t.Errorf("unexpected tool name: %q", msg.ToolCalls[0].Name)
		}
	})

	t.Run("converts tool result message", func(t *testing.T) {
		msg := ToMessage(events.Message{
			ID:         "msg-3",
			Role:       RoleTool,
			Content:    strPtr("done"),
			ToolCallID: strPtr("call_1"),
		})

		if msg.Role != ai.RoleTool {
			t.Errorf("expected tool role, got %s", msg.Role)
		}
		if len(msg.ToolResults) != 1 || msg.ToolResults[0].ToolCallID != "call_1" {
			t.Errorf("unexpected tool results: %+v", msg.ToolResults)
		}
	})

	t.Run("unknown role defaults to user", func(t *testing.T) {
		msg := ToMessage(events.Message{Role: "mystery"})
		if msg.Role != ai.RoleUser {
			t.Errorf("expected user role, got %s", msg.Role)
		}
	})
}

func TestFromMessage(t *testing.T) {
	t.Run("round-trips content and role", func(t *testing.T) {
		out := FromMessage(ai.Message{Role: ai.RoleAssistant, Content: "The total is 500."})

		if out.Role != RoleAssistant {
			t.Errorf("expected assistant role, got %s", out.Role)
		}
		if out.Content == nil || *out.Content != "The total is 500." {
			t.Errorf("unexpected content: %v", out.Content)
		}
		if out.ID == "" {
			t.Error("expected generated message ID")
		}
	})

	t.Run("converts tool calls", func(t *testing.T) {
		out := FromMessage(ai.Message{
			Role: ai.RoleAssistant,
			ToolCalls: []ai.ToolCall{{
				ID:        "call_1",
				Name:      "create_excel_chart",
				Arguments: `{"data_range":"A1:C10"}`,
			}},
		})

		if len(out.ToolCalls) != 1 {
			t.Fatalf("expected 1 tool call, got %d", len(out.ToolCalls))
		}
		if out.ToolCalls[0].Function.Name != "create_excel_chart" {
			t.Errorf("unexpected function name: %q", out.ToolCalls[0].Function.Name)
		}
	})

	t.Run("converts single tool result", func(t *testing.T) {
		out := FromMessage(ai.Message{
			Role:        ai.RoleTool,
			ToolResults: []ai.ToolResult{{ToolCallID: "call_1", Content: "ok"}},
		})

		if out.ToolCallID == nil || *out.ToolCallID != "call_1" {
			t.Errorf("unexpected tool call ID: %v", out.ToolCallID)
		}
		if out.Content == nil || *out.Content != "ok" {
			t.Errorf("unexpected content: %v", out.Content)
		}
	})
}

func TestParseTools(t *testing.T) {
	t.Run("parses raw tool definitions", func(t *testing.T) {
		raw := []any{
			map[string]any{
				"name":        "read_excel_range",
				"description": "Read data from a range",
				"parameters":  map[string]any{"type": "object"},
			},
		}

		tools, err := ParseTools(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tools) != 1 || tools[0].Name != "read_excel_range" {
			t.Errorf("unexpected tools: %+v", tools)
		}

		converted := ToTools(tools)
		if len(converted) != 1 || converted[0].Name != "read_excel_range" {
			t.Errorf("unexpected converted tools: %+v", converted)
		}
	})

	t.Run("empty input returns nil", func(t *testing.T) {
		tools, err := ParseTools(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tools != nil {
			t.Errorf("expected nil, got %+v", tools)
		}
	})
}
