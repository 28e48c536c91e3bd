package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridmind-ai/gridmind/ai"
	"github.com/gridmind-ai/gridmind/excel"
	"github.com/gridmind-ai/gridmind/graph"
)

// excelKeywords are the terms the intent classifier treats as
// spreadsheet-related.
var excelKeywords = []string{
	"formula", "chart", "data", "cell", "column", "row", "sum", "average",
	"pivot", "filter", "sort", "analyze", "calculate", "graph", "table",
}

// BuildChatGraph compiles the chat workflow. The completion service may
// be nil, in which case replies fall back to deterministic templates.
func BuildChatGraph(svc *ai.Service) (*graph.Graph[ChatState], error) {
	b := graph.NewBuilder[ChatState]()

	b.AddNode("understand_intent", understandIntent)
	b.AddNode("process_excel_query", processExcelQuery(svc))
	b.AddNode("process_general_query", processGeneralQuery)
	b.AddNode("generate_actions", generateActions(svc))
	b.AddNode("finalize_response", finalizeResponse)

	b.SetEntryPoint("understand_intent")

	b.AddConditionalEdge("understand_intent", graph.Router[ChatState]{
		Name:   "route_by_intent",
		Labels: []graph.Label{IntentExcelQuery, IntentGeneralQuery},
		Route: func(s ChatState) graph.Label {
			return graph.Label(s.Intent)
		},
	}, map[graph.Label]string{
		IntentExcelQuery:   "process_excel_query",
		IntentGeneralQuery: "process_general_query",
	})

	b.AddEdge("process_excel_query", "generate_actions")
	b.AddEdge("process_general_query", "finalize_response")
	b.AddEdge("generate_actions", "finalize_response")
	b.AddEdge("finalize_response", graph.End)

	return b.Compile()
}

// understandIntent classifies the message as an Excel query or a general
// query based on spreadsheet context and keyword matches.
func understandIntent(_ context.Context, s ChatState) (graph.Update[ChatState], error) {
	hasContext := s.Context != nil && (s.Context.Data != nil || s.Context.SelectedRange != "")

	lower := strings.ToLower(s.Message)
	hasKeywords := false
	for _, kw := range excelKeywords {
		if strings.Contains(lower, kw) {
			hasKeywords = true
			break
		}
	}

	if hasContext || hasKeywords {
		return ChatUpdate{
			Intent:    strPtr(IntentExcelQuery),
			Reasoning: strPtr("Message appears to be Excel-related based on context or keywords"),
		}, nil
	}
	return ChatUpdate{
		Intent:    strPtr(IntentGeneralQuery),
		Reasoning: strPtr("Message appears to be a general query"),
	}, nil
}

// processExcelQuery answers spreadsheet questions. With a completion
// service the reply is generated (data-aware when context carries data);
// without one it falls back to templates mirroring the generated-path
// fallbacks.
func processExcelQuery(svc *ai.Service) graph.Node[ChatState] {
	return func(ctx context.Context, s ChatState) (graph.Update[ChatState], error) {
		var data *excel.Data
		if s.Context != nil {
			data = s.Context.Data
		}

		if svc != nil {
			response, err := svc.Answer(ctx, s.Message, data)
			if err != nil {
				return nil, err
			}
			return ChatUpdate{Response: strPtr(response)}, nil
		}

		if data != nil {
			return ChatUpdate{Response: strPtr(fmt.Sprintf(
				"I can help you with that Excel task. Based on your data with %d rows, here's what I suggest: tell me the outcome you need and I'll walk you through it.",
				data.RowCount()))}, nil
		}
		return ChatUpdate{Response: strPtr(fmt.Sprintf(
			"For Excel help with '%s', I can assist with formulas, charts, data analysis, and more. Try selecting some data first so I can provide more specific help.",
			s.Message))}, nil
	}
}

// processGeneralQuery redirects non-spreadsheet questions.
func processGeneralQuery(_ context.Context, s ChatState) (graph.Update[ChatState], error) {
	return ChatUpdate{Response: strPtr(fmt.Sprintf(
		"I'm focused on helping with Excel tasks. For '%s', I'd recommend using the Excel features or asking a more specific Excel-related question.",
		s.Message))}, nil
}

// generateActions derives spreadsheet actions from the message and
// context: insert_formula when a formula is requested over a selection,
// create_chart when a chart is requested over data.
func generateActions(svc *ai.Service) graph.Node[ChatState] {
	return func(ctx context.Context, s ChatState) (graph.Update[ChatState], error) {
		lower := strings.ToLower(s.Message)
		actions := []excel.Action{}

		switch {
		case strings.Contains(lower, "formula") && s.Context != nil && s.Context.SelectedRange != "":
			formula := "=SUM(A1:A10)"
			if svc != nil {
				result, err := svc.GenerateFormula(ctx, s.Context.Data, s.Message)
				if err == nil && result.Formula != "" {
					formula = result.Formula
				}
			}
			actions = append(actions, excel.Action{
				Type:        "insert_formula",
				Target:      s.Context.SelectedRange,
				Payload:     map[string]any{"formula": formula},
				Description: "Insert calculated formula",
			})

		case strings.Contains(lower, "chart") && s.Context != nil && s.Context.Data != nil:
			actions = append(actions, excel.Action{
				Type:        "create_chart",
				Target:      s.Context.Data.Address,
				Payload:     map[string]any{"chart_type": "column", "title": "Data Visualization"},
				Description: "Create chart from selected data",
			})
		}

		return ChatUpdate{Actions: actions}, nil
	}
}

// finalizeResponse appends a note about available actions.
func finalizeResponse(_ context.Context, s ChatState) (graph.Update[ChatState], error) {
	if len(s.Actions) == 0 {
		return nil, nil
	}
	response := s.Response + fmt.Sprintf("\n\nI can help you with %d action(s) in Excel.", len(s.Actions))
	return ChatUpdate{Response: strPtr(response)}, nil
}
