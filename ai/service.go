// Package ai provides the completion-service collaborator used by the
// assistant workflows. It wraps a gridmind.ChatProvider with prompt
// construction and JSON response parsing for spreadsheet tasks: formula
// generation, chart suggestion, pattern detection, and data summaries.
//
// Provider failures are recoverable: each method returns a fixed
// low-confidence fallback with a nil error rather than surfacing the
// failure, so a workflow run always completes.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gridmind-ai/gridmind"
	"github.com/gridmind-ai/gridmind/excel"
)

// fallbackConfidence marks results synthesized after a provider failure.
const fallbackConfidence = 0.1

// Service generates spreadsheet-oriented completions from a ChatProvider.
type Service struct {
	provider gridmind.ChatProvider
	opts     []gridmind.Option
}

// NewService creates a Service backed by the given provider. The options
// are applied to every request; per-method temperature settings are
// appended after them.
func NewService(provider gridmind.ChatProvider, opts ...gridmind.Option) *Service {
	return &Service{
		provider: provider,
		opts:     opts,
	}
}

// GenerateFormula produces an Excel formula from a natural language
// description of what the user wants. On provider error or unparsable
// content it returns a generic SUM fallback at low confidence.
func (s *Service) GenerateFormula(ctx context.Context, data *excel.Data, description string) (*excel.FormulaResult, error) {
	prompt := fmt.Sprintf(`You are an Excel formula expert. Generate an Excel formula based on the user's description.

Data Context:
%s
User Request: %s

Provide the Excel formula, a clear explanation of what it does, an example of how it would work with the provided data, and your confidence level (0.0 to 1.0).

Respond in JSON format:
{
  "formula": "=FORMULA_HERE",
  "explanation": "Clear explanation",
  "example": "Example usage",
  "confidence": 0.95
}`, DataContext(data), description)

	var result excel.FormulaResult
	if err := s.completeJSON(ctx, prompt, 0.1, &result); err != nil {
		return &excel.FormulaResult{
			Formula:     "=SUM(A:A)",
			Explanation: fmt.Sprintf("Error generating formula: %v", err),
			Example:     "Example not available",
			Confidence:  fallbackConfidence,
		}, nil
	}
	return &result, nil
}

// SuggestCharts recommends chart types for the data. The additional
// context string is optional. On failure it returns a single bar-chart
// fallback built from the data's column names.
func (s *Service) SuggestCharts(ctx context.Context, data *excel.Data, hint string) ([]excel.ChartSuggestion, error) {
	if hint == "" {
		hint = "None"
	}

	prompt := fmt.Sprintf(`You are a data visualization expert. Suggest the best chart types for this data.

Data Context:
%s
Additional Context: %s

Suggest 2-3 appropriate chart types with reasoning. Respond in JSON format:
{
  "suggestions": [
    {
      "chart_type": "bar_chart",
      "title": "Suggested title",
      "reasoning": "Why this chart is appropriate",
      "data_columns": ["column1", "column2"],
      "confidence": 0.9
    }
  ]
}`, DataContext(data), hint)

	var result struct {
		Suggestions []excel.ChartSuggestion `json:"suggestions"`
	}
	if err := s.completeJSON(ctx, prompt, 0.2, &result); err != nil || len(result.Suggestions) == 0 {
		reason := "Default suggestion"
		if err != nil {
			reason = fmt.Sprintf("Default suggestion due to error: %v", err)
		}
		var columns []string
		if data != nil {
			columns = data.ColumnNames()
		}
		return []excel.ChartSuggestion{{
			ChartType:   "bar_chart",
			Title:       "Data Overview",
			Reasoning:   reason,
			DataColumns: columns,
			Confidence:  fallbackConfidence,
		}}, nil
	}
	return result.Suggestions, nil
}

// DetectPatterns analyzes the data for patterns, anomalies, trends,
// and correlations. On failure it returns an empty analysis.
func (s *Service) DetectPatterns(ctx context.Context, data *excel.Data) (*excel.PatternAnalysis, error) {
	prompt := fmt.Sprintf(`You are a data analyst. Analyze this data for patterns, anomalies, trends, and correlations.

Data Context:
%s
Provide analysis in JSON format:
{
  "patterns": [
    {"type": "seasonal", "description": "Description", "confidence": 0.8}
  ],
  "anomalies": [
    {"row": 5, "column": 2, "value": "anomalous_value", "description": "Why it's anomalous"}
  ],
  "trends": [
    {"direction": "increasing", "strength": "strong", "description": "Trend description"}
  ],
  "correlations": [
    {"columns": ["col1", "col2"], "strength": 0.8, "type": "positive"}
  ]
}`, DataContext(data))

	var result excel.PatternAnalysis
	if err := s.completeJSON(ctx, prompt, 0.1, &result); err != nil {
		return &excel.PatternAnalysis{
			Patterns:     []map[string]any{},
			Anomalies:    []map[string]any{},
			Trends:       []map[string]any{},
			Correlations: []map[string]any{},
		}, nil
	}
	return &result, nil
}

// Summarize produces a narrative summary of the data, optionally
// focused on particular areas. On failure the summary text carries the
// error and the metrics note the failure.
func (s *Service) Summarize(ctx context.Context, data *excel.Data, focusAreas []string) (*excel.DataSummary, error) {
	focus := "general overview"
	if len(focusAreas) > 0 {
		focus = strings.Join(focusAreas, ", ")
	}

	prompt := fmt.Sprintf(`You are a data analyst. Provide a comprehensive summary of this data.

Data Context:
%s
Focus Areas: %s

Provide summary in JSON format:
{
  "text": "Comprehensive text summary",
  "key_metrics": {
    "total_rows": 100,
    "total_columns": 5,
    "data_quality": "good"
  },
  "highlights": ["Key insight 1", "Key insight 2"],
  "recommendations": ["Recommendation 1", "Recommendation 2"]
}`, DataContext(data), focus)

	var result excel.DataSummary
	if err := s.completeJSON(ctx, prompt, 0.2, &result); err != nil {
		return &excel.DataSummary{
			Text:            fmt.Sprintf("Error generating summary: %v", err),
			KeyMetrics:      map[string]any{"error": true},
			Highlights:      []string{},
			Recommendations: []string{},
		}, nil
	}
	return &result, nil
}

// Answer responds to a spreadsheet question in plain text. When data is
// present the prompt carries the data-context block; otherwise the reply
// is general Excel guidance. On provider failure it returns a canned
// response and a nil error.
func (s *Service) Answer(ctx context.Context, message string, data *excel.Data) (string, error) {
	var prompt string
	if data != nil {
		prompt = fmt.Sprintf(`You are an Excel assistant embedded in a spreadsheet.

User message: %s

Data Context:
%s
Provide a helpful response for this Excel-related query. Be specific and actionable.`, message, DataContext(data))
	} else {
		prompt = fmt.Sprintf(`You are an Excel assistant embedded in a spreadsheet.

User message: %s

The user has no data selected. Provide helpful Excel guidance and suggest selecting a range so you can be more specific.`, message)
	}

	opts := make([]gridmind.Option, 0, len(s.opts)+1)
	opts = append(opts, s.opts...)
	opts = append(opts, gridmind.WithTemperature(0.7))

	resp, err := s.provider.Chat(ctx, []gridmind.Message{
		{Role: gridmind.RoleUser, Content: prompt},
	}, opts...)
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		if data != nil {
			return "I'd be happy to help with your Excel task. Could you provide more details?", nil
		}
		return fmt.Sprintf("For Excel help with '%s', I can assist with formulas, charts, data analysis, and more. Try selecting some data first so I can provide more specific help.", message), nil
	}
	return resp.Content, nil
}

// completeJSON sends the prompt and unmarshals the JSON reply into out.
func (s *Service) completeJSON(ctx context.Context, prompt string, temperature float64, out any) error {
	opts := make([]gridmind.Option, 0, len(s.opts)+2)
	opts = append(opts, s.opts...)
	opts = append(opts,
		gridmind.WithTemperature(temperature),
		gridmind.WithJSONResponse(),
	)

	resp, err := s.provider.Chat(ctx, []gridmind.Message{
		{Role: gridmind.RoleUser, Content: prompt},
	}, opts...)
	if err != nil {
		return err
	}

	content := extractJSON(resp.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &gridmind.UnmarshalError{
			Context:    "completion response",
			Content:    resp.Content,
			TargetType: fmt.Sprintf("%T", out),
			Err:        err,
		}
	}
	return nil
}

// extractJSON strips markdown code fences that some models wrap around
// JSON replies even when asked for raw JSON.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	return content
}

// DataContext renders the data-context block embedded in prompts:
// range, headers, sheet, dimensions, and the first few sample rows.
func DataContext(data *excel.Data) string {
	if data == nil {
		return "No data available.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Range: %s\n", data.Address)

	if len(data.Headers) > 0 {
		fmt.Fprintf(&b, "Headers: %s\n", strings.Join(data.Headers, ", "))
	}
	if data.SheetName != "" {
		fmt.Fprintf(&b, "Sheet: %s\n", data.SheetName)
	}

	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n", data.RowCount(), data.ColumnCount())

	if len(data.Values) > 0 {
		b.WriteString("Sample data (first 3 rows):\n")
		for i, row := range data.Values {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "Row %d: %v\n", i+1, row)
		}
	}

	return b.String()
}
