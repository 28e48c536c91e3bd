package assistant

import (
	"context"
	"fmt"

	"github.com/gridmind-ai/gridmind/ai"
	"github.com/gridmind-ai/gridmind/excel"
	"github.com/gridmind-ai/gridmind/graph"
)

// BuildAnalysisGraph compiles the linear analysis workflow. The
// completion service may be nil, in which case only structural insights
// are produced.
func BuildAnalysisGraph(svc *ai.Service) (*graph.Graph[AnalysisState], error) {
	b := graph.NewBuilder[AnalysisState]()

	b.AddNode("analyze_structure", analyzeStructure)
	b.AddNode("generate_insights", generateInsights(svc))
	b.AddNode("suggest_visualizations", suggestVisualizations(svc))
	b.AddNode("create_summary", createSummary)

	b.SetEntryPoint("analyze_structure")
	b.AddEdge("analyze_structure", "generate_insights")
	b.AddEdge("generate_insights", "suggest_visualizations")
	b.AddEdge("suggest_visualizations", "create_summary")
	b.AddEdge("create_summary", graph.End)

	return b.Compile()
}

// analyzeStructure records structural insights: dataset size, the
// presence of headers, and any data quality problems the validator
// finds.
func analyzeStructure(_ context.Context, s AnalysisState) (graph.Update[AnalysisState], error) {
	if s.Data == nil {
		return nil, nil
	}

	var insights []excel.Insight

	if rows := s.Data.RowCount(); rows > 1000 {
		insights = append(insights, excel.Insight{
			Title:       "Large Dataset",
			Description: fmt.Sprintf("Dataset contains %d rows, which is quite substantial", rows),
			Confidence:  1.0,
			Category:    "summary",
		})
	}

	if len(s.Data.Headers) > 0 {
		insights = append(insights, excel.Insight{
			Title:       "Well-Structured Data",
			Description: "Data has proper column headers which aids in analysis",
			Confidence:  0.9,
			Category:    "summary",
		})
	}

	report := excel.NewValidator().Validate(s.Data)
	issues := make([]excel.ValidationError, 0, len(report.Errors)+len(report.Warnings))
	issues = append(issues, report.Errors...)
	issues = append(issues, report.Warnings...)
	if len(issues) > 0 {
		insights = append(insights, excel.Insight{
			Title:       "Data Quality Issues",
			Description: fmt.Sprintf("Validation flagged %d issue(s), e.g. %s", len(issues), issues[0].Message),
			Confidence:  0.7,
			Category:    "quality",
		})
	}

	return AnalysisUpdate{AppendInsights: insights}, nil
}

// generateInsights asks the completion service for patterns and trends
// and appends them to the insight accumulator.
func generateInsights(svc *ai.Service) graph.Node[AnalysisState] {
	return func(ctx context.Context, s AnalysisState) (graph.Update[AnalysisState], error) {
		if svc == nil || s.Data == nil {
			return nil, nil
		}

		analysis, err := svc.DetectPatterns(ctx, s.Data)
		if err != nil {
			return nil, err
		}

		var insights []excel.Insight

		for _, pattern := range analysis.Patterns {
			insights = append(insights, excel.Insight{
				Title:       fmt.Sprintf("Pattern: %s", stringField(pattern, "type", "Unknown")),
				Description: stringField(pattern, "description", "Pattern detected in data"),
				Confidence:  floatField(pattern, "confidence", 0.5),
				Category:    "pattern",
			})
		}

		for _, trend := range analysis.Trends {
			insights = append(insights, excel.Insight{
				Title:       fmt.Sprintf("Trend: %s", stringField(trend, "direction", "Unknown")),
				Description: stringField(trend, "description", "Trend detected in data"),
				Confidence:  0.8,
				Category:    "trend",
			})
		}

		return AnalysisUpdate{AppendInsights: insights}, nil
	}
}

// suggestVisualizations maps chart suggestions from the completion
// service to Visualization records over the data's range.
func suggestVisualizations(svc *ai.Service) graph.Node[AnalysisState] {
	return func(ctx context.Context, s AnalysisState) (graph.Update[AnalysisState], error) {
		if svc == nil || s.Data == nil {
			return nil, nil
		}

		suggestions, err := svc.SuggestCharts(ctx, s.Data, s.Query)
		if err != nil {
			return nil, err
		}

		visualizations := make([]excel.Visualization, 0, len(suggestions))
		for _, suggestion := range suggestions {
			visualizations = append(visualizations, excel.Visualization{
				ChartType:   suggestion.ChartType,
				Title:       suggestion.Title,
				DataRange:   s.Data.Address,
				Description: suggestion.Reasoning,
				Config:      map[string]any{"columns": suggestion.DataColumns},
			})
		}

		return AnalysisUpdate{Visualizations: visualizations}, nil
	}
}

// createSummary counts the findings and highlights the insight with the
// highest confidence. Ties keep the earliest insight.
func createSummary(_ context.Context, s AnalysisState) (graph.Update[AnalysisState], error) {
	summary := fmt.Sprintf("Analysis complete: Found %d insights and suggested %d visualizations. ",
		len(s.Insights), len(s.Visualizations))

	if len(s.Insights) > 0 {
		top := s.Insights[0]
		for _, insight := range s.Insights[1:] {
			if insight.Confidence > top.Confidence {
				top = insight
			}
		}
		summary += fmt.Sprintf("Key finding: %s - %s", top.Title, top.Description)
	}

	return AnalysisUpdate{Summary: strPtr(summary)}, nil
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func floatField(m map[string]any, key string, fallback float64) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return fallback
}
