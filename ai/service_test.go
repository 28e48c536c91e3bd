package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind-ai/gridmind"
	"github.com/gridmind-ai/gridmind/excel"
)

// fakeProvider returns canned responses and records the prompts it received.
type fakeProvider struct {
	content string
	err     error
	prompts []string
	opts    []gridmind.Option
}

func (f *fakeProvider) Chat(ctx context.Context, messages []gridmind.Message, opts ...gridmind.Option) (*gridmind.Response, error) {
	if len(messages) > 0 {
		f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	}
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &gridmind.Response{Content: f.content}, nil
}

func (f *fakeProvider) ChatStream(ctx context.Context, messages []gridmind.Message, opts ...gridmind.Option) (<-chan gridmind.StreamEvent, error) {
	ch := make(chan gridmind.StreamEvent)
	close(ch)
	return ch, nil
}

func sampleData() *excel.Data {
	return &excel.Data{
		Values: [][]any{
			{"Region", "Sales"},
			{"North", 300.0},
			{"South", 100.0},
		},
		Address:   "A1:B3",
		Headers:   []string{"Region", "Sales"},
		SheetName: "Q3",
	}
}

func TestGenerateFormula(t *testing.T) {
	t.Run("parses formula result", func(t *testing.T) {
		provider := &fakeProvider{content: `{"formula":"=SUM(B2:B3)","explanation":"Adds sales","example":"400","confidence":0.95}`}
		svc := NewService(provider)

		result, err := svc.GenerateFormula(context.Background(), sampleData(), "sum the sales column")
		require.NoError(t, err)
		assert.Equal(t, "=SUM(B2:B3)", result.Formula)
		assert.Equal(t, 0.95, result.Confidence)
	})

	t.Run("prompt includes data context and request", func(t *testing.T) {
		provider := &fakeProvider{content: `{"formula":"=SUM(A:A)","explanation":"","example":"","confidence":0.5}`}
		svc := NewService(provider)

		_, err := svc.GenerateFormula(context.Background(), sampleData(), "sum the sales column")
		require.NoError(t, err)

		require.Len(t, provider.prompts, 1)
		prompt := provider.prompts[0]
		assert.Contains(t, prompt, "Range: A1:B3")
		assert.Contains(t, prompt, "Headers: Region, Sales")
		assert.Contains(t, prompt, "Sheet: Q3")
		assert.Contains(t, prompt, "sum the sales column")
	})

	t.Run("falls back on provider error", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("provider down")}
		svc := NewService(provider)

		result, err := svc.GenerateFormula(context.Background(), sampleData(), "anything")
		require.NoError(t, err)
		assert.Equal(t, "=SUM(A:A)", result.Formula)
		assert.Contains(t, result.Explanation, "provider down")
		assert.Equal(t, 0.1, result.Confidence)
	})

	t.Run("falls back on unparsable content", func(t *testing.T) {
		provider := &fakeProvider{content: "sorry, I can't do that"}
		svc := NewService(provider)

		result, err := svc.GenerateFormula(context.Background(), sampleData(), "anything")
		require.NoError(t, err)
		assert.Equal(t, 0.1, result.Confidence)
	})

	t.Run("strips markdown code fences", func(t *testing.T) {
		provider := &fakeProvider{content: "```json\n{\"formula\":\"=AVERAGE(B:B)\",\"explanation\":\"\",\"example\":\"\",\"confidence\":0.8}\n```"}
		svc := NewService(provider)

		result, err := svc.GenerateFormula(context.Background(), sampleData(), "average")
		require.NoError(t, err)
		assert.Equal(t, "=AVERAGE(B:B)", result.Formula)
	})
}

func TestSuggestCharts(t *testing.T) {
	t.Run("parses suggestions", func(t *testing.T) {
		provider := &fakeProvider{content: `{"suggestions":[{"chart_type":"column","title":"Sales by Region","reasoning":"categorical vs numeric","data_columns":["Region","Sales"],"confidence":0.9}]}`}
		svc := NewService(provider)

		suggestions, err := svc.SuggestCharts(context.Background(), sampleData(), "quarterly report")
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "column", suggestions[0].ChartType)
		assert.Equal(t, []string{"Region", "Sales"}, suggestions[0].DataColumns)
	})

	t.Run("falls back to bar chart on error", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("timeout")}
		svc := NewService(provider)

		suggestions, err := svc.SuggestCharts(context.Background(), sampleData(), "")
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "bar_chart", suggestions[0].ChartType)
		assert.Equal(t, []string{"Region", "Sales"}, suggestions[0].DataColumns)
		assert.Equal(t, 0.1, suggestions[0].Confidence)
	})

	t.Run("falls back on error with nil data", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("timeout")}
		svc := NewService(provider)

		suggestions, err := svc.SuggestCharts(context.Background(), nil, "")
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "bar_chart", suggestions[0].ChartType)
		assert.Empty(t, suggestions[0].DataColumns)
		assert.Equal(t, 0.1, suggestions[0].Confidence)
	})

	t.Run("falls back when suggestions are empty", func(t *testing.T) {
		provider := &fakeProvider{content: `{"suggestions":[]}`}
		svc := NewService(provider)

		suggestions, err := svc.SuggestCharts(context.Background(), sampleData(), "")
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, 0.1, suggestions[0].Confidence)
	})
}

func TestDetectPatterns(t *testing.T) {
	t.Run("parses analysis", func(t *testing.T) {
		provider := &fakeProvider{content: `{"patterns":[{"type":"seasonal","description":"summer peak","confidence":0.8}],"anomalies":[],"trends":[{"direction":"increasing"}],"correlations":[]}`}
		svc := NewService(provider)

		analysis, err := svc.DetectPatterns(context.Background(), sampleData())
		require.NoError(t, err)
		require.Len(t, analysis.Patterns, 1)
		assert.Equal(t, "seasonal", analysis.Patterns[0]["type"])
		assert.Len(t, analysis.Trends, 1)
	})

	t.Run("returns empty analysis on error", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("boom")}
		svc := NewService(provider)

		analysis, err := svc.DetectPatterns(context.Background(), sampleData())
		require.NoError(t, err)
		assert.Empty(t, analysis.Patterns)
		assert.Empty(t, analysis.Anomalies)
		assert.Empty(t, analysis.Trends)
		assert.Empty(t, analysis.Correlations)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("parses summary", func(t *testing.T) {
		provider := &fakeProvider{content: `{"text":"Sales data for two regions.","key_metrics":{"total_rows":3},"highlights":["North leads"],"recommendations":["Add more months"]}`}
		svc := NewService(provider)

		summary, err := svc.Summarize(context.Background(), sampleData(), []string{"regional performance"})
		require.NoError(t, err)
		assert.Equal(t, "Sales data for two regions.", summary.Text)
		assert.Equal(t, []string{"North leads"}, summary.Highlights)
	})

	t.Run("focus areas appear in prompt", func(t *testing.T) {
		provider := &fakeProvider{content: `{"text":"x","key_metrics":{},"highlights":[],"recommendations":[]}`}
		svc := NewService(provider)

		_, err := svc.Summarize(context.Background(), sampleData(), []string{"trends", "outliers"})
		require.NoError(t, err)
		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Focus Areas: trends, outliers")
	})

	t.Run("error summary carries the failure", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("quota exceeded")}
		svc := NewService(provider)

		summary, err := svc.Summarize(context.Background(), sampleData(), nil)
		require.NoError(t, err)
		assert.Contains(t, summary.Text, "quota exceeded")
		assert.Equal(t, true, summary.KeyMetrics["error"])
	})
}

func TestAnswer(t *testing.T) {
	t.Run("returns provider content", func(t *testing.T) {
		provider := &fakeProvider{content: "Use =SUMIF(A:A,\"North\",B:B)."}
		svc := NewService(provider)

		answer, err := svc.Answer(context.Background(), "sum sales for North", sampleData())
		require.NoError(t, err)
		assert.Equal(t, "Use =SUMIF(A:A,\"North\",B:B).", answer)
		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Range: A1:B3")
	})

	t.Run("canned reply on provider failure with data", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("down")}
		svc := NewService(provider)

		answer, err := svc.Answer(context.Background(), "help", sampleData())
		require.NoError(t, err)
		assert.Contains(t, answer, "Could you provide more details")
	})

	t.Run("canned reply on provider failure without data", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("down")}
		svc := NewService(provider)

		answer, err := svc.Answer(context.Background(), "make a chart", nil)
		require.NoError(t, err)
		assert.Contains(t, answer, "'make a chart'")
		assert.Contains(t, answer, "selecting some data")
	})
}

func TestDataContext(t *testing.T) {
	t.Run("nil data", func(t *testing.T) {
		assert.Equal(t, "No data available.\n", DataContext(nil))
	})

	t.Run("caps sample at three rows", func(t *testing.T) {
		data := &excel.Data{
			Values:  [][]any{{1}, {2}, {3}, {4}, {5}},
			Address: "A1:A5",
		}
		ctx := DataContext(data)
		assert.Contains(t, ctx, "Row 3:")
		assert.NotContains(t, ctx, "Row 4:")
	})
}
