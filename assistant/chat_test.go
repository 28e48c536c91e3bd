package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind-ai/gridmind/ai"
	"github.com/gridmind-ai/gridmind/excel"
)

func salesContext() *excel.Context {
	return &excel.Context{
		Data: &excel.Data{
			Values: [][]any{
				{"Region", "Sales"},
				{"North", 300.0},
				{"South", 100.0},
			},
			Address:   "A1:B3",
			Headers:   []string{"Region", "Sales"},
			SheetName: "Q3",
		},
		SelectedRange: "B2:B3",
		SheetName:     "Q3",
	}
}

func TestUnderstandIntent(t *testing.T) {
	cases := []struct {
		name    string
		message string
		ctx     *excel.Context
		want    string
	}{
		{"keyword match", "write a formula for me", nil, IntentExcelQuery},
		{"context without keywords", "what should I do next", salesContext(), IntentExcelQuery},
		{"selection only context", "help me out", &excel.Context{SelectedRange: "A1:A5"}, IntentExcelQuery},
		{"general question", "what's the weather like", nil, IntentGeneralQuery},
		{"keyword is case-insensitive", "make a CHART please", nil, IntentExcelQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			update, err := understandIntent(context.Background(), ChatState{
				Message: tc.message,
				Context: tc.ctx,
			})
			require.NoError(t, err)

			state := update.Apply(ChatState{Message: tc.message, Context: tc.ctx})
			assert.Equal(t, tc.want, state.Intent)
			assert.NotEmpty(t, state.Reasoning)
		})
	}
}

func TestChatWorkflowWithoutProvider(t *testing.T) {
	g, err := BuildChatGraph(nil)
	require.NoError(t, err)

	t.Run("excel query with data", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message:   "summarize this data",
			Context:   salesContext(),
			SessionID: "s-1",
		})
		require.NoError(t, err)

		assert.Equal(t, IntentExcelQuery, final.Intent)
		assert.Contains(t, final.Response, "3 rows")
		assert.Empty(t, final.Actions)
	})

	t.Run("general query redirects", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message: "tell me a joke",
		})
		require.NoError(t, err)

		assert.Equal(t, IntentGeneralQuery, final.Intent)
		assert.Contains(t, final.Response, "I'm focused on helping with Excel tasks")
		assert.Contains(t, final.Response, "'tell me a joke'")
		assert.Empty(t, final.Actions)
	})

	t.Run("formula request over selection yields insert_formula action", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message: "insert a sum formula here",
			Context: salesContext(),
		})
		require.NoError(t, err)

		require.Len(t, final.Actions, 1)
		action := final.Actions[0]
		assert.Equal(t, "insert_formula", action.Type)
		assert.Equal(t, "B2:B3", action.Target)
		assert.Equal(t, "=SUM(A1:A10)", action.Payload["formula"])
		assert.Contains(t, final.Response, "1 action(s) in Excel")
	})

	t.Run("chart request over data yields create_chart action", func(t *testing.T) {
		ctx := salesContext()
		ctx.SelectedRange = ""
		final, err := g.Run(context.Background(), ChatState{
			Message: "make a chart of this",
			Context: ctx,
		})
		require.NoError(t, err)

		require.Len(t, final.Actions, 1)
		action := final.Actions[0]
		assert.Equal(t, "create_chart", action.Type)
		assert.Equal(t, "A1:B3", action.Target)
		assert.Equal(t, "column", action.Payload["chart_type"])
	})

	t.Run("formula request without selection yields no actions", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message: "write a formula",
		})
		require.NoError(t, err)

		assert.Empty(t, final.Actions)
		assert.NotContains(t, final.Response, "action(s)")
	})
}

func TestChatWorkflowWithProvider(t *testing.T) {
	t.Run("response comes from the completion service", func(t *testing.T) {
		provider := &stubProvider{content: "Here is what your sales data shows."}
		g, err := BuildChatGraph(ai.NewService(provider))
		require.NoError(t, err)

		final, err := g.Run(context.Background(), ChatState{
			Message: "summarize this data",
			Context: salesContext(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Here is what your sales data shows.", final.Response)
	})

	t.Run("formula action uses the generated formula", func(t *testing.T) {
		provider := &stubProvider{content: `{"formula":"=SUM(B2:B3)","explanation":"","example":"","confidence":0.9}`}
		g, err := BuildChatGraph(ai.NewService(provider))
		require.NoError(t, err)

		final, err := g.Run(context.Background(), ChatState{
			Message: "insert a formula",
			Context: salesContext(),
		})
		require.NoError(t, err)

		require.Len(t, final.Actions, 1)
		assert.Equal(t, "=SUM(B2:B3)", final.Actions[0].Payload["formula"])
	})
}

func TestChatWorkflowWithFailingProvider(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	g, err := BuildChatGraph(ai.NewService(provider))
	require.NoError(t, err)

	t.Run("excel query reaches the end with a fallback reply", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message: "insert a formula",
			Context: salesContext(),
		})
		require.NoError(t, err)

		assert.Contains(t, final.Response, "I'd be happy to help with your Excel task")
		require.Len(t, final.Actions, 1)
		assert.Equal(t, "insert_formula", final.Actions[0].Type)
		assert.Equal(t, "=SUM(A:A)", final.Actions[0].Payload["formula"])
	})

	t.Run("query without data reaches the end with a fallback reply", func(t *testing.T) {
		final, err := g.Run(context.Background(), ChatState{
			Message: "sum column B",
		})
		require.NoError(t, err)
		assert.Contains(t, final.Response, "Try selecting some data first")
	})
}
