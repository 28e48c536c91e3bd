package assistant

import (
	"github.com/gridmind-ai/gridmind/excel"
)

// Intent labels produced by the chat workflow's classifier.
const (
	IntentExcelQuery   = "excel_query"
	IntentGeneralQuery = "general_query"
)

// ChatState is the typed record flowing through the chat workflow.
type ChatState struct {
	// Message is the user's input, set before the run and never changed.
	Message string

	// Context is the spreadsheet context accompanying the message.
	Context *excel.Context

	// SessionID identifies the conversation.
	SessionID string

	// Response is the assistant's reply, built up across nodes.
	Response string

	// Actions are spreadsheet operations for the client to perform.
	Actions []excel.Action

	// Reasoning explains how the intent was classified.
	Reasoning string

	// Intent is the classified intent label.
	Intent string
}

// ChatUpdate is a partial update to ChatState. Nil fields leave the
// corresponding state field unchanged.
type ChatUpdate struct {
	Response  *string
	Reasoning *string
	Intent    *string

	// Actions replaces the action list when non-nil.
	Actions []excel.Action
}

// Apply merges the update into the state and returns the new state.
func (u ChatUpdate) Apply(s ChatState) ChatState {
	if u.Response != nil {
		s.Response = *u.Response
	}
	if u.Reasoning != nil {
		s.Reasoning = *u.Reasoning
	}
	if u.Intent != nil {
		s.Intent = *u.Intent
	}
	if u.Actions != nil {
		s.Actions = u.Actions
	}
	return s
}

// AnalysisState is the typed record flowing through the analysis workflow.
type AnalysisState struct {
	// Data is the grid under analysis, set before the run.
	Data *excel.Data

	// Query optionally focuses the analysis.
	Query string

	// AnalysisType optionally names the requested analysis kind.
	AnalysisType string

	// Insights accumulates findings across nodes.
	Insights []excel.Insight

	// Suggestions holds recommended follow-up actions.
	Suggestions []excel.Suggestion

	// Visualizations holds suggested charts.
	Visualizations []excel.Visualization

	// Summary is the final narrative, set by the last node.
	Summary string
}

// AnalysisUpdate is a partial update to AnalysisState. Insights are
// appended to the accumulator; the other slices replace when non-nil.
type AnalysisUpdate struct {
	// AppendInsights is added to the end of the insight accumulator.
	AppendInsights []excel.Insight

	Suggestions    []excel.Suggestion
	Visualizations []excel.Visualization
	Summary        *string
}

// Apply merges the update into the state and returns the new state.
func (u AnalysisUpdate) Apply(s AnalysisState) AnalysisState {
	if len(u.AppendInsights) > 0 {
		merged := make([]excel.Insight, 0, len(s.Insights)+len(u.AppendInsights))
		merged = append(merged, s.Insights...)
		merged = append(merged, u.AppendInsights...)
		s.Insights = merged
	}
	if u.Suggestions != nil {
		s.Suggestions = u.Suggestions
	}
	if u.Visualizations != nil {
		s.Visualizations = u.Visualizations
	}
	if u.Summary != nil {
		s.Summary = *u.Summary
	}
	return s
}

func strPtr(s string) *string { return &s }
