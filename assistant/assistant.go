// Package assistant implements the two spreadsheet workflows: a chat
// pipeline that classifies intent and answers spreadsheet questions, and
// a linear analysis pipeline that turns a data grid into insights,
// visualizations, and a summary. Both are compiled graphs run through
// the graph package; the Assistant facade wires in the completion
// service and session store.
package assistant

import (
	"context"

	"github.com/google/uuid"

	gridmind "github.com/gridmind-ai/gridmind"
	"github.com/gridmind-ai/gridmind/ai"
	"github.com/gridmind-ai/gridmind/excel"
	"github.com/gridmind-ai/gridmind/graph"
	"github.com/gridmind-ai/gridmind/session"
)

// ChatResponse is the result of a chat workflow run.
type ChatResponse struct {
	Content   string         `json:"content"`
	Actions   []excel.Action `json:"actions"`
	SessionID string         `json:"session_id"`
	Reasoning string         `json:"reasoning,omitempty"`
}

// AnalysisResponse is the result of an analysis workflow run.
type AnalysisResponse struct {
	Insights       []excel.Insight       `json:"insights"`
	Suggestions    []excel.Suggestion    `json:"suggestions"`
	Visualizations []excel.Visualization `json:"visualizations"`
	Summary        string                `json:"summary"`
}

// Assistant runs the chat and analysis workflows with shared
// collaborators. It is safe for concurrent use.
type Assistant struct {
	svc      *ai.Service
	sessions session.Store
	chat     *graph.Graph[ChatState]
	analysis *graph.Graph[AnalysisState]
	runOpts  []graph.RunOption
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithSessionStore sets the chat history store. Defaults to an
// in-memory store.
func WithSessionStore(store session.Store) Option {
	return func(a *Assistant) {
		a.sessions = store
	}
}

// WithRunOptions sets graph run options applied to every workflow run,
// such as timeouts or event channels.
func WithRunOptions(opts ...graph.RunOption) Option {
	return func(a *Assistant) {
		a.runOpts = opts
	}
}

// New creates an Assistant backed by the given chat provider. A nil
// provider is allowed: workflows then rely on their deterministic
// template paths.
func New(provider gridmind.ChatProvider, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		sessions: session.NewMemoryStore(),
	}
	if provider != nil {
		a.svc = ai.NewService(provider)
	}
	for _, opt := range opts {
		opt(a)
	}

	chat, err := BuildChatGraph(a.svc)
	if err != nil {
		return nil, err
	}
	analysis, err := BuildAnalysisGraph(a.svc)
	if err != nil {
		return nil, err
	}
	a.chat = chat
	a.analysis = analysis

	return a, nil
}

// Service returns the completion service, or nil when no provider was
// configured.
func (a *Assistant) Service() *ai.Service {
	return a.svc
}

// Sessions returns the chat history store.
func (a *Assistant) Sessions() session.Store {
	return a.sessions
}

// ProcessMessage runs the chat workflow for one user message. A blank
// sessionID starts a new session. The user message and assistant reply
// are appended to the session history around the run.
func (a *Assistant) ProcessMessage(ctx context.Context, message string, excelCtx *excel.Context, sessionID string, opts ...graph.RunOption) (*ChatResponse, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if err := a.sessions.Append(ctx, sessionID, gridmind.Message{
		ID:      gridmind.GenerateMessageID(),
		Role:    gridmind.RoleUser,
		Content: message,
	}); err != nil {
		return nil, err
	}

	initial := ChatState{
		Message:   message,
		Context:   excelCtx,
		SessionID: sessionID,
		Actions:   []excel.Action{},
	}

	final, err := a.chat.Run(ctx, initial, a.combine(opts)...)
	if err != nil {
		return nil, err
	}

	if err := a.sessions.Append(ctx, sessionID, gridmind.Message{
		ID:      gridmind.GenerateMessageID(),
		Role:    gridmind.RoleAssistant,
		Content: final.Response,
	}); err != nil {
		return nil, err
	}

	return &ChatResponse{
		Content:   final.Response,
		Actions:   final.Actions,
		SessionID: final.SessionID,
		Reasoning: final.Reasoning,
	}, nil
}

// AnalyzeData runs the analysis workflow over a data grid. The query
// and analysisType are optional.
func (a *Assistant) AnalyzeData(ctx context.Context, data *excel.Data, query, analysisType string, opts ...graph.RunOption) (*AnalysisResponse, error) {
	initial := AnalysisState{
		Data:           data,
		Query:          query,
		AnalysisType:   analysisType,
		Insights:       []excel.Insight{},
		Suggestions:    []excel.Suggestion{},
		Visualizations: []excel.Visualization{},
	}

	final, err := a.analysis.Run(ctx, initial, a.combine(opts)...)
	if err != nil {
		return nil, err
	}

	return &AnalysisResponse{
		Insights:       final.Insights,
		Suggestions:    final.Suggestions,
		Visualizations: final.Visualizations,
		Summary:        final.Summary,
	}, nil
}

// History returns the messages recorded for a session.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]gridmind.Message, error) {
	return a.sessions.History(ctx, sessionID)
}

// ClearHistory removes a session's messages.
func (a *Assistant) ClearHistory(ctx context.Context, sessionID string) error {
	return a.sessions.Clear(ctx, sessionID)
}

func (a *Assistant) combine(opts []graph.RunOption) []graph.RunOption {
	if len(opts) == 0 {
		return a.runOpts
	}
	combined := make([]graph.RunOption, 0, len(a.runOpts)+len(opts))
	combined = append(combined, a.runOpts...)
	combined = append(combined, opts...)
	return combined
}
