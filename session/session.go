// Package session stores per-conversation chat history. Sessions are
// identified by opaque string IDs; history is capped so long-running
// conversations do not grow without bound.
package session

import (
	"context"
	"sync"
	"time"

	ai "github.com/gridmind-ai/gridmind"
)

// Store holds conversation history keyed by session ID.
type Store interface {
	// History returns the messages recorded for a session, oldest first.
	// An unknown session yields an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]ai.Message, error)

	// Append records messages at the end of a session's history, creating
	// the session if needed.
	Append(ctx context.Context, sessionID string, msgs ...ai.Message) error

	// Clear removes a session and its history.
	Clear(ctx context.Context, sessionID string) error
}

type sessionData struct {
	mu       sync.Mutex
	messages []ai.Message
	lastUsed time.Time
}

// MemoryStore is an in-memory Store. Each session carries its own lock
// so concurrent appends to different sessions never contend.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*sessionData
	maxHistory int
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxHistory caps the number of messages kept per session. When the
// cap is exceeded the oldest messages are dropped. Zero means unlimited.
func WithMaxHistory(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.maxHistory = n
	}
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{sessions: make(map[string]*sessionData)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) session(id string, create bool) *sessionData {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok || !create {
		return data
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok = s.sessions[id]; ok {
		return data
	}
	data = &sessionData{}
	s.sessions[id] = data
	return data
}

// History implements Store.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]ai.Message, error) {
	data := s.session(sessionID, false)
	if data == nil {
		return []ai.Message{}, nil
	}

	data.mu.Lock()
	defer data.mu.Unlock()
	out := make([]ai.Message, len(data.messages))
	copy(out, data.messages)
	return out, nil
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, sessionID string, msgs ...ai.Message) error {
	data := s.session(sessionID, true)

	data.mu.Lock()
	defer data.mu.Unlock()
	data.messages = append(data.messages, msgs...)
	data.lastUsed = time.Now()
	if s.maxHistory > 0 && len(data.messages) > s.maxHistory {
		overflow := len(data.messages) - s.maxHistory
		data.messages = append([]ai.Message(nil), data.messages[overflow:]...)
	}
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune removes sessions that have not been appended to within maxIdle
// and returns how many were removed.
func (s *MemoryStore) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, data := range s.sessions {
		data.mu.Lock()
		stale := data.lastUsed.Before(cutoff)
		data.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
