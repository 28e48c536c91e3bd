package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/gridmind-ai/gridmind"
)

func userMsg(content string) ai.Message {
	return ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleUser, Content: content}
}

func TestMemoryStoreHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("unknown session is empty", func(t *testing.T) {
		history, err := store.History(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("append then read", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, "s1", userMsg("hello")))
		require.NoError(t, store.Append(ctx, "s1", userMsg("again")))

		history, err := store.History(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "hello", history[0].Content)
		assert.Equal(t, "again", history[1].Content)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, "s2", userMsg("other")))
		history, err := store.History(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("history is a copy", func(t *testing.T) {
		history, err := store.History(ctx, "s1")
		require.NoError(t, err)
		history[0].Content = "mutated"

		fresh, err := store.History(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "hello", fresh[0].Content)
	})

	t.Run("clear removes the session", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, "s1"))
		history, err := store.History(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestMemoryStoreMaxHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxHistory(3))

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, "s", userMsg(fmt.Sprintf("msg-%d", i))))
	}

	history, err := store.History(ctx, "s")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "msg-2", history[0].Content, "oldest messages dropped first")
	assert.Equal(t, "msg-4", history[2].Content)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session := fmt.Sprintf("s-%d", i%2)
			for j := 0; j < 20; j++ {
				assert.NoError(t, store.Append(ctx, session, userMsg("m")))
			}
		}(i)
	}
	wg.Wait()

	for _, id := range []string{"s-0", "s-1"} {
		history, err := store.History(ctx, id)
		require.NoError(t, err)
		assert.Len(t, history, 100)
	}
}

func TestMemoryStorePrune(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Append(ctx, "old", userMsg("m")))
	require.NoError(t, store.Append(ctx, "new", userMsg("m")))
	assert.Equal(t, 2, store.Len())

	// Everything was appended just now, so a generous idle window keeps both.
	assert.Equal(t, 0, store.Prune(time.Minute))
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 2, store.Prune(-time.Minute))
	assert.Equal(t, 0, store.Len())
}
