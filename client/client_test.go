package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/gridmind-ai/gridmind"
)

func TestMissingAPIKey(t *testing.T) {
	c := New(Config{Provider: ai.ProviderAnthropic})

	_, err := c.Chat(context.Background(), []ai.Message{
		{Role: ai.RoleUser, Content: "hi"},
	})

	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "anthropic", missing.Provider)
}

func TestUnsupportedProvider(t *testing.T) {
	c := New(Config{Provider: ai.Provider("cohere")})

	_, err := c.Chat(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestInitErrorIsSticky(t *testing.T) {
	c := New(Config{Provider: ai.ProviderOpenAI})

	_, err1 := c.Chat(context.Background(), nil)
	_, err2 := c.ChatStream(context.Background(), nil)
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
}

func TestRequestOptionsOrdering(t *testing.T) {
	c := New(Config{Provider: ai.ProviderOpenAI, Model: "gpt-4o"},
		WithDefaultTemperature(0.1),
		WithDefaultMaxTokens(1000),
	)

	// Per-request options land after defaults and override them.
	opts := c.requestOptions([]ai.Option{ai.WithMaxTokens(50)})
	applied := ai.ApplyOptions(opts...)

	assert.Equal(t, "gpt-4o", applied.Model)
	assert.Equal(t, 50, applied.MaxTokens)
	require.NotNil(t, applied.Temperature)
	assert.Equal(t, 0.1, *applied.Temperature)
}
