// Package client provides a unified, retrying ai.ChatProvider that
// fronts the concrete provider SDK wrappers. The backend is selected by
// configuration; provider clients are lazily initialized on first use.
package client

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/gridmind-ai/gridmind"
	"github.com/gridmind-ai/gridmind/provider/anthropic"
	"github.com/gridmind-ai/gridmind/provider/google"
	"github.com/gridmind-ai/gridmind/provider/openai"
	"github.com/gridmind-ai/gridmind/retry"
)

// APIKeys holds API keys for each provider. Only configure keys for
// providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config holds configuration for creating a unified client.
type Config struct {
	// Provider selects the backend.
	Provider ai.Provider

	// Model is the default model. Empty uses the provider's default.
	Model string

	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// RetryConfig configures retry behavior for transient errors.
	// If nil, the default configuration is used.
	RetryConfig *retry.Config
}

// ErrMissingAPIKey is returned when the selected provider has no API key
// configured.
type ErrMissingAPIKey struct {
	Provider string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a retrying ai.ChatProvider backed by a configured provider.
type Client struct {
	provider        ai.Provider
	model           string
	apiKeys         APIKeys
	retryConfig     retry.Config
	defaultChatOpts []ai.Option

	// Lazy-initialized backend (protected by mutex)
	mu      sync.Mutex
	backend ai.ChatProvider
	initErr error
}

// New creates a unified client with the given configuration. The
// backend is initialized on first use.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	c := &Client{
		provider:    cfg.Provider,
		model:       cfg.Model,
		apiKeys:     cfg.APIKeys,
		retryConfig: retryConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getBackend returns the backend provider, initializing it if needed.
func (c *Client) getBackend(ctx context.Context) (ai.ChatProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	if c.initErr != nil {
		return nil, c.initErr
	}

	switch c.provider {
	case ai.ProviderAnthropic:
		if c.apiKeys.Anthropic == "" {
			c.initErr = &ErrMissingAPIKey{Provider: "anthropic"}
			return nil, c.initErr
		}
		c.backend = anthropic.New(c.apiKeys.Anthropic)
	case ai.ProviderOpenAI:
		if c.apiKeys.OpenAI == "" {
			c.initErr = &ErrMissingAPIKey{Provider: "openai"}
			return nil, c.initErr
		}
		c.backend = openai.New(c.apiKeys.OpenAI)
	case ai.ProviderGoogle:
		if c.apiKeys.Google == "" {
			c.initErr = &ErrMissingAPIKey{Provider: "google"}
			return nil, c.initErr
		}
		backend, err := google.New(ctx, c.apiKeys.Google)
		if err != nil {
			c.initErr = fmt.Errorf("failed to initialize Google client: %w", err)
			return nil, c.initErr
		}
		c.backend = backend
	default:
		c.initErr = fmt.Errorf("unsupported provider: %s", c.provider)
		return nil, c.initErr
	}

	return c.backend, nil
}

// requestOptions prepends client defaults so per-request options win.
func (c *Client) requestOptions(opts []ai.Option) []ai.Option {
	merged := append([]ai.Option{}, c.defaultChatOpts...)
	if c.model != "" {
		merged = append([]ai.Option{ai.WithModel(c.model)}, merged...)
	}
	return append(merged, opts...)
}

// Chat sends a conversation and returns a complete response. Transient
// errors are retried according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	backend, err := c.getBackend(ctx)
	if err != nil {
		return nil, err
	}

	merged := c.requestOptions(opts)
	return retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return backend.Chat(ctx, messages, merged...)
	})
}

// ChatStream sends a conversation and returns a channel of streaming
// events. Establishing the stream is retried on transient errors;
// individual chunks are not.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	backend, err := c.getBackend(ctx)
	if err != nil {
		return nil, err
	}

	merged := c.requestOptions(opts)
	return retry.DoStream(ctx, c.retryConfig, func() (<-chan ai.StreamEvent, error) {
		return backend.ChatStream(ctx, messages, merged...)
	})
}

var _ ai.ChatProvider = (*Client)(nil)
