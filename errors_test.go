package gridmind

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		category  ErrorCategory
		retryable bool
	}{
		{
			name:      "transient error",
			err:       NewTransientError("rate limited", 429, nil),
			category:  ErrorTransient,
			retryable: true,
		},
		{
			name:      "permanent error",
			err:       NewPermanentError("invalid api key", 401, nil),
			category:  ErrorPermanent,
			retryable: false,
		},
		{
			name:      "user input error",
			err:       NewUserInputError("empty message", 400, nil),
			category:  ErrorUserInput,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewPermanentError("model not found", 404, nil)
		assert.Equal(t, "model not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewTransientError("request failed", 0, cause)
		assert.Equal(t, "request failed: connection refused", err.Error())
		assert.True(t, errors.Is(err, cause))
	})
}

func TestNewTransientErrorWithRetry(t *testing.T) {
	err := NewTransientErrorWithRetry("overloaded", 529, 30*time.Second, nil)

	assert.Equal(t, ErrorTransient, err.Category())
	assert.Equal(t, 529, err.StatusCode())
	assert.Equal(t, 30*time.Second, err.RetryAfter())
}

func TestCategoryHelpers(t *testing.T) {
	t.Run("IsTransient", func(t *testing.T) {
		assert.True(t, IsTransient(NewTransientError("rate limited", 429, nil)))
		assert.False(t, IsTransient(NewPermanentError("forbidden", 403, nil)))
		assert.False(t, IsTransient(errors.New("plain error")))
		assert.False(t, IsTransient(nil))
	})

	t.Run("IsPermanent", func(t *testing.T) {
		assert.True(t, IsPermanent(NewPermanentError("forbidden", 403, nil)))
		assert.False(t, IsPermanent(NewTransientError("rate limited", 429, nil)))
		assert.False(t, IsPermanent(errors.New("plain error")))
	})

	t.Run("sees through wrapping", func(t *testing.T) {
		wrapped := NewTransientError("rate limited", 429, nil)
		err := errors.Join(errors.New("outer"), wrapped)
		assert.True(t, IsTransient(err))
		assert.Equal(t, 429, StatusCodeOf(err))
	})

	t.Run("StatusCodeOf returns zero for plain errors", func(t *testing.T) {
		assert.Zero(t, StatusCodeOf(errors.New("plain error")))
	})
}

func TestUnmarshalError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &UnmarshalError{
		Context:    "ai: suggest charts",
		Content:    `{"suggestions": [`,
		TargetType: "chartResponse",
		Err:        cause,
	}

	assert.Equal(t, "ai: suggest charts: failed to unmarshal response into chartResponse: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, cause))

	var ue *UnmarshalError
	require.ErrorAs(t, error(err), &ue)
	assert.Equal(t, `{"suggestions": [`, ue.Content)
}
