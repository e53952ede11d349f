package reagent

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name      string
		err       *Error
		category  ErrorCategory
		retryable bool
	}{
		{"transient", NewTransientError("rate limited", 429, cause), ErrorTransient, true},
		{"permanent", NewPermanentError("invalid api key", 401, cause), ErrorPermanent, false},
		{"user input", NewUserInputError("bad request", 400, cause), ErrorUserInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("includes cause", func(t *testing.T) {
		err := NewTransientError("server overloaded", 503, errors.New("upstream timeout"))
		assert.Equal(t, "server overloaded: upstream timeout", err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewPermanentError("model not found", 404, nil)
		assert.Equal(t, "model not found", err.Error())
	})
}

func TestRetryAfter(t *testing.T) {
	err := NewTransientErrorWithRetry("rate limited", 429, 30*time.Second, nil)
	assert.Equal(t, 30*time.Second, err.RetryAfter())
	assert.Equal(t, 429, err.StatusCode())

	plain := NewTransientError("rate limited", 429, nil)
	assert.Equal(t, time.Duration(0), plain.RetryAfter())
}

func TestCategoryPredicates(t *testing.T) {
	assert.True(t, IsTransient(NewTransientError("x", 0, nil)))
	assert.False(t, IsTransient(NewPermanentError("x", 0, nil)))
	assert.True(t, IsPermanent(NewPermanentError("x", 0, nil)))
	assert.True(t, IsUserInput(NewUserInputError("x", 0, nil)))
	assert.False(t, IsTransient(errors.New("plain")))
}

func TestCategoryPredicatesOnWrappedError(t *testing.T) {
	inner := NewTransientError("rate limited", 429, nil)
	wrapped := fmt.Errorf("model call failed: %w", inner)

	assert.True(t, IsTransient(wrapped))
	assert.Equal(t, ErrorTransient, CategoryOf(wrapped))
	assert.Equal(t, 429, StatusCodeOf(wrapped))
}

func TestCategoryOfFallback(t *testing.T) {
	assert.Equal(t, ErrorCategory("execution"), CategoryOf(errors.New("boom")))
	assert.Equal(t, 0, StatusCodeOf(errors.New("boom")))
	assert.Equal(t, time.Duration(0), RetryAfterOf(errors.New("boom")))
}

func TestRetryAfterOfWrapped(t *testing.T) {
	inner := NewTransientErrorWithRetry("rate limited", 429, 5*time.Second, nil)
	wrapped := fmt.Errorf("call failed: %w", inner)

	require.Equal(t, 5*time.Second, RetryAfterOf(wrapped))
}
