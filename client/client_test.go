package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagentkit/reagent"
	"github.com/reagentkit/reagent/retry"
)

var _ reagent.ChatProvider = (*Client)(nil)

func TestProviderNameConstants(t *testing.T) {
	assert.Equal(t, ProviderName("anthropic"), ProviderAnthropic)
	assert.Equal(t, ProviderName("openai"), ProviderOpenAI)
	assert.Equal(t, ProviderName("google"), ProviderGoogle)
	assert.Equal(t, "openai", ProviderOpenAI.String())
}

func TestErrMissingAPIKey(t *testing.T) {
	err := &ErrMissingAPIKey{Provider: "openai"}
	assert.Equal(t, "no API key configured for openai", err.Error())
}

func TestErrUnknownProvider(t *testing.T) {
	err := &ErrUnknownProvider{Provider: "grok"}
	assert.Equal(t, `unknown provider "grok" (want anthropic, openai, or google)`, err.Error())
}

func TestNew(t *testing.T) {
	t.Run("creates client with API keys", func(t *testing.T) {
		c := New(Config{
			Provider: ProviderAnthropic,
			APIKeys: APIKeys{
				Anthropic: "test-anthropic-key",
			},
		})
		assert.NotNil(t, c)
	})

	t.Run("uses default retry config when nil", func(t *testing.T) {
		c := New(Config{Provider: ProviderOpenAI})
		assert.Equal(t, retry.DefaultConfig().MaxAttempts, c.retryConfig.MaxAttempts)
	})

	t.Run("honors explicit retry config", func(t *testing.T) {
		cfg := retry.Disabled()
		c := New(Config{Provider: ProviderOpenAI, RetryConfig: &cfg})
		assert.Equal(t, 1, c.retryConfig.MaxAttempts)
	})
}

func TestChatMissingAPIKey(t *testing.T) {
	tests := []struct {
		provider ProviderName
		want     string
	}{
		{ProviderAnthropic, "anthropic"},
		{ProviderOpenAI, "openai"},
		{ProviderGoogle, "google"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			c := New(Config{Provider: tt.provider})

			_, err := c.Chat(context.Background(), []reagent.Message{
				reagent.NewUserMessage("hello"),
			})
			require.Error(t, err)

			var missing *ErrMissingAPIKey
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.want, missing.Provider)
		})
	}
}

func TestChatUnknownProvider(t *testing.T) {
	c := New(Config{Provider: "grok"})

	_, err := c.Chat(context.Background(), []reagent.Message{
		reagent.NewUserMessage("hello"),
	})
	require.Error(t, err)

	var unknown *ErrUnknownProvider
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "grok", unknown.Provider)
}

func TestEmit(t *testing.T) {
	t.Run("nil channel is a no-op", func(t *testing.T) {
		emit(nil, Event{Type: EventRequestStart})
	})

	t.Run("stamps timestamp", func(t *testing.T) {
		ch := make(chan Event, 1)
		emit(ch, Event{Type: EventRequestStart, Provider: ProviderOpenAI})

		e := <-ch
		assert.Equal(t, EventRequestStart, e.Type)
		assert.WithinDuration(t, time.Now(), e.Timestamp, time.Second)
	})

	t.Run("drops events when channel is full", func(t *testing.T) {
		ch := make(chan Event, 1)
		emit(ch, Event{Type: EventRequestStart})
		emit(ch, Event{Type: EventRequestComplete}) // must not block

		e := <-ch
		assert.Equal(t, EventRequestStart, e.Type)
	})
}
