package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagentkit/reagent"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo(t *testing.T) {
	t.Run("returns on first success", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), fastConfig(5), func() (string, error) {
			calls++
			if calls < 3 {
				return "", reagent.NewTransientError("rate limited", 429, nil)
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error returns immediately", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
			calls++
			return "", reagent.NewPermanentError("bad key", 401, nil)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausted attempts return last error", func(t *testing.T) {
		calls := 0
		last := reagent.NewTransientError("still down", 503, nil)
		_, err := Do(context.Background(), fastConfig(3), func() (string, error) {
			calls++
			return "", last
		})
		require.ErrorIs(t, err, last)
		assert.Equal(t, 3, calls)
	})

	t.Run("context cancellation interrupts backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := Config{MaxAttempts: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

		done := make(chan error, 1)
		go func() {
			_, err := Do(ctx, cfg, func() (string, error) {
				return "", reagent.NewTransientError("down", 503, nil)
			})
			done <- err
		}()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("Do did not return after cancellation")
		}
	})

	t.Run("single attempt config never retries", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), Disabled(), func() (string, error) {
			calls++
			return "", reagent.NewTransientError("down", 503, nil)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestEffectiveDelay(t *testing.T) {
	t.Run("server retry-after wins when larger", func(t *testing.T) {
		err := reagent.NewTransientErrorWithRetry("rate limited", 429, time.Minute, nil)
		assert.Equal(t, time.Minute, effectiveDelay(time.Second, err))
	})

	t.Run("configured delay wins when larger", func(t *testing.T) {
		err := reagent.NewTransientErrorWithRetry("rate limited", 429, time.Millisecond, nil)
		assert.Equal(t, time.Second, effectiveDelay(time.Second, err))
	})

	t.Run("uncategorized error keeps configured delay", func(t *testing.T) {
		assert.Equal(t, time.Second, effectiveDelay(time.Second, errors.New("boom")))
	})
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"categorized transient", reagent.NewTransientError("x", 429, nil), true},
		{"categorized permanent", reagent.NewPermanentError("x", 401, nil), false},
		{"categorized user input", reagent.NewUserInputError("x", 400, nil), false},
		{"connection refused message", errors.New("dial tcp: connection refused"), true},
		{"rate limit message", errors.New("429 too many requests"), true},
		{"plain error", errors.New("no such capability"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTransient(tc.err))
		})
	}
}

func TestConfigDelay(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 10 * time.Second, Multiplier: 2.0}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 10*time.Second, cfg.Delay(10), "delay is capped")
	assert.Equal(t, time.Second, cfg.Delay(-1), "negative attempt clamps to zero")

	jittered := Config{InitialDelay: time.Second, MaxDelay: 10 * time.Second, Multiplier: 2.0, Jitter: 0.5}
	d := jittered.Delay(0)
	assert.GreaterOrEqual(t, d, 500*time.Millisecond)
	assert.LessOrEqual(t, d, 1500*time.Millisecond)
}
