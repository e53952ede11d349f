package reagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgsJSON(t *testing.T) {
	t.Run("renders compact object", func(t *testing.T) {
		args := Args{"expression": "3*7+2"}
		assert.JSONEq(t, `{"expression":"3*7+2"}`, args.JSON())
	})

	t.Run("empty renders empty object", func(t *testing.T) {
		assert.Equal(t, "{}", Args{}.JSON())
		assert.Equal(t, "{}", Args(nil).JSON())
	})

	t.Run("nested values survive", func(t *testing.T) {
		args := Args{"filter": map[string]any{"lang": "go"}, "limit": float64(3)}
		assert.JSONEq(t, `{"filter":{"lang":"go"},"limit":3}`, args.JSON())
	})
}

func TestArgsAccessors(t *testing.T) {
	args := Args{
		"query": "weather",
		"limit": float64(5),
		"safe":  true,
	}

	s, ok := args.String("query")
	assert.True(t, ok)
	assert.Equal(t, "weather", s)

	f, ok := args.Float("limit")
	assert.True(t, ok)
	assert.Equal(t, float64(5), f)

	b, ok := args.Bool("safe")
	assert.True(t, ok)
	assert.True(t, b)

	// Missing keys and type mismatches report false.
	_, ok = args.String("missing")
	assert.False(t, ok)
	_, ok = args.String("limit")
	assert.False(t, ok)
	_, ok = args.Float("query")
	assert.False(t, ok)
	_, ok = args.Bool("query")
	assert.False(t, ok)
}
