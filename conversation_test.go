package reagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_Append(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		c := NewConversation()
		c.AppendUser("question")
		c.AppendAssistant("thinking", Invocation{Name: "search", Args: Args{"query": "x"}})
		c.AppendToolResult("search", "", "observation")

		msgs := c.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, RoleUser, msgs[0].Role)
		assert.Equal(t, RoleAssistant, msgs[1].Role)
		assert.Equal(t, RoleTool, msgs[2].Role)
		assert.Equal(t, "search", msgs[2].ToolName)
	})

	t.Run("tool turns always carry a tool name", func(t *testing.T) {
		msg := NewToolResultMessage("calculator", "call_1", "21")
		assert.Equal(t, RoleTool, msg.Role)
		assert.Equal(t, "calculator", msg.ToolName)
		assert.Equal(t, "call_1", msg.ToolCallID)
	})

	t.Run("messages returns a copy", func(t *testing.T) {
		c := NewConversation()
		c.AppendUser("hi")
		msgs := c.Messages()
		msgs[0].Content = "mutated"
		assert.Equal(t, "hi", c.Messages()[0].Content)
	})
}

func TestConversation_Wire(t *testing.T) {
	c := NewConversation()
	c.AppendUser("question")
	c.AppendAssistant("", Invocation{ID: "call_1", Name: "search", Args: Args{"query": "x"}})
	c.AppendToolResult("search", "call_1", "found it")

	t.Run("native mode preserves roles", func(t *testing.T) {
		wire := c.Wire(false)
		require.Len(t, wire, 3)
		assert.Equal(t, RoleTool, wire[2].Role)
		assert.Equal(t, "search", wire[2].ToolName)
		assert.Equal(t, "call_1", wire[1].ToolCalls[0].ID)
	})

	t.Run("compat mode rewrites tool turns as marked user turns", func(t *testing.T) {
		wire := c.Wire(true)
		require.Len(t, wire, 3)
		assert.Equal(t, RoleUser, wire[2].Role)
		assert.Equal(t, "[tool search result]\nfound it", wire[2].Content)
		assert.Empty(t, wire[2].ToolName)
	})

	t.Run("projection does not mutate the log", func(t *testing.T) {
		_ = c.Wire(true)
		assert.Equal(t, RoleTool, c.Messages()[2].Role)
	})
}

func TestConversation_Clear(t *testing.T) {
	c := NewConversation()
	c.AppendUser("one")
	c.AppendAssistant("two")
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Messages())
}

func TestArgs_JSON(t *testing.T) {
	t.Run("renders arguments as object", func(t *testing.T) {
		args := Args{"expression": "3*7+2"}
		assert.JSONEq(t, `{"expression":"3*7+2"}`, args.JSON())
	})

	t.Run("nil renders as empty object", func(t *testing.T) {
		var args Args
		assert.Equal(t, "{}", args.JSON())
	})
}

func TestArgs_Accessors(t *testing.T) {
	args := Args{"query": "go", "limit": float64(3), "safe": true}

	q, ok := args.String("query")
	assert.True(t, ok)
	assert.Equal(t, "go", q)

	n, ok := args.Float("limit")
	assert.True(t, ok)
	assert.Equal(t, float64(3), n)

	b, ok := args.Bool("safe")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = args.String("missing")
	assert.False(t, ok)
}
