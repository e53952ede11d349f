package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagentkit/reagent"
)

func TestConversationStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	cs := NewConversationStore(nil)

	conv := reagent.NewConversation()
	conv.AppendUser("What is 2+2?")
	conv.AppendAssistant(`Action: {"name": "calculator", "arguments": {"expression": "2+2"}}`,
		reagent.Invocation{ID: "call_1", Name: "calculator", Args: reagent.Args{"expression": "2+2"}})
	conv.AppendToolResult("calculator", "call_1", "2+2 = 4")

	require.NoError(t, cs.Save(ctx, "conv-1", conv))

	loaded, ok, err := cs.Load(ctx, "conv-1")
	require.NoError(t, err)
	require.True(t, ok)

	msgs := loaded.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, reagent.RoleUser, msgs[0].Role)
	assert.Equal(t, "What is 2+2?", msgs[0].Content)

	require.Len(t, msgs[1].ToolCalls, 1)
	assert.Equal(t, "calculator", msgs[1].ToolCalls[0].Name)

	assert.Equal(t, reagent.RoleTool, msgs[2].Role)
	assert.Equal(t, "calculator", msgs[2].ToolName)
	assert.Equal(t, "call_1", msgs[2].ToolCallID)
	assert.Equal(t, "2+2 = 4", msgs[2].Content)
}

func TestConversationStore_LoadMissing(t *testing.T) {
	cs := NewConversationStore(nil)

	conv, ok, err := cs.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, conv)
}

func TestConversationStore_EmptyID(t *testing.T) {
	cs := NewConversationStore(nil)

	err := cs.Save(context.Background(), "", reagent.NewConversation())
	require.Error(t, err)
}

func TestConversationStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	cs := NewConversationStore(nil)

	first := reagent.NewConversation()
	first.AppendUser("one")
	require.NoError(t, cs.Save(ctx, "conv-1", first))

	second := reagent.NewConversation()
	second.AppendUser("one")
	second.AppendUser("two")
	require.NoError(t, cs.Save(ctx, "conv-1", second))

	loaded, ok, err := cs.Load(ctx, "conv-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, loaded.Len())
}

func TestConversationStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	cs := NewConversationStore(NewMemoryAdapter())

	for _, id := range []string{"a", "b", "c"} {
		conv := reagent.NewConversation()
		conv.AppendUser("hello " + id)
		require.NoError(t, cs.Save(ctx, id, conv))
	}

	n, err := cs.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, cs.Delete(ctx, "b"))
	ok, err := cs.Has(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := cs.IDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	require.NoError(t, cs.Clear(ctx))
	n, err = cs.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
