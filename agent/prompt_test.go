package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagentkit/reagent/tool"
)

func TestRenderSystemPrompt(t *testing.T) {
	registry := tool.NewRegistry().Add(tool.NewCalculatorTool(), tool.NewSearchTool())

	t.Run("embeds tool catalog in registration order", func(t *testing.T) {
		prompt, err := renderSystemPrompt("", registry.Specs(), t.TempDir())
		require.NoError(t, err)

		assert.Contains(t, prompt, "- calculator:")
		assert.Contains(t, prompt, "- search:")
		assert.Less(t, strings.Index(prompt, "- calculator:"), strings.Index(prompt, "- search:"))
		assert.Contains(t, prompt, "expression:")
	})

	t.Run("empty registry says no tools", func(t *testing.T) {
		prompt, err := renderSystemPrompt("", nil, t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, prompt, "no tools available")
	})

	t.Run("lists at most ten files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 15; i++ {
			require.NoError(t, os.WriteFile(filepath.Join(dir, string(rune('a'+i))+".txt"), nil, 0o644))
		}

		prompt, err := renderSystemPrompt("", nil, dir)
		require.NoError(t, err)
		assert.Contains(t, prompt, "a.txt")
		assert.NotContains(t, prompt, "o.txt")
	})

	t.Run("missing directory reports unavailable", func(t *testing.T) {
		prompt, err := renderSystemPrompt("", nil, "/does/not/exist")
		require.NoError(t, err)
		assert.Contains(t, prompt, "unavailable")
	})

	t.Run("custom template substitution", func(t *testing.T) {
		prompt, err := renderSystemPrompt("tools: {{.ToolList}} on {{.OS}}", registry.Specs(), t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, prompt, "calculator")
		assert.NotContains(t, prompt, "{{")
	})

	t.Run("malformed template is an error", func(t *testing.T) {
		_, err := renderSystemPrompt("{{.Broken", nil, t.TempDir())
		require.Error(t, err)
	})
}
