package parse

import (
	"encoding/json"
	"testing"

	"github.com/reagentkit/reagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_StructuredToolCalls(t *testing.T) {
	p := New()

	t.Run("decodes every well-formed entry preserving name, arguments and id", func(t *testing.T) {
		resp := &reagent.Response{
			ToolCalls: []reagent.ToolCall{
				{ID: "call_1", Name: "search", Arguments: json.RawMessage(`{"query":"go"}`)},
				{ID: "call_2", Name: "calculator", Arguments: json.RawMessage(`{"expression":"3*7+2"}`)},
			},
		}

		invs := p.Parse(resp)
		require.Len(t, invs, 2)
		assert.Equal(t, "call_1", invs[0].ID)
		assert.Equal(t, "search", invs[0].Name)
		assert.Equal(t, reagent.Args{"query": "go"}, invs[0].Args)
		assert.Equal(t, "call_2", invs[1].ID)
		assert.Equal(t, reagent.Args{"expression": "3*7+2"}, invs[1].Args)
	})

	t.Run("accepts arguments as a JSON-encoded string", func(t *testing.T) {
		resp := &reagent.Response{
			ToolCalls: []reagent.ToolCall{
				{Name: "search", Arguments: json.RawMessage(`"{\"query\":\"go\"}"`)},
			},
		}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, reagent.Args{"query": "go"}, invs[0].Args)
	})

	t.Run("skips an undecodable entry without aborting the batch", func(t *testing.T) {
		resp := &reagent.Response{
			ToolCalls: []reagent.ToolCall{
				{Name: "broken", Arguments: json.RawMessage(`{not json`)},
				{Name: "search", Arguments: json.RawMessage(`{"query":"go"}`)},
			},
		}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "search", invs[0].Name)
	})

	t.Run("skips entries without a name", func(t *testing.T) {
		resp := &reagent.Response{
			ToolCalls: []reagent.ToolCall{{ID: "call_1", Arguments: json.RawMessage(`{}`)}},
		}
		assert.Nil(t, p.Parse(resp))
	})

	t.Run("missing arguments decode to an empty mapping", func(t *testing.T) {
		resp := &reagent.Response{
			ToolCalls: []reagent.ToolCall{{Name: "ping"}},
		}
		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Empty(t, invs[0].Args)
	})
}

func TestParse_AnchoredJSON(t *testing.T) {
	p := New()

	t.Run("extracts the object after the anchor", func(t *testing.T) {
		resp := &reagent.Response{Content: `<think>need math</think>
Action: {"name": "calculator", "arguments": {"expression": "3*7+2"}}`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "calculator", invs[0].Name)
		assert.Equal(t, reagent.Args{"expression": "3*7+2"}, invs[0].Args)
		assert.Empty(t, invs[0].ID)
	})

	t.Run("handles nested braces inside string values", func(t *testing.T) {
		resp := &reagent.Response{Content: `Action: {"name": "write_file", "arguments": {"content": "func main() { fmt.Println(\"}\") }"}} trailing`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "write_file", invs[0].Name)
		content, _ := invs[0].Args.String("content")
		assert.Equal(t, `func main() { fmt.Println("}") }`, content)
	})

	t.Run("decodes arguments encoded as a JSON string", func(t *testing.T) {
		resp := &reagent.Response{Content: `Action: {"name": "search", "arguments": "{\"query\": \"weather\"}"}`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, reagent.Args{"query": "weather"}, invs[0].Args)
	})

	t.Run("truncated object yields no invocation", func(t *testing.T) {
		resp := &reagent.Response{Content: `Action: {"name": "calculator", "arguments": {"expression": "3*7`}
		assert.Nil(t, p.Parse(resp))
	})

	t.Run("object without a name key yields no invocation", func(t *testing.T) {
		resp := &reagent.Response{Content: `Action: {"tool": "calculator"}`}
		assert.Nil(t, p.Parse(resp))
	})
}

func TestParse_BareJSON(t *testing.T) {
	p := New()

	t.Run("finds an unanchored object whose first key is name", func(t *testing.T) {
		resp := &reagent.Response{Content: `I will use a tool now: {"name": "search", "arguments": {"query": "go"}} done`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "search", invs[0].Name)
	})

	t.Run("ignores objects that do not lead with name", func(t *testing.T) {
		resp := &reagent.Response{Content: `some json: {"answer": 42}`}
		assert.Nil(t, p.Parse(resp))
	})
}

func TestParse_LegacyTagged(t *testing.T) {
	p := New()

	t.Run("parses keyword arguments", func(t *testing.T) {
		resp := &reagent.Response{Content: `<tool_call>search(query="go concurrency", limit="3")</tool_call>`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "search", invs[0].Name)
		assert.Equal(t, reagent.Args{"query": "go concurrency", "limit": "3"}, invs[0].Args)
	})

	t.Run("maps positional arguments through the per-tool convention", func(t *testing.T) {
		resp := &reagent.Response{Content: `<tool_call>calculator("3*7+2")</tool_call>`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, reagent.Args{"expression": "3*7+2"}, invs[0].Args)
	})

	t.Run("quoted comma does not split a token", func(t *testing.T) {
		resp := &reagent.Response{Content: `<tool_call>search(query="a, b")</tool_call>`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, reagent.Args{"query": "a, b"}, invs[0].Args)
	})

	t.Run("unparseable span degrades to the unknown invocation", func(t *testing.T) {
		resp := &reagent.Response{Content: `<tool_call>please run the search tool</tool_call>`}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, UnknownTool, invs[0].Name)
		raw, _ := invs[0].Args.String("raw")
		assert.Equal(t, "please run the search tool", raw)
	})

	t.Run("no delimiter pair means no invocation", func(t *testing.T) {
		resp := &reagent.Response{Content: "just prose, no structural cue at all"}
		assert.Nil(t, p.Parse(resp))
	})
}

func TestParse_StrategyOrder(t *testing.T) {
	p := New()

	t.Run("structured field wins over embedded JSON", func(t *testing.T) {
		resp := &reagent.Response{
			Content:   `Action: {"name": "from_text", "arguments": {}}`,
			ToolCalls: []reagent.ToolCall{{Name: "from_field", Arguments: json.RawMessage(`{}`)}},
		}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "from_field", invs[0].Name)
	})

	t.Run("anchored JSON wins over legacy tags", func(t *testing.T) {
		resp := &reagent.Response{
			Content: `Action: {"name": "anchored", "arguments": {}} and <tool_call>tagged()</tool_call>`,
		}

		invs := p.Parse(resp)
		require.Len(t, invs, 1)
		assert.Equal(t, "anchored", invs[0].Name)
	})

	t.Run("nil response yields no invocation", func(t *testing.T) {
		assert.Nil(t, p.Parse(nil))
		assert.Nil(t, p.Parse(&reagent.Response{}))
	})
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"flat object", `{"a": 1} trailing`, `{"a": 1}`, true},
		{"nested object", `{"a": {"b": {"c": 1}}}x`, `{"a": {"b": {"c": 1}}}`, true},
		{"brace inside string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"escaped quote inside string", `{"a": "say \"}\" loud"} rest`, `{"a": "say \"}\" loud"}`, true},
		{"truncated", `{"a": {"b": 1}`, "", false},
		{"not an object", `"a"`, "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
