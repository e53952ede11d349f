package reagent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFrom(t *testing.T) {
	type searchArgs struct {
		Query string   `json:"query"`
		Limit int      `json:"limit"`
		Tags  []string `json:"tags"`
		Safe  bool     `json:"safe"`
	}

	raw := SchemaFrom[searchArgs]().
		Desc("query", "Search keywords").
		Required("query").
		Build()

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search keywords", query["description"])

	assert.Equal(t, "integer", props["limit"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["safe"].(map[string]any)["type"])

	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, "string", tags["items"].(map[string]any)["type"])

	assert.Equal(t, []any{"query"}, schema["required"])
}

func TestSchemaFrom_Enum(t *testing.T) {
	type args struct {
		Mode string `json:"mode"`
	}

	raw := SchemaFrom[args]().Enum("mode", "fast", "thorough").Build()

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	mode := schema["properties"].(map[string]any)["mode"].(map[string]any)
	assert.Equal(t, []any{"fast", "thorough"}, mode["enum"])
}

func TestSchemaFrom_NonStruct(t *testing.T) {
	raw := SchemaFrom[string]().Build()
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(raw))
}
