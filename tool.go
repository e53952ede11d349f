package reagent

import "encoding/json"

// Tool describes a registered capability.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string `json:"name"`
	// Description explains what the tool does, for the model's benefit.
	Description string `json:"description"`
	// Parameters is a JSON Schema object describing the tool's arguments.
	Parameters json.RawMessage `json:"parameters"`
}

// ToolCall is the wire shape of one entry in a backend's structured
// tool-call field.
type ToolCall struct {
	// ID is the backend's correlation token for this call.
	ID string `json:"id,omitempty"`
	// Name is the tool the model wants to invoke.
	Name string `json:"name"`
	// Arguments holds the raw arguments. Backends disagree here: some send
	// a JSON object, others a JSON-encoded string containing one. The
	// parser accepts both.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult is the observation produced by dispatching one invocation.
type ToolResult struct {
	// ToolName names the capability that was (or could not be) called.
	ToolName string `json:"toolName"`
	// Content is the observation text fed back to the model.
	Content string `json:"content"`
	// IsError marks observations synthesized from a dispatch failure.
	IsError bool `json:"isError,omitempty"`
}

// ToolChoice controls how a backend uses tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide when to use tools (default).
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone disables tool use for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to use a tool.
	ToolChoiceRequired ToolChoice = "required"
)
