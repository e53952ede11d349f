package reagent

import "github.com/google/uuid"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single role-tagged turn in a conversation.
//
// Turns are value types: once appended to a Conversation they are never
// mutated. An assistant turn may carry the invocations parsed from it; a tool
// turn always carries the name of the tool that produced it.
type Message struct {
	// ID is an optional unique identifier, used for correlation in logs.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// ToolCalls holds the invocations attached to an assistant turn,
	// in the order the model requested them. Empty for other roles.
	ToolCalls []Invocation `json:"toolCalls,omitempty"`
	// ToolName names the capability that produced a tool turn.
	// Set if and only if Role is RoleTool.
	ToolName string `json:"toolName,omitempty"`
	// ToolCallID correlates a tool turn with the invocation that requested
	// it, when the backend assigned one. Empty for text-parsed invocations.
	ToolCallID string `json:"toolCallId,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewUserMessage creates a user turn.
func NewUserMessage(content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant turn with any invocations the
// model requested.
func NewAssistantMessage(content string, calls ...Invocation) Message {
	return Message{ID: GenerateMessageID(), Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// NewSystemMessage creates a system turn. System turns are synthesized per
// round by the agent loop and are never stored in a Conversation.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewToolResultMessage creates a tool turn carrying one observation.
// toolCallID may be empty for invocations recovered from plain text.
func NewToolResultMessage(toolName, toolCallID, content string) Message {
	return Message{ID: GenerateMessageID(), Role: RoleTool, Content: content, ToolName: toolName, ToolCallID: toolCallID}
}

// Response is a complete reply from a chat backend.
type Response struct {
	Content      string `json:"content,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Usage        Usage  `json:"usage"`
	// ToolCalls contains structured tool invocation requests, when the
	// backend supports a native tool-call field. Backends that emit tool
	// requests as plain text leave this empty and the parser recovers
	// them from Content instead.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Usage contains token accounting for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}
