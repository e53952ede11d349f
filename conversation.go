package reagent

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Conversation is an ordered, append-only log of turns owned by one agent.
//
// Turns are appended, never mutated or reordered; the only removal is an
// explicit Clear. Wire renders a read-only projection for a backend, so the
// log itself is never exposed for mutation. A Conversation is safe for
// concurrent reads, but the agent loop is the single writer.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0)}
}

// Append adds turns to the log in order.
func (c *Conversation) Append(msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// AppendUser appends a user turn.
func (c *Conversation) AppendUser(content string) {
	c.Append(NewUserMessage(content))
}

// AppendAssistant appends an assistant turn with any parsed invocations.
func (c *Conversation) AppendAssistant(content string, calls ...Invocation) {
	c.Append(NewAssistantMessage(content, calls...))
}

// AppendToolResult appends a tool turn carrying one observation.
// toolCallID correlates it with the invocation that requested it and may be
// empty.
func (c *Conversation) AppendToolResult(toolName, toolCallID, content string) {
	c.Append(NewToolResultMessage(toolName, toolCallID, content))
}

// Messages returns a copy of the log in insertion order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Wire renders the log in the shape a backend expects, preserving insertion
// order.
//
// In compat mode tool turns are rewritten as user turns whose text opens with
// a marker naming the tool, for backends that reject a bare tool role or
// correlation fields. In native mode role, content and correlation id pass
// through unchanged.
func (c *Conversation) Wire(compat bool) []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, 0, len(c.messages))
	for _, msg := range c.messages {
		if compat && msg.Role == RoleTool {
			out = append(out, Message{
				ID:      msg.ID,
				Role:    RoleUser,
				Content: fmt.Sprintf("[tool %s result]\n%s", msg.ToolName, msg.Content),
			})
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Len returns the number of turns in the log.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Clear removes all turns.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = c.messages[:0]
}

// MarshalJSON serializes the transcript as a JSON array of turns.
func (c *Conversation) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(c.messages)
}

// UnmarshalJSON replaces the log with the turns decoded from data.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = msgs
	return nil
}
