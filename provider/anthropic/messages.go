package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/reagentkit/reagent"
)

// correlationID mirrors the fallback used when converting assistant tool-use
// blocks, so a text-parsed invocation and its observation still pair up.
func correlationID(id, toolName string) string {
	if id != "" {
		return id
	}
	return "call_" + toolName
}

// convertMessages maps turns to Anthropic message params. System turns are
// returned separately since the API carries them out of band; tool turns
// become user messages holding a tool_result block.
func convertMessages(messages []reagent.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam

	for _, msg := range messages {
		switch msg.Role {
		case reagent.RoleSystem:
			// The API rejects empty text blocks.
			if msg.Content != "" {
				system = append(system, anthropic.TextBlockParam{Text: msg.Content})
			}
		case reagent.RoleUser:
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case reagent.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				var blocks []anthropic.ContentBlockParamUnion
				if msg.Content != "" {
					blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
				}
				for _, inv := range msg.ToolCalls {
					blocks = append(blocks, anthropic.NewToolUseBlock(
						correlationID(inv.ID, inv.Name), map[string]any(inv.Args), inv.Name))
				}
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleAssistant,
					Content: blocks,
				})
			} else if msg.Content != "" {
				result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case reagent.RoleTool:
			result = append(result, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewToolResultBlock(correlationID(msg.ToolCallID, msg.ToolName), msg.Content, false),
				},
			})
		default:
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}

	return result, system
}
