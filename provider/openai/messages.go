package openai

import (
	"github.com/openai/openai-go"

	"github.com/reagentkit/reagent"
)

// correlationID returns the backend-assigned id when present, or a
// deterministic one derived from the tool name. Text-parsed invocations have
// no backend id, and the wire format still requires the pair to match.
func correlationID(id, toolName string) string {
	if id != "" {
		return id
	}
	return "call_" + toolName
}

func convertMessages(messages []reagent.Message) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion
	for _, msg := range messages {
		switch msg.Role {
		case reagent.RoleSystem:
			if msg.Content != "" {
				result = append(result, openai.SystemMessage(msg.Content))
			}
		case reagent.RoleUser:
			if msg.Content != "" {
				result = append(result, openai.UserMessage(msg.Content))
			}
		case reagent.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
				for i, inv := range msg.ToolCalls {
					toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
						ID: correlationID(inv.ID, inv.Name),
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      inv.Name,
							Arguments: inv.Args.JSON(),
						},
					}
				}
				assistantMsg := openai.ChatCompletionAssistantMessageParam{
					ToolCalls: toolCalls,
				}
				if msg.Content != "" {
					assistantMsg.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(msg.Content),
					}
				}
				result = append(result, openai.ChatCompletionMessageParamUnion{
					OfAssistant: &assistantMsg,
				})
			} else if msg.Content != "" {
				result = append(result, openai.AssistantMessage(msg.Content))
			}
		case reagent.RoleTool:
			result = append(result, openai.ToolMessage(msg.Content, correlationID(msg.ToolCallID, msg.ToolName)))
		default:
			if msg.Content != "" {
				result = append(result, openai.UserMessage(msg.Content))
			}
		}
	}
	return result
}
