package google

import (
	"encoding/json"

	"google.golang.org/genai"

	"github.com/reagentkit/reagent"
)

// convertMessages maps turns to GenAI contents. System turns are collected
// into a single system instruction returned separately; tool turns become
// user-role contents holding a FunctionResponse part, which is how the API
// expects observations back.
func convertMessages(messages []reagent.Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	system := ""

	for _, msg := range messages {
		switch msg.Role {
		case reagent.RoleSystem:
			if system != "" {
				system += "\n"
			}
			system += msg.Content
		case reagent.RoleUser:
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: msg.Content}},
				})
			}
		case reagent.RoleAssistant:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, &genai.Part{Text: msg.Content})
			}
			for _, inv := range msg.ToolCalls {
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: inv.Name,
						Args: map[string]any(inv.Args),
					},
				})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}
		case reagent.RoleTool:
			// The API wants a structured response; non-JSON observations
			// are wrapped under a "result" key.
			var response map[string]any
			if err := json.Unmarshal([]byte(msg.Content), &response); err != nil {
				response = map[string]any{"result": msg.Content}
			}
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     msg.ToolName,
						Response: response,
					},
				}},
			})
		default:
			if msg.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: msg.Content}},
				})
			}
		}
	}

	return contents, system
}
