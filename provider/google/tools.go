package google

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/reagentkit/reagent"
)

func convertTools(tools []reagent.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	funcs := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		funcs[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  convertSchema(t.Parameters),
		}
	}

	return []*genai.Tool{{FunctionDeclarations: funcs}}
}

func convertToolChoice(choice reagent.ToolChoice) *genai.ToolConfig {
	mode := genai.FunctionCallingConfigModeAuto
	switch choice {
	case reagent.ToolChoiceNone:
		mode = genai.FunctionCallingConfigModeNone
	case reagent.ToolChoiceRequired:
		mode = genai.FunctionCallingConfigModeAny
	}
	return &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: mode},
	}
}

func extractToolCalls(parts []*genai.Part) []reagent.ToolCall {
	var calls []reagent.ToolCall
	for i, part := range parts {
		if part.FunctionCall == nil {
			continue
		}
		args, _ := json.Marshal(part.FunctionCall.Args)
		calls = append(calls, reagent.ToolCall{
			ID:        fmt.Sprintf("call_%d_%s", i, part.FunctionCall.Name),
			Name:      part.FunctionCall.Name,
			Arguments: args,
		})
	}
	return calls
}
