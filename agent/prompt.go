package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"text/template"

	"github.com/reagentkit/reagent/tool"
)

// defaultPromptTemplate instructs the model to follow the
// think/act/observe/answer protocol and embeds the live environment.
const defaultPromptTemplate = `You are an AI assistant that can call tools. To solve the user's request you must follow a "think -> act -> observe -> final answer" loop.

## Available tools
{{.ToolList}}

## Output format (follow strictly)

Your reply must contain your reasoning, then either an Action or a Final Answer.

### Case 1: you need to call a tool
The JSON must be on a single line:
Action: {"name": "tool_name", "arguments": {"param": "value"}}

### Case 2: you have enough information to answer
final_answer: the final natural-language reply to the user.

## Rules
1. Never output final_answer after an Action in the same reply.
2. Never output JSON after final_answer.
3. After you see a tool result, decide whether you have enough information:
   - if yes, output final_answer.
   - if no, output the next Action.
4. Do not repeat a tool call whose result you already have.

## Environment
- OS: {{.OS}}
- Files: {{.FileList}}
`

// promptData is the substitution context for the system prompt template.
type promptData struct {
	ToolList string
	OS       string
	FileList string
}

// renderSystemPrompt fills the template with the live tool catalog and
// static environment facts.
func renderSystemPrompt(tmpl string, specs []tool.Spec, workDir string) (string, error) {
	if tmpl == "" {
		tmpl = defaultPromptTemplate
	}
	t, err := template.New("system").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("agent: parsing prompt template: %w", err)
	}

	var out strings.Builder
	err = t.Execute(&out, promptData{
		ToolList: formatToolList(specs),
		OS:       osFamily(),
		FileList: listFiles(workDir),
	})
	if err != nil {
		return "", fmt.Errorf("agent: rendering prompt template: %w", err)
	}
	return out.String(), nil
}

// formatToolList renders one catalog line per capability with its
// parameter names and descriptions.
func formatToolList(specs []tool.Spec) string {
	if len(specs) == 0 {
		return "no tools available"
	}

	var out strings.Builder
	for i, spec := range specs {
		if i > 0 {
			out.WriteByte('\n')
		}
		fmt.Fprintf(&out, "- %s: %s\n  parameters: %s", spec.Name, spec.Description, formatParameters(spec.Parameters))
	}
	return out.String()
}

func formatParameters(schema json.RawMessage) string {
	var decoded struct {
		Properties map[string]struct {
			Description string `json:"description"`
		} `json:"properties"`
	}
	if len(schema) == 0 || json.Unmarshal(schema, &decoded) != nil || len(decoded.Properties) == 0 {
		return "none"
	}

	names := make([]string, 0, len(decoded.Properties))
	for name := range decoded.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, decoded.Properties[name].Description))
	}
	return strings.Join(parts, ", ")
}

// listFiles returns up to ten regular file names from dir, comma-separated.
func listFiles(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "unavailable"
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
		if len(files) == 10 {
			break
		}
	}
	if len(files) == 0 {
		return "no files"
	}
	return strings.Join(files, ", ")
}

// osFamily maps runtime.GOOS to the label models are used to seeing.
func osFamily() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return "Unknown"
	}
}
