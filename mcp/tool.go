// Package mcp provides MCP (Model Context Protocol) integration.
//
// MCP is a protocol that enables AI assistants to access external tools and
// data. This package provides bidirectional integration:
//
//   - Server: Expose a [tool.Registry] as an MCP server, allowing MCP clients
//     like Claude Desktop to discover and use your tools.
//   - Client: Connect to MCP servers and use their tools through
//     [RemoteRegistry], which bridges them into the local registry.
//
// # Exposing Tools as an MCP Server
//
// To expose your tools to MCP clients:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Get weather", weatherHandler),
//	    tool.Func("search", "Search web", searchHandler),
//	)
//
//	// Serve over stdio (for subprocess-based MCP clients)
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
// To give an agent access to tools from an MCP server:
//
//	remote, err := mcp.NewRemoteRegistry(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	registry := tool.NewRegistry()
//	if err := registry.RegisterAll(remote.Registrations()...); err != nil {
//	    log.Fatal(err)
//	}
//	a := agent.New(provider, registry)
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/reagentkit/reagent"
)

// ToMCPTool converts a Tool to an MCP Tool. The Parameters JSON schema is
// used as the MCP Tool's RawInputSchema.
func ToMCPTool(t reagent.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// ToMCPTools converts a slice of Tools to MCP Tools.
func ToMCPTools(tools []reagent.Tool) []mcp.Tool {
	result := make([]mcp.Tool, len(tools))
	for i, t := range tools {
		result[i] = ToMCPTool(t)
	}
	return result
}

// FromMCPTool converts an MCP Tool to a Tool.
// It extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) reagent.Tool {
	var schema json.RawMessage

	// Prefer raw schema if available
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else {
		// Marshal the structured schema
		data, err := json.Marshal(t.InputSchema)
		if err == nil {
			schema = data
		}
	}

	return reagent.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromMCPTools converts a slice of MCP Tools to Tools.
func FromMCPTools(tools []mcp.Tool) []reagent.Tool {
	result := make([]reagent.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromMCPTool(t)
	}
	return result
}

// ToMCPCallToolRequest converts a parsed invocation to an MCP CallToolRequest.
func ToMCPCallToolRequest(inv reagent.Invocation) mcp.CallToolRequest {
	var args any
	if len(inv.Args) > 0 {
		args = map[string]any(inv.Args)
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      inv.Name,
			Arguments: args,
		},
	}
}

// FromMCPCallToolResult converts an MCP CallToolResult to a ToolResult.
// The result content is extracted and concatenated as text.
func FromMCPCallToolResult(toolName string, result *mcp.CallToolResult) reagent.ToolResult {
	if result == nil {
		return reagent.ToolResult{
			ToolName: toolName,
			Content:  "",
			IsError:  true,
		}
	}

	// Extract text content from result
	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			// For non-text content, try to marshal as JSON
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	// If there's structured content, include it
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	return reagent.ToolResult{
		ToolName: toolName,
		Content:  strings.Join(textParts, "\n"),
		IsError:  result.IsError,
	}
}

// ToMCPCallToolResult converts a ToolResult to an MCP CallToolResult.
func ToMCPCallToolResult(result reagent.ToolResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
