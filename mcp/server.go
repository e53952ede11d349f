package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/reagentkit/reagent"
	"github.com/reagentkit/reagent/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server that exposes the tools of a
// [tool.Registry]. Each registered tool is published to the MCP server,
// allowing MCP clients to discover and call it.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Get weather", weatherHandler),
//	    tool.Func("search", "Search web", searchHandler),
//	)
//
//	mcpServer := mcp.NewServer(registry,
//	    mcp.WithName("my-tools"),
//	    mcp.WithVersion("1.0.0"),
//	)
//
//	server.ServeStdio(mcpServer)
func NewServer(registry *tool.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "reagent-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range registry.Tools() {
		_, handler, ok := registry.Get(t.Name)
		if !ok || handler == nil {
			continue
		}

		s.AddTool(ToMCPTool(t), createMCPHandler(handler))
	}

	return s
}

// createMCPHandler wraps a tool.Handler as an MCP tool handler.
func createMCPHandler(handler tool.Handler) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := reagent.Args{}
		switch v := req.Params.Arguments.(type) {
		case nil:
		case map[string]any:
			args = reagent.Args(v)
		default:
			// Some transports deliver arguments as raw JSON; round-trip
			// through the codec to recover the mapping.
			data, err := json.Marshal(v)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to decode arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to decode arguments: %v", err)), nil
			}
		}

		content, err := handler(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(content), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("hello", "Say hello", helloHandler),
//	)
//
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	s := NewServer(registry, opts...)
	return server.ServeStdio(s)
}
