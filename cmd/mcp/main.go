// Command mcp exposes the builtin agent tools as an MCP server over stdio.
//
// MCP clients (like Claude Desktop or other AI assistants) can discover and
// call the tools once the server is configured as a subprocess.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "reagent-tools": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/reagent"
//	        }
//	    }
//	}
package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/reagentkit/reagent/mcp"
	"github.com/reagentkit/reagent/tool"
)

func main() {
	workDir := flag.String("workdir", ".", "working directory exposed to file tools")
	flag.Parse()

	registry := tool.NewRegistry().Add(tool.Builtins(tool.WithBaseDir(*workDir))...)
	registry.Add(tool.Func("time", "Get the current time", timeHandler))

	if err := mcp.ServeStdio(registry,
		mcp.WithName("reagent-tools"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}

// TimeArgs are the arguments for the time tool.
type TimeArgs struct {
	Format string `json:"format" desc:"Time format (optional): 'rfc3339', 'unix', or 'human'"`
}

func timeHandler(ctx context.Context, args TimeArgs) (string, error) {
	now := time.Now()

	switch strings.ToLower(args.Format) {
	case "rfc3339":
		return now.Format(time.RFC3339), nil
	case "unix":
		return strconv.FormatInt(now.Unix(), 10), nil
	default:
		return now.Format("Monday, January 2, 2006 at 3:04 PM MST"), nil
	}
}
