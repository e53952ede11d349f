package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// calculatorArgs defines arguments for the calculator tool.
type calculatorArgs struct {
	Expression string `json:"expression" desc:"Arithmetic expression, e.g. '3*7+2' or '(10+5)/3'" required:"true"`
}

// NewCalculatorTool creates a tool that evaluates arithmetic expressions:
// the four basic operators, parentheses and decimal numbers. The result is
// rendered as "<expression> = <value>".
func NewCalculatorTool() Registration {
	t, h := Bind("calculator", "Evaluate an arithmetic expression",
		func(ctx context.Context, args calculatorArgs) (string, error) {
			value, err := evalExpression(args.Expression)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s = %s", args.Expression, formatNumber(value)), nil
		})
	return Registration{Tool: t, Handler: h}
}

// searchArgs defines arguments for the search tool.
type searchArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

// NewSearchTool creates an offline demo search tool that answers from a
// canned corpus; queries miss case-insensitively. It stands in for a real
// search backend in examples and tests.
func NewSearchTool() Registration {
	corpus := map[string]string{
		"python":           "Python is a general-purpose programming language known for readability.",
		"go":               "Go is a statically typed language designed at Google for building simple, reliable software.",
		"ai":               "Artificial intelligence is the field of building systems that perform tasks requiring human-like reasoning.",
		"machine learning": "Machine learning is a subfield of AI where systems learn patterns from data.",
		"weather":          "Clear skies today with mild temperatures.",
	}

	t, h := Bind("search", "Search for information (demo: returns canned results)",
		func(ctx context.Context, args searchArgs) (string, error) {
			if result, ok := corpus[strings.ToLower(args.Query)]; ok {
				return result, nil
			}
			return fmt.Sprintf("no results found for %q", args.Query), nil
		})
	return Registration{Tool: t, Handler: h}
}

// FileOption configures the file tools.
type FileOption func(*fileConfig)

type fileConfig struct {
	baseDir     string
	maxFileSize int64
}

// WithBaseDir restricts file tools to a directory. Paths resolve relative to
// it and escaping it is an error.
func WithBaseDir(dir string) FileOption {
	return func(c *fileConfig) { c.baseDir = dir }
}

// WithMaxFileSize caps the bytes a file tool will read or write.
// Default is 10MB.
func WithMaxFileSize(bytes int64) FileOption {
	return func(c *fileConfig) { c.maxFileSize = bytes }
}

func applyFileOpts(opts []FileOption) *fileConfig {
	cfg := &fileConfig{maxFileSize: 10 * 1024 * 1024}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// resolve cleans the path and, when a base directory is set, confines the
// result to it.
func (c *fileConfig) resolve(path string) (string, error) {
	path = filepath.Clean(path)
	if c.baseDir == "" {
		return path, nil
	}
	base := filepath.Clean(c.baseDir)
	full := filepath.Join(base, path)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base directory %q", path, base)
	}
	return full, nil
}

// addFileArgs defines arguments for the file-creation tool.
type addFileArgs struct {
	Filename string `json:"filename" desc:"File to create, may include a relative path" required:"true"`
	Content  string `json:"content" desc:"Content to write" required:"true"`
}

// NewAddFileTool creates a tool that writes a new file, creating parent
// directories as needed.
func NewAddFileTool(opts ...FileOption) Registration {
	cfg := applyFileOpts(opts)

	t, h := Bind("addFile", "Create a file and write content to it",
		func(ctx context.Context, args addFileArgs) (string, error) {
			if int64(len(args.Content)) > cfg.maxFileSize {
				return "", fmt.Errorf("content size %d exceeds maximum %d", len(args.Content), cfg.maxFileSize)
			}
			path, err := cfg.resolve(args.Filename)
			if err != nil {
				return "", err
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return "", err
				}
			}
			if err := os.WriteFile(path, []byte(args.Content), 0o644); err != nil {
				return "", err
			}
			return fmt.Sprintf("created file %s with %d bytes", args.Filename, len(args.Content)), nil
		})
	return Registration{Tool: t, Handler: h}
}

// readFileArgs defines arguments for the file-reading tool.
type readFileArgs struct {
	Filename string `json:"filename" desc:"File to read" required:"true"`
}

// NewReadFileTool creates a tool that returns a file's contents.
func NewReadFileTool(opts ...FileOption) Registration {
	cfg := applyFileOpts(opts)

	t, h := Bind("read_file", "Read the contents of a file",
		func(ctx context.Context, args readFileArgs) (string, error) {
			path, err := cfg.resolve(args.Filename)
			if err != nil {
				return "", err
			}
			info, err := os.Stat(path)
			if err != nil {
				return "", err
			}
			if info.Size() > cfg.maxFileSize {
				return "", fmt.Errorf("file size %d exceeds maximum %d", info.Size(), cfg.maxFileSize)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(data), nil
		})
	return Registration{Tool: t, Handler: h}
}

// Builtins returns the stock tool set: calculator, search, addFile and
// read_file. File options apply to both file tools.
func Builtins(opts ...FileOption) []Registration {
	return []Registration{
		NewCalculatorTool(),
		NewSearchTool(),
		NewAddFileTool(opts...),
		NewReadFileTool(opts...),
	}
}
