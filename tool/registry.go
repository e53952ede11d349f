// Package tool implements the capability registry and dispatcher.
//
// A Registry maps capability names to handlers and parameter schemas.
// Registration happens before a run and duplicate names are an error; during
// a run the registry is read-only and safely shareable across agents.
// Dispatch converts every outcome — missing capability, argument mismatch,
// handler failure, success — into exactly one observation and never
// propagates an error out of the loop.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/reagentkit/reagent"
	"github.com/xeipuuv/gojsonschema"
)

// Spec is the exported description of one capability, in the shape a prompt
// catalog or a backend's function-calling field expects.
type Spec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// registration pairs a tool descriptor with its handler and the schema
// compiled at registration time.
type registration struct {
	tool    reagent.Tool
	handler Handler
	schema  *gojsonschema.Schema
}

// Registry manages registered capabilities. Reads are safe for concurrent
// use; register everything before sharing it.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registration
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registration)}
}

// Register adds a capability. The tool's parameter schema is compiled once
// here so dispatch-time validation is cheap. Registering a name twice is an
// error, never a silent overwrite.
func (r *Registry) Register(t reagent.Tool, handler Handler) error {
	if t.Name == "" {
		return &ErrInvalidTool{Reason: "empty name"}
	}
	if handler == nil {
		return &ErrInvalidTool{Reason: fmt.Sprintf("tool %q has no handler", t.Name)}
	}

	var schema *gojsonschema.Schema
	if len(t.Parameters) > 0 {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(t.Parameters))
		if err != nil {
			return &ErrInvalidTool{Reason: fmt.Sprintf("tool %q has an invalid parameter schema: %v", t.Name, err)}
		}
		schema = compiled
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: t.Name}
	}
	r.tools[t.Name] = registration{tool: t, handler: handler, schema: schema}
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t reagent.Tool, handler Handler) {
	if err := r.Register(t, handler); err != nil {
		panic(err)
	}
}

// RegisterAll registers multiple capabilities, stopping at the first error.
func (r *Registry) RegisterAll(regs ...Registration) error {
	for _, reg := range regs {
		if err := r.Register(reg.Tool, reg.Handler); err != nil {
			return err
		}
	}
	return nil
}

// Add registers one or more capabilities, panicking on error. Returns the
// registry for fluent chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}

// Get retrieves a capability by name. The boolean reports existence; a
// missing name is not an error.
func (r *Registry) Get(name string) (reagent.Tool, Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	if !ok {
		return reagent.Tool{}, nil, false
	}
	return reg.tool, reg.handler, true
}

// Tools returns all registered descriptors in registration order.
func (r *Registry) Tools() []reagent.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]reagent.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

// Specs exports every capability's name, description and parameter schema in
// registration order.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name].tool
		specs = append(specs, Spec{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return specs
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute dispatches one invocation and returns its observation. It never
// returns an error: a missing capability, an argument-shape mismatch and a
// handler failure each become an error observation the model can react to.
func (r *Registry) Execute(ctx context.Context, inv reagent.Invocation) reagent.ToolResult {
	r.mu.RLock()
	reg, ok := r.tools[inv.Name]
	names := make([]string, len(r.order))
	copy(names, r.order)
	r.mu.RUnlock()

	if !ok {
		known := "none"
		if len(names) > 0 {
			known = strings.Join(names, ", ")
		}
		return reagent.ToolResult{
			ToolName: inv.Name,
			Content:  fmt.Sprintf("tool %q is not registered; known tools: %s", inv.Name, known),
			IsError:  true,
		}
	}

	if reg.schema != nil {
		if result := validate(reg.schema, inv.Args); len(result) > 0 {
			return reagent.ToolResult{
				ToolName: inv.Name,
				Content: fmt.Sprintf("invalid arguments for tool %q: %s; expected schema: %s",
					inv.Name, strings.Join(result, "; "), string(reg.tool.Parameters)),
				IsError: true,
			}
		}
	}

	content, err := reg.handler(ctx, inv.Args)
	if err != nil {
		return reagent.ToolResult{
			ToolName: inv.Name,
			Content:  fmt.Sprintf("tool %q failed (%s): %v", inv.Name, reagent.CategoryOf(err), err),
			IsError:  true,
		}
	}
	return reagent.ToolResult{ToolName: inv.Name, Content: content}
}

// validate checks the arguments against a compiled schema and returns the
// human-readable issues, empty when the arguments conform.
func validate(schema *gojsonschema.Schema, args reagent.Args) []string {
	if args == nil {
		args = reagent.Args{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues
}
