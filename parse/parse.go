// Package parse recovers structured tool invocations from model output.
//
// Backends disagree on a wire format for tool calls: some populate a native
// tool-call field, some embed a JSON object after an "Action:" marker, some
// emit a bare JSON object, and older models emit a tagged function syntax.
// The parser tries one strategy per shape in a fixed order and the first
// non-empty result wins; results are never merged across strategies.
//
// Parse never panics and never returns an error. Every decode failure is
// logged as a diagnostic and degrades to the next strategy or to "no
// invocation" — it is the caller's round that decides what an empty result
// means.
package parse

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/reagentkit/reagent"
	"github.com/rs/zerolog"
)

// Anchor is the marker that introduces an embedded JSON invocation.
const Anchor = "Action:"

// bareCallPattern locates a JSON object whose first key is "name".
var bareCallPattern = regexp.MustCompile(`\{\s*"name"\s*:`)

// Parser turns one model response into zero or more invocations.
// The zero configuration is usable; construct with New.
type Parser struct {
	log        zerolog.Logger
	positional map[string][]string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithPositional maps positional arguments of the legacy tagged syntax to
// parameter names for one tool. This is a compatibility shim for old model
// output; prefer keyword arguments for new capabilities.
func WithPositional(tool string, params ...string) Option {
	return func(p *Parser) { p.positional[tool] = params }
}

// New creates a Parser. The legacy positional conventions for the builtin
// calculator and search tools are preset.
func New(opts ...Option) *Parser {
	p := &Parser{
		log: zerolog.Nop(),
		positional: map[string][]string{
			"calculator": {"expression"},
			"search":     {"query"},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts invocations from a model response. A nil result means the
// response requested no tool calls; Parse never fabricates an invocation
// name that was not present in the response.
func (p *Parser) Parse(resp *reagent.Response) []reagent.Invocation {
	if resp == nil {
		return nil
	}
	if len(resp.ToolCalls) > 0 {
		if invs := p.fromToolCalls(resp.ToolCalls); len(invs) > 0 {
			return invs
		}
	}
	content := resp.Content
	if content == "" {
		return nil
	}
	if invs := p.fromAnchored(content); len(invs) > 0 {
		return invs
	}
	if invs := p.fromBare(content); len(invs) > 0 {
		return invs
	}
	return p.fromTagged(content)
}

// fromToolCalls decodes a backend's native tool-call field. Entries that
// fail to decode are skipped so one malformed entry cannot abort the batch.
func (p *Parser) fromToolCalls(calls []reagent.ToolCall) []reagent.Invocation {
	invs := make([]reagent.Invocation, 0, len(calls))
	for _, call := range calls {
		if call.Name == "" {
			p.log.Warn().Str("id", call.ID).Msg("tool call entry without a name, skipping")
			continue
		}
		args, err := decodeArguments(call.Arguments)
		if err != nil {
			p.log.Warn().Err(err).Str("tool", call.Name).Msg("undecodable tool call arguments, skipping entry")
			continue
		}
		invs = append(invs, reagent.Invocation{ID: call.ID, Name: call.Name, Args: args})
	}
	if len(invs) == 0 {
		return nil
	}
	return invs
}

// fromAnchored extracts the JSON object following the first Anchor marker.
func (p *Parser) fromAnchored(content string) []reagent.Invocation {
	idx := strings.Index(content, Anchor)
	if idx < 0 {
		return nil
	}
	rest := content[idx+len(Anchor):]
	brace := strings.IndexByte(rest, '{')
	if brace < 0 {
		return nil
	}
	obj, ok := extractObject(rest[brace:])
	if !ok {
		p.log.Warn().Msg("unterminated JSON object after anchor")
		return nil
	}
	return p.decodeEmbedded(obj)
}

// fromBare extracts the first JSON object anywhere in content whose first
// key is "name".
func (p *Parser) fromBare(content string) []reagent.Invocation {
	loc := bareCallPattern.FindStringIndex(content)
	if loc == nil {
		return nil
	}
	obj, ok := extractObject(content[loc[0]:])
	if !ok {
		p.log.Warn().Msg("unterminated bare JSON object")
		return nil
	}
	return p.decodeEmbedded(obj)
}

// decodeEmbedded decodes one extracted JSON object into an invocation.
// Any failure yields no invocation, never a partially decoded one.
func (p *Parser) decodeEmbedded(obj string) []reagent.Invocation {
	var payload struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		p.log.Warn().Err(err).Str("object", clip(obj, 200)).Msg("embedded invocation is not valid JSON")
		return nil
	}
	if payload.Name == "" {
		p.log.Warn().Str("object", clip(obj, 200)).Msg("embedded JSON object has no name key")
		return nil
	}
	args, err := decodeArguments(payload.Arguments)
	if err != nil {
		p.log.Warn().Err(err).Str("tool", payload.Name).Msg("embedded invocation has undecodable arguments")
		return nil
	}
	return []reagent.Invocation{{Name: payload.Name, Args: args}}
}

var errArgumentsShape = errors.New("arguments are neither an object nor a JSON-encoded object")

// decodeArguments accepts both encodings backends use for arguments: a JSON
// object, or a JSON string that itself holds an encoded object.
func decodeArguments(raw json.RawMessage) (reagent.Args, error) {
	if len(raw) == 0 {
		return reagent.Args{}, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return reagent.Args{}, nil
	case map[string]any:
		return reagent.Args(t), nil
	case string:
		if t == "" {
			return reagent.Args{}, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return nil, err
		}
		return reagent.Args(m), nil
	default:
		return nil, errArgumentsShape
	}
}

// clip truncates s for diagnostics.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
