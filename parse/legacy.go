package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reagentkit/reagent"
)

// Delimiters of the legacy tagged function syntax, e.g.
// <tool_call>search(query="go")</tool_call>.
const (
	legacyOpenTag  = "<tool_call>"
	legacyCloseTag = "</tool_call>"
)

// UnknownTool is the name of the degenerate invocation returned when a
// legacy tagged span is present but cannot be parsed as function syntax.
// Dispatching it fails loudly, which gives the caller something explicit to
// act on or reject instead of a silently dropped span.
const UnknownTool = "unknown"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// fromTagged handles the legacy tagged function syntax. It only matches when
// the delimiter pair is present; without the structural cue it reports no
// invocation rather than guessing.
func (p *Parser) fromTagged(content string) []reagent.Invocation {
	start := strings.Index(content, legacyOpenTag)
	if start < 0 {
		return nil
	}
	span := content[start+len(legacyOpenTag):]
	if end := strings.Index(span, legacyCloseTag); end >= 0 {
		span = span[:end]
	}
	span = strings.TrimSpace(span)

	inv, ok := p.parseCallSyntax(span)
	if !ok {
		p.log.Warn().Str("span", clip(span, 200)).Msg("tagged span is not function syntax, surfacing as unknown invocation")
		return []reagent.Invocation{{Name: UnknownTool, Args: reagent.Args{"raw": span}}}
	}
	return []reagent.Invocation{inv}
}

// parseCallSyntax parses name(k="v", ...) with comma-separated key=value or
// positional tokens. Positional tokens are mapped to parameter names through
// the per-tool convention; the mapping is lossy and kept only for old model
// output.
func (p *Parser) parseCallSyntax(span string) (reagent.Invocation, bool) {
	open := strings.IndexByte(span, '(')
	if open <= 0 || !strings.HasSuffix(span, ")") {
		return reagent.Invocation{}, false
	}
	name := strings.TrimSpace(span[:open])
	if !identPattern.MatchString(name) {
		return reagent.Invocation{}, false
	}

	args := reagent.Args{}
	params := p.positional[name]
	pos := 0
	for _, token := range splitTopLevel(span[open+1 : len(span)-1]) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if key, value, ok := cutKeyValue(token); ok {
			args[key] = unquote(value)
			continue
		}
		if pos < len(params) {
			args[params[pos]] = unquote(token)
		} else {
			args[fmt.Sprintf("arg%d", pos)] = unquote(token)
		}
		pos++
	}
	return reagent.Invocation{Name: name, Args: args}, true
}

// splitTopLevel splits on commas that are not inside a quoted string.
func splitTopLevel(s string) []string {
	var parts []string
	var current strings.Builder
	inString := false
	escaped := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			current.WriteByte(c)
		case c == '\\':
			escaped = true
			current.WriteByte(c)
		case inString && c == quote:
			inString = false
			current.WriteByte(c)
		case inString:
			current.WriteByte(c)
		case c == '"' || c == '\'':
			inString = true
			quote = c
			current.WriteByte(c)
		case c == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	parts = append(parts, current.String())
	return parts
}

// cutKeyValue splits a key=value token. The key must be an identifier, so a
// positional token containing '=' inside quotes is not misread.
func cutKeyValue(token string) (key, value string, ok bool) {
	eq := strings.IndexByte(token, '=')
	if eq <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(token[:eq])
	if !identPattern.MatchString(key) {
		return "", "", false
	}
	return key, strings.TrimSpace(token[eq+1:]), true
}

// unquote strips one pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
