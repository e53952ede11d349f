package parse

// extractObject returns the smallest well-formed JSON object starting at the
// first byte of s, which must be '{'. The scan counts brace depth while
// tracking string and escape state: braces inside quoted strings are
// ignored, and an escaped quote does not toggle string mode. Returns false
// when the depth never returns to zero.
func extractObject(s string) (string, bool) {
	if len(s) == 0 || s[0] != '{' {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// braces inside strings do not count
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
