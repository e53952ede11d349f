package reagent

import "encoding/json"

// Args is the argument mapping of a parsed invocation: string keys to
// JSON-compatible values (string, float64, bool, nil, nested maps, slices).
type Args map[string]any

// JSON renders the arguments as a compact JSON object.
// An empty or nil mapping renders as "{}".
func (a Args) JSON() string {
	if len(a) == 0 {
		return "{}"
	}
	data, err := json.Marshal(map[string]any(a))
	if err != nil {
		return "{}"
	}
	return string(data)
}

// String returns the named argument as a string, if present and a string.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// Float returns the named argument as a float64, if present and numeric.
func (a Args) Float(key string) (float64, bool) {
	v, ok := a[key].(float64)
	return v, ok
}

// Bool returns the named argument as a bool, if present and boolean.
func (a Args) Bool(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

// Invocation is a parsed request to call one named capability.
//
// The parser guarantees Name is non-empty: when no name is recoverable from a
// model response it reports no invocation rather than fabricating one.
type Invocation struct {
	// ID is an optional correlation token. It is only present when the
	// invocation came from a backend's structured tool-call field.
	ID string `json:"id,omitempty"`
	// Name is the capability to call.
	Name string `json:"name"`
	// Args holds the decoded arguments.
	Args Args `json:"arguments,omitempty"`
}
