package reagent

import (
	"encoding/json"
	"reflect"
	"strings"
)

// SchemaBuilder derives a JSON Schema object from a Go struct type, with a
// fluent API for descriptions and required fields. Use [SchemaFrom] to create
// one.
type SchemaBuilder struct {
	props    map[string]map[string]any
	order    []string
	required []string
}

// SchemaFrom creates a SchemaBuilder by reflecting on T's exported fields.
// Field names come from json tags; Go types map to JSON Schema types. A
// `desc` tag sets the field description and `required:"true"` marks the
// field required. Non-struct types yield an empty object schema.
func SchemaFrom[T any]() *SchemaBuilder {
	sb := &SchemaBuilder{props: make(map[string]map[string]any)}

	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return sb
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		prop := fieldSchema(field.Type)
		if desc := field.Tag.Get("desc"); desc != "" {
			prop["description"] = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			values := strings.Split(enum, ",")
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			prop["enum"] = list
		}
		sb.props[name] = prop
		sb.order = append(sb.order, name)
		if field.Tag.Get("required") == "true" {
			sb.required = append(sb.required, name)
		}
	}
	return sb
}

// fieldSchema maps a Go type to its JSON Schema fragment.
func fieldSchema(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": fieldSchema(t.Elem())}
	case reflect.Struct:
		props := make(map[string]any)
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = field.Name
			}
			props[name] = fieldSchema(field.Type)
		}
		return map[string]any{"type": "object", "properties": props}
	case reflect.Map:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

// Desc sets the description for a field.
func (s *SchemaBuilder) Desc(field, description string) *SchemaBuilder {
	if prop, ok := s.props[field]; ok {
		prop["description"] = description
	}
	return s
}

// Required marks the given fields as required. Unknown names are ignored.
func (s *SchemaBuilder) Required(fields ...string) *SchemaBuilder {
	for _, field := range fields {
		if _, ok := s.props[field]; !ok {
			continue
		}
		dup := false
		for _, r := range s.required {
			if r == field {
				dup = true
				break
			}
		}
		if !dup {
			s.required = append(s.required, field)
		}
	}
	return s
}

// Enum restricts a string field to the given values.
func (s *SchemaBuilder) Enum(field string, values ...string) *SchemaBuilder {
	if prop, ok := s.props[field]; ok {
		enum := make([]any, len(values))
		for i, v := range values {
			enum[i] = v
		}
		prop["enum"] = enum
	}
	return s
}

// Build serializes the schema as json.RawMessage.
func (s *SchemaBuilder) Build() json.RawMessage {
	props := make(map[string]any, len(s.props))
	for name, prop := range s.props {
		props[name] = prop
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(s.required) > 0 {
		schema["required"] = s.required
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}
