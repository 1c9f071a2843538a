package codegen

import (
	"reflect"
	"strings"

	"github.com/yourorg/playground/internal/schema"
	"github.com/yourorg/playground/internal/spec"
)

// synthesisDepth caps required-property recursion during fallback synthesis.
const synthesisDepth = 12

// resolveBody picks the request body with the precedence: current form
// values, then an explicit content example, then a synthesis from the
// schema's required properties. Empty results are omitted entirely; many
// target APIs reject empty-array fields, so an omitted field is safer than
// an explicit empty one.
func resolveBody(in Input) any {
	if in.Body == nil {
		return nil
	}
	s := schema.Normalize(in.Body.Schema)
	if len(in.Values) > 0 {
		if s != nil && !s.IsObject() {
			// Non-object bodies surface in the form as a single "body"
			// pseudo-field; its value is the whole payload.
			if v, ok := in.Values["body"]; ok {
				if str, isStr := v.(string); isStr && s.IsArray() {
					v = splitScalars(str)
				}
				if v = CleanEmpty(v); !isEmptyValue(v) {
					return v
				}
			}
		} else if body := BodyFromValues(coerceDelimited(in.Values, s), in.Parameters, DefaultValues(in.Body.Schema)); body != nil {
			return body
		}
	}
	if in.Body.Example != nil {
		return CleanEmpty(in.Body.Example)
	}
	if in.Body.Schema != nil {
		if in.Body.Schema.Example != nil {
			return CleanEmpty(in.Body.Schema.Example)
		}
		return CleanEmpty(Synthesize(in.Body.Schema))
	}
	return nil
}

// BodyFromValues unflattens dot-qualified form values into a nested body,
// skipping parameter-owned keys, internal keys (leading underscore),
// anything empty, and values still equal to their schema default. Returns
// nil when nothing survives.
func BodyFromValues(values map[string]any, params []spec.Parameter, defaults map[string]any) any {
	skip := make(map[string]bool, len(params))
	for _, p := range params {
		skip[p.Name] = true
	}

	body := map[string]any{}
	for key, v := range values {
		if key == "" || strings.HasPrefix(key, "_") {
			continue
		}
		head := key
		if i := strings.IndexByte(key, '.'); i >= 0 {
			head = key[:i]
		}
		if skip[head] {
			continue
		}
		if isEmptyValue(v) {
			continue
		}
		if dv, ok := defaults[key]; ok && reflect.DeepEqual(dv, v) {
			continue
		}
		setPath(body, strings.Split(key, "."), v)
	}

	cleaned := CleanEmpty(body)
	if isEmptyValue(cleaned) {
		return nil
	}
	return cleaned
}

// coerceDelimited splits delimited text values at array-typed property
// paths: comma separated, whitespace trimmed, empty segments dropped. Array
// fields are edited as one text value, so strings arrive here undelimited.
func coerceDelimited(values map[string]any, s *spec.Schema) map[string]any {
	paths := map[string]bool{}
	collectArrayPaths(s, "", paths, 0)
	if len(paths) == 0 {
		return values
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		if str, ok := v.(string); ok && paths[k] {
			out[k] = splitScalars(str)
			continue
		}
		out[k] = v
	}
	return out
}

func collectArrayPaths(s *spec.Schema, prefix string, out map[string]bool, depth int) {
	s = schema.Normalize(s)
	if s == nil || depth > synthesisDepth {
		return
	}
	for name, prop := range s.Properties {
		prop = schema.Normalize(prop)
		if prop == nil {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if prop.IsArray() {
			out[key] = true
		}
		if prop.IsObject() {
			collectArrayPaths(prop, key, out, depth+1)
		}
	}
}

// splitScalars parses one delimited text value into a list of scalars.
func splitScalars(s string) []any {
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isArraySchema(s *spec.Schema) bool {
	s = schema.Normalize(s)
	return s != nil && s.IsArray()
}

func setPath(m map[string]any, path []string, v any) {
	for len(path) > 1 {
		child, ok := m[path[0]].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[path[0]] = child
		}
		m = child
		path = path[1:]
	}
	m[path[0]] = v
}

// DefaultValues collects the schema's declared defaults keyed by
// dot-qualified path, for default-omission during body construction.
func DefaultValues(s *spec.Schema) map[string]any {
	out := map[string]any{}
	collectDefaults(s, "", out, 0)
	return out
}

func collectDefaults(s *spec.Schema, prefix string, out map[string]any, depth int) {
	s = schema.Normalize(s)
	if s == nil || depth > synthesisDepth {
		return
	}
	for name, prop := range s.Properties {
		prop = schema.Normalize(prop)
		if prop == nil {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if prop.Default != nil {
			out[key] = prop.Default
		}
		if prop.IsObject() {
			collectDefaults(prop, key, out, depth+1)
		}
	}
}

// Synthesize builds a body from a schema's required properties, each
// populated from its own example or default, falling back to a type-keyed
// placeholder.
func Synthesize(s *spec.Schema) any {
	return synthesize(s, 0)
}

func synthesize(s *spec.Schema, depth int) any {
	s = schema.Normalize(s)
	if s == nil || depth > synthesisDepth {
		return nil
	}
	if s.Example != nil {
		return s.Example
	}
	if s.Default != nil {
		return s.Default
	}
	if s.IsObject() {
		out := map[string]any{}
		for _, name := range s.Required {
			prop := schema.Normalize(s.Properties[name])
			if prop == nil {
				continue
			}
			switch {
			case prop.Example != nil:
				out[name] = prop.Example
			case prop.Default != nil:
				out[name] = prop.Default
			case prop.IsObject():
				out[name] = synthesize(prop, depth+1)
			default:
				out[name] = placeholder(prop)
			}
		}
		return out
	}
	if s.IsArray() {
		return []any{}
	}
	return placeholder(s)
}

// placeholder returns the type-keyed placeholder value, with format-specific
// placeholders where the format implies a recognizable shape.
func placeholder(s *spec.Schema) any {
	if len(s.Enum) > 0 {
		return s.Enum[0]
	}
	switch s.Format {
	case "email":
		return "user@example.com"
	case "password":
		return "********"
	case "uuid":
		return "123e4567-e89b-12d3-a456-426614174000"
	case "date":
		return "2024-01-01"
	case "date-time":
		return "2024-01-01T00:00:00Z"
	}
	switch s.Type {
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return "string"
	}
}

// CleanEmpty strips empty arrays and all-key-stripped objects recursively,
// so nothing the fallback synthesis introduced survives as an empty field.
func CleanEmpty(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			cleaned := CleanEmpty(item)
			if isEmptyContainer(cleaned) {
				continue
			}
			out[k] = cleaned
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			cleaned := CleanEmpty(item)
			if isEmptyContainer(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}
		return out
	default:
		return v
	}
}

func isEmptyContainer(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
