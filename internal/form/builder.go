// Package form derives UI field descriptors from normalized schema nodes.
package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourorg/playground/internal/schema"
	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

// maxDepth caps recursion over nested objects. The document is assumed
// acyclic after dereferencing; the cap turns a cyclic input into a truncated
// form instead of a hang.
const maxDepth = 24

// BuildBody returns the field descriptors for a request-body schema.
// Object bodies expand property by property; array and bare primitive bodies
// wrap in a single pseudo-field named "body". Unsupported shapes yield an
// empty list, never an error.
func BuildBody(s *spec.Schema, bodyRequired bool) []types.Field {
	s = schema.Normalize(s)
	if s == nil {
		return nil
	}
	if s.IsObject() {
		return buildFields(s, "", 0)
	}
	f, ok := buildField("body", s, bodyRequired, "", 0)
	if !ok {
		return nil
	}
	return []types.Field{f}
}

// BuildParams converts an operation's query parameters into descriptors.
// Path parameters surface as the URL field and header parameters belong to
// the auth layer, so both are skipped here.
func BuildParams(params []spec.Parameter) []types.Field {
	var fields []types.Field
	for _, p := range params {
		if p.In != "query" {
			continue
		}
		ps := p.Schema
		if ps == nil {
			ps = &spec.Schema{Type: "string"}
		}
		f, ok := buildField(p.Name, ps, p.Required, "", 0)
		if !ok {
			continue
		}
		if p.Description != "" {
			f.Description = p.Description
		}
		fields = append(fields, f)
	}
	return fields
}

// BuildFields walks a normalized object schema and returns one descriptor
// per property, recursing through nested objects with dot-qualified names.
func BuildFields(s *spec.Schema, prefix string) []types.Field {
	return buildFields(s, prefix, 0)
}

func buildFields(s *spec.Schema, prefix string, depth int) []types.Field {
	s = schema.Normalize(s)
	if s == nil || depth > maxDepth || len(s.Properties) == 0 {
		return nil
	}
	required := s.RequiredSet()

	// Property order is not meaningful in the source document; sort for a
	// stable form layout.
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]types.Field, 0, len(names))
	for _, name := range names {
		f, ok := buildField(name, s.Properties[name], required[name], prefix, depth)
		if !ok {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func buildField(name string, prop *spec.Schema, required bool, prefix string, depth int) (types.Field, bool) {
	prop = schema.Normalize(prop)
	if prop == nil || depth > maxDepth {
		return types.Field{}, false
	}

	qualified := name
	if prefix != "" {
		qualified = prefix + "." + name
	}
	f := types.Field{
		Name:        qualified,
		Label:       labelize(name),
		Required:    required,
		Nullable:    prop.Nullable,
		Description: prop.Description,
		Default:     prop.Default,
	}

	switch {
	case prop.IsArray():
		buildArrayField(&f, prop, depth)
	case prop.IsObject():
		if nested := buildFields(prop, qualified, depth+1); len(nested) > 0 {
			f.Kind = types.KindObject
			f.Fields = nested
			break
		}
		// An empty object is not worth an expandable section.
		buildPrimitiveField(&f, prop)
	default:
		buildPrimitiveField(&f, prop)
	}
	return f, true
}

func buildArrayField(f *types.Field, prop *spec.Schema, depth int) {
	items := schema.Normalize(prop.Items)
	switch {
	case items != nil && items.VariantTag != nil:
		f.Kind = types.KindObjectArray
		f.Discriminator = buildDiscriminator(items, depth)
		f.Fields = discriminatorFields(f.Discriminator)
	case len(itemEnum(items)) > 0:
		f.Kind = types.KindMultiSelect
		f.Options = enumOptions(items.Enum)
	case items.IsObject():
		if nested := buildFields(items, "", depth+1); len(nested) > 0 {
			f.Kind = types.KindObjectArray
			f.Fields = nested
			return
		}
		f.Kind = types.KindArray
	default:
		// Array of primitives: edited as one delimited text value.
		f.Kind = types.KindArray
	}
}

func itemEnum(items *spec.Schema) []any {
	if items == nil {
		return nil
	}
	return items.Enum
}

func buildPrimitiveField(f *types.Field, prop *spec.Schema) {
	switch {
	case prop.Type == "boolean":
		f.Kind = types.KindToggle
	case len(prop.Enum) > 0:
		f.Kind = types.KindSelect
		f.Options = enumOptions(prop.Enum)
	case prop.Type == "integer" || prop.Type == "number":
		f.Kind = types.KindNumber
		f.Minimum = prop.Minimum
		f.Maximum = prop.Maximum
	case prop.Format == "date":
		f.Kind = types.KindDate
	case prop.Format == "date-time":
		f.Kind = types.KindDateTime
	default:
		f.Kind = types.KindText
	}
}

func enumOptions(enum []any) []types.Option {
	opts := make([]types.Option, 0, len(enum))
	for _, v := range enum {
		val := fmt.Sprint(v)
		opts = append(opts, types.Option{Value: val, Label: labelize(val)})
	}
	return opts
}

// labelize turns a property name into a display label: words split on
// underscores and hyphens, each capitalized.
func labelize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
