// Package playground composes the schema, form, codegen, and parse layers
// into per-endpoint playground configuration.
package playground

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/yourorg/playground/internal/codegen"
	"github.com/yourorg/playground/internal/form"
	"github.com/yourorg/playground/internal/parse"
	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

// Options tune configuration building.
type Options struct {
	// Languages selects sample targets; empty means codegen defaults.
	Languages []string
	// BaseURL overrides the document's first server URL.
	BaseURL string
	Logger  *slog.Logger
}

// Builder derives endpoint configurations from one document. Safe for
// concurrent use: it only reads the document and allocates fresh outputs.
type Builder struct {
	doc   *spec.Document
	langs []string
	base  string
	log   *slog.Logger
}

// New constructs a Builder over a loaded document.
func New(doc *spec.Document, opts Options) *Builder {
	base := opts.BaseURL
	if base == "" {
		base = doc.BaseURL()
	}
	return &Builder{doc: doc, langs: opts.Languages, base: base, log: opts.Logger}
}

// Endpoints builds the configuration for every endpoint, in key order.
func (b *Builder) Endpoints() []*types.EndpointConfig {
	named := b.doc.Endpoints()
	out := make([]*types.EndpointConfig, 0, len(named))
	for _, ne := range named {
		out = append(out, b.build(ne.Key, ne.Entry))
	}
	return out
}

// Endpoint builds the configuration for one endpoint key. Returns nil for an
// unknown key; a missing entry is not an error.
func (b *Builder) Endpoint(key string) *types.EndpointConfig {
	entry := b.doc.Endpoint(key)
	if entry == nil {
		return nil
	}
	return b.build(key, entry)
}

// Samples regenerates code samples for an endpoint from current form values.
func (b *Builder) Samples(key string, values map[string]any) []types.Sample {
	entry := b.doc.Endpoint(key)
	if entry == nil {
		return nil
	}
	op := b.doc.Operation(entry.Method, entry.Path)
	if op == nil {
		return nil
	}
	in := b.input(entry, op)
	in.Values = values
	return codegen.Generate(in, b.langs)
}

// ParseExample reverse-parses a code sample into form values for an
// endpoint, filtered to its known field names.
func (b *Builder) ParseExample(key, lang, source string) map[string]any {
	cfg := b.Endpoint(key)
	if cfg == nil {
		return map[string]any{}
	}
	urlField := ""
	if cfg.URLField != nil {
		urlField = cfg.URLField.Name
	}
	return parse.Values(lang, source, types.FieldNames(cfg.Fields), urlField)
}

func (b *Builder) build(key string, entry *spec.EndpointEntry) *types.EndpointConfig {
	cfg := &types.EndpointConfig{
		Key:         key,
		Title:       entry.Title,
		Description: entry.Description,
		Method:      entry.Method,
		Path:        entry.Path,
		Fields:      []types.Field{},
	}
	if entry.URLField != nil {
		cfg.URLField = &types.URLField{
			Name:         entry.URLField.Name,
			Placeholder:  entry.URLField.Placeholder,
			DefaultValue: entry.URLField.DefaultValue,
		}
	}

	op := b.doc.Operation(entry.Method, entry.Path)
	if op == nil {
		// A partially renderable form beats a crashed UI: keep the entry
		// metadata and an empty field list.
		if b.log != nil {
			b.log.Warn("endpoint points at missing operation", "key", key, "method", entry.Method, "path", entry.Path)
		}
		return cfg
	}

	if cfg.URLField == nil {
		if uf := urlFieldFromParams(op); uf != nil {
			cfg.URLField = uf
		}
	}
	cfg.Auth = codegen.DetectAuth(b.doc, op)

	cfg.Fields = append(cfg.Fields, form.BuildParams(op.Parameters)...)
	if _, mt := op.BodyContent(); mt != nil && mt.Schema != nil {
		required := op.RequestBody != nil && op.RequestBody.Required
		cfg.Fields = append(cfg.Fields, form.BuildBody(mt.Schema, required)...)
	}

	in := b.input(entry, op)
	if len(op.CodeSamples) > 0 {
		// Author-supplied samples are cached verbatim, never regenerated.
		for _, cs := range op.CodeSamples {
			cfg.Samples = append(cfg.Samples, types.Sample{Lang: cs.Lang, Label: cs.Label, Source: cs.Source})
		}
	} else {
		cfg.Samples = codegen.Generate(in, b.langs)
	}
	cfg.Examples = b.examples(op, in)
	return cfg
}

func (b *Builder) input(entry *spec.EndpointEntry, op *spec.Operation) codegen.Input {
	ct, mt := op.BodyContent()
	return codegen.Input{
		Method:      entry.Method,
		Path:        entry.Path,
		BaseURL:     b.base,
		Parameters:  op.Parameters,
		Body:        mt,
		ContentType: ct,
		Auth:        codegen.DetectAuth(b.doc, op),
	}
}

// examples derives the worked-example list: explicit named content examples
// first, then a single content/schema example, then parameter examples. Each
// example becomes form values plus samples regenerated from them.
func (b *Builder) examples(op *spec.Operation, in codegen.Input) []types.Example {
	_, mt := op.BodyContent()

	if mt != nil && len(mt.Examples) > 0 {
		names := make([]string, 0, len(mt.Examples))
		for name := range mt.Examples {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]types.Example, 0, len(names))
		for _, name := range names {
			ex := mt.Examples[name]
			if ex == nil || ex.Value == nil {
				continue
			}
			title := ex.Summary
			if title == "" {
				title = name
			}
			out = append(out, b.makeExample(title, flattenValues(ex.Value), in))
		}
		return out
	}

	if mt != nil {
		if v := mt.Example; v != nil {
			return []types.Example{b.makeExample("Example", flattenValues(v), in)}
		}
		if mt.Schema != nil && mt.Schema.Example != nil {
			return []types.Example{b.makeExample("Example", flattenValues(mt.Schema.Example), in)}
		}
	}

	values := map[string]any{}
	for _, p := range op.Parameters {
		if p.Example != nil {
			values[p.Name] = p.Example
		} else if p.Schema != nil && p.Schema.Example != nil {
			values[p.Name] = p.Schema.Example
		}
	}
	if len(values) > 0 {
		return []types.Example{b.makeExample("Example", values, in)}
	}
	return nil
}

func (b *Builder) makeExample(name string, values map[string]any, in codegen.Input) types.Example {
	in.Values = values
	return types.Example{
		Name:    name,
		Values:  values,
		Samples: codegen.Generate(in, b.langs),
	}
}

// urlFieldFromParams mirrors endpoint derivation: the first path parameter
// doubles as the URL input.
func urlFieldFromParams(op *spec.Operation) *types.URLField {
	for _, p := range op.Parameters {
		if p.In != "path" {
			continue
		}
		uf := &types.URLField{Name: p.Name, Placeholder: p.Description}
		if p.Schema != nil && p.Schema.Example != nil {
			uf.DefaultValue = fmt.Sprint(p.Schema.Example)
		}
		return uf
	}
	return nil
}

// flattenValues turns a nested example body into flat, dot-qualified form
// values. Arrays stay whole; the form layer owns per-item state.
func flattenValues(v any) map[string]any {
	out := map[string]any{}
	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			out["body"] = v
		}
		return out
	}
	flattenInto(m, "", out)
	return out
}

func flattenInto(m map[string]any, prefix string, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenInto(child, key, out)
			continue
		}
		out[key] = v
	}
}
