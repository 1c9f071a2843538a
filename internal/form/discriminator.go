package form

import (
	"fmt"

	"github.com/yourorg/playground/internal/schema"
	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

// buildDiscriminator builds the per-variant field registry for a
// discriminated array item schema. Each discriminator value maps to the
// fields its variant exposes, minus the tag property itself.
func buildDiscriminator(items *spec.Schema, depth int) *types.Discriminator {
	tag := items.VariantTag.PropertyName
	disc := &types.Discriminator{
		Name:     tag,
		Variants: make(map[string][]types.Field, len(items.Variants)),
	}

	seen := map[string]bool{}
	for i, variant := range items.Variants {
		variant = schema.Normalize(variant)
		if variant == nil {
			continue
		}
		fields := withoutField(buildFields(variant, "", depth+1), tag)
		for _, val := range variantTagValues(variant, tag, i) {
			if seen[val] {
				continue
			}
			seen[val] = true
			disc.Options = append(disc.Options, types.Option{Value: val, Label: labelize(val)})
			disc.Variants[val] = fields
		}
	}
	return disc
}

// variantTagValues recovers the discriminator values a variant answers to:
// the tag property's enum when declared, else its default or example, else a
// positional fallback so the variant stays reachable.
func variantTagValues(variant *spec.Schema, tag string, index int) []string {
	if prop, ok := variant.Properties[tag]; ok && prop != nil {
		if len(prop.Enum) > 0 {
			vals := make([]string, 0, len(prop.Enum))
			for _, v := range prop.Enum {
				vals = append(vals, fmt.Sprint(v))
			}
			return vals
		}
		if prop.Default != nil {
			return []string{fmt.Sprint(prop.Default)}
		}
		if prop.Example != nil {
			return []string{fmt.Sprint(prop.Example)}
		}
	}
	if variant.Title != "" {
		return []string{variant.Title}
	}
	return []string{fmt.Sprintf("variant_%d", index)}
}

// discriminatorFields flattens a discriminator into the field list the UI
// renders: the synthesized tag select followed by the union of every
// variant's remaining fields.
func discriminatorFields(disc *types.Discriminator) []types.Field {
	fields := []types.Field{{
		Name:     disc.Name,
		Label:    labelize(disc.Name),
		Kind:     types.KindSelect,
		Required: true,
		Options:  disc.Options,
	}}
	seen := map[string]bool{disc.Name: true}
	for _, opt := range disc.Options {
		for _, f := range disc.Variants[opt.Value] {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			fields = append(fields, f)
		}
	}
	return fields
}

// PruneVariantValues drops entered values that belong only to non-selected
// variants. Switching the tag is destructive to the other variants' fields
// so stale cross-variant data never reaches a request body. Keys the
// discriminator does not know about pass through untouched.
func PruneVariantValues(disc *types.Discriminator, selected string, item map[string]any) map[string]any {
	if disc == nil || item == nil {
		return item
	}
	keep := map[string]bool{disc.Name: true}
	for _, f := range disc.Variants[selected] {
		keep[f.Name] = true
	}
	owned := map[string]bool{}
	for _, fields := range disc.Variants {
		for _, f := range fields {
			owned[f.Name] = true
		}
	}

	out := make(map[string]any, len(item))
	for k, v := range item {
		if owned[k] && !keep[k] {
			continue
		}
		out[k] = v
	}
	return out
}

func withoutField(fields []types.Field, name string) []types.Field {
	out := fields[:0:0]
	for _, f := range fields {
		if f.Name == name {
			continue
		}
		out = append(out, f)
	}
	return out
}
