// Package schema flattens union schema nodes into one representative,
// traversable shape while keeping discriminator metadata recoverable.
package schema

import "github.com/yourorg/playground/internal/spec"

// maxUnionDepth bounds flattening of unions nested inside unions. Documents
// are expected to be dereferenced and acyclic; the bound keeps a degenerate
// input from recursing forever.
const maxUnionDepth = 16

// Normalize resolves a node that may be an anyOf/oneOf union into a single
// variant. Non-union nodes return unchanged. Variant selection is by fixed
// priority: array-of-object, then object, then array, then any non-null
// variant, then the original node. The richest variant yields the most
// useful form, so structure wins over scalars.
//
// When the union carries a discriminator, the chosen variant is tagged with
// VariantTag and Variants so callers can still recover every branch. A node
// is nullable iff one union variant has the null type; that fact survives on
// the returned node even though the null variant itself disappears.
func Normalize(s *spec.Schema) *spec.Schema {
	return normalize(s, 0)
}

func normalize(s *spec.Schema, depth int) *spec.Schema {
	if s == nil || !s.IsUnion() || depth > maxUnionDepth {
		return s
	}

	nullable := s.Nullable
	variants := make([]*spec.Schema, 0, len(s.UnionVariants()))
	for _, v := range s.UnionVariants() {
		if v == nil {
			continue
		}
		if v.IsNull() {
			nullable = true
			continue
		}
		variants = append(variants, v)
	}

	chosen := pick(variants)
	if chosen == nil {
		// No structurally useful variant: keep the node itself, minus the
		// knowledge the caller cannot use.
		out := *s
		out.Nullable = nullable
		return &out
	}

	if chosen.IsUnion() {
		chosen = normalize(chosen, depth+1)
	}

	out := *chosen
	out.Nullable = out.Nullable || nullable
	if out.Description == "" {
		out.Description = s.Description
	}
	if out.Default == nil {
		out.Default = s.Default
	}
	if out.Example == nil {
		out.Example = s.Example
	}
	if s.Discriminator != nil {
		out.VariantTag = s.Discriminator
		out.Variants = variants
	}
	return &out
}

// pick applies the variant priority over non-null variants. Order within a
// priority class follows the variant list, so selection is deterministic.
func pick(variants []*spec.Schema) *spec.Schema {
	for _, v := range variants {
		if v.IsArray() && v.Items.IsObject() {
			return v
		}
	}
	for _, v := range variants {
		if v.IsObject() {
			return v
		}
	}
	for _, v := range variants {
		if v.IsArray() {
			return v
		}
	}
	if len(variants) > 0 {
		return variants[0]
	}
	return nil
}
