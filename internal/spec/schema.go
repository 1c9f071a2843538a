package spec

// Schema is one node of the type description: object, array, primitive, or
// union. The document is expected to be dereferenced, so nodes nest directly.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Default     any                `json:"default,omitempty"`
	Example     any                `json:"example,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`

	Discriminator *Discriminator `json:"discriminator,omitempty"`

	// Attached by schema.Normalize when it flattens a discriminated union;
	// never present in source documents. VariantTag is the original
	// discriminator and Variants the full variant list, so consumers that
	// need per-variant field sets can still recover every branch.
	VariantTag *Discriminator `json:"-"`
	Variants   []*Schema      `json:"-"`
}

// Discriminator names the property whose value selects a union variant.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// IsObject reports whether the node is traversable as an object.
func (s *Schema) IsObject() bool {
	if s == nil {
		return false
	}
	return s.Type == "object" || len(s.Properties) > 0
}

// IsArray reports whether the node is an array.
func (s *Schema) IsArray() bool {
	return s != nil && s.Type == "array"
}

// IsUnion reports whether the node carries anyOf/oneOf markers.
func (s *Schema) IsUnion() bool {
	return s != nil && (len(s.AnyOf) > 0 || len(s.OneOf) > 0)
}

// UnionVariants returns the union variant list, anyOf taking precedence.
func (s *Schema) UnionVariants() []*Schema {
	if s == nil {
		return nil
	}
	if len(s.AnyOf) > 0 {
		return s.AnyOf
	}
	return s.OneOf
}

// IsNull reports whether the node is the JSON null type.
func (s *Schema) IsNull() bool {
	return s != nil && s.Type == "null"
}

// RequiredSet returns the required property names as a set.
func (s *Schema) RequiredSet() map[string]bool {
	if s == nil || len(s.Required) == 0 {
		return nil
	}
	set := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		set[name] = true
	}
	return set
}
