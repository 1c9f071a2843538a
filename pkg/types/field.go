package types

// Kind classifies the form control a field renders as.
type Kind string

const (
	KindText        Kind = "text"
	KindToggle      Kind = "toggle"
	KindSelect      Kind = "select"
	KindNumber      Kind = "number"
	KindArray       Kind = "array" // delimited list of scalars
	KindMultiSelect Kind = "multiselect"
	KindObject      Kind = "object"
	KindObjectArray Kind = "object-array"
	KindDate        Kind = "date"
	KindDateTime    Kind = "datetime"
)

// Option is one selectable value of a select or multiselect field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Discriminator describes a tagged union inside an object-array field.
// Variants maps each tag value to the fields exposed when it is selected;
// the tag property itself is synthesized as a single select and is not
// repeated inside the variant field lists.
type Discriminator struct {
	Name     string             `json:"name"`
	Options  []Option           `json:"options"`
	Variants map[string][]Field `json:"variants"`
}

// Field is the UI-facing descriptor of one form control. Built fresh per
// endpoint and immutable once returned; value state lives with the caller,
// keyed by Name.
type Field struct {
	Name          string         `json:"name"` // dot-qualified, e.g. parent.child
	Label         string         `json:"label"`
	Kind          Kind           `json:"kind"`
	Required      bool           `json:"required"`
	Nullable      bool           `json:"nullable,omitempty"`
	Description   string         `json:"description,omitempty"`
	Default       any            `json:"default,omitempty"`
	Options       []Option       `json:"options,omitempty"`
	Minimum       *float64       `json:"minimum,omitempty"`
	Maximum       *float64       `json:"maximum,omitempty"`
	Fields        []Field        `json:"fields,omitempty"` // object and object-array
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// FieldNames flattens the top-level names of a descriptor list. The example
// parser uses this to filter recovered keys.
func FieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
