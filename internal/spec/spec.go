package spec

import (
	"sort"
	"strings"
)

// Document is a fully dereferenced OpenAPI document. Unresolved $ref nodes
// are not supported; dereferencing belongs to whatever produced the file.
type Document struct {
	OpenAPI    string                `json:"openapi,omitempty"`
	Info       Info                  `json:"info"`
	Servers    []Server              `json:"servers,omitempty"`
	Paths      map[string]*PathItem  `json:"paths"`
	Components Components            `json:"components,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty"`
	UIConfig   *UIConfig             `json:"x-ui-config,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

type Server struct {
	URL string `json:"url"`
}

// BaseURL returns the first server URL, or a placeholder origin when the
// document declares none.
func (d *Document) BaseURL() string {
	if len(d.Servers) > 0 && d.Servers[0].URL != "" {
		return d.Servers[0].URL
	}
	return "https://api.example.com"
}

type Components struct {
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
}

// SecurityRequirement maps a scheme name to its scopes.
type SecurityRequirement map[string][]string

type SecurityScheme struct {
	Type   string `json:"type"`             // apiKey, http
	Scheme string `json:"scheme,omitempty"` // bearer, basic (type http)
	Name   string `json:"name,omitempty"`   // header/query name (type apiKey)
	In     string `json:"in,omitempty"`     // header, query (type apiKey)
}

type PathItem struct {
	Get        *Operation  `json:"get,omitempty"`
	Post       *Operation  `json:"post,omitempty"`
	Put        *Operation  `json:"put,omitempty"`
	Patch      *Operation  `json:"patch,omitempty"`
	Delete     *Operation  `json:"delete,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Operations returns the item's operations keyed by upper-case method.
// Path-level parameters are folded into each operation at load time.
func (p *PathItem) Operations() map[string]*Operation {
	ops := map[string]*Operation{
		"GET":    p.Get,
		"POST":   p.Post,
		"PUT":    p.Put,
		"PATCH":  p.Patch,
		"DELETE": p.Delete,
	}
	for m, op := range ops {
		if op == nil {
			delete(ops, m)
		}
	}
	return ops
}

type Operation struct {
	OperationID string                `json:"operationId,omitempty"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Security    []SecurityRequirement `json:"security,omitempty"`
	CodeSamples []CodeSample          `json:"x-codeSamples,omitempty"`
}

// CodeSample is an author-supplied sample embedded in the document.
type CodeSample struct {
	Lang   string `json:"lang"`
	Label  string `json:"label,omitempty"`
	Source string `json:"source"`
}

type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"` // path, query, header
	Required    bool    `json:"required,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
	Example     any     `json:"example,omitempty"`
}

type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema   *Schema                   `json:"schema,omitempty"`
	Example  any                       `json:"example,omitempty"`
	Examples map[string]*ExampleObject `json:"examples,omitempty"`
}

type ExampleObject struct {
	Summary string `json:"summary,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// BodyContent picks the media type driving form and sample generation:
// application/json when present, otherwise the lexically first entry.
func (op *Operation) BodyContent() (string, *MediaType) {
	if op == nil || op.RequestBody == nil || len(op.RequestBody.Content) == 0 {
		return "", nil
	}
	if mt, ok := op.RequestBody.Content["application/json"]; ok {
		return "application/json", mt
	}
	keys := make([]string, 0, len(op.RequestBody.Content))
	for k := range op.RequestBody.Content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], op.RequestBody.Content[keys[0]]
}

// UIConfig is the x-ui-config extension block. Sidebar configuration is
// accepted but ignored here.
type UIConfig struct {
	Endpoints map[string]*EndpointEntry `json:"endpoints,omitempty"`
	Auth      *AuthConfig               `json:"auth,omitempty"`
}

type AuthConfig struct {
	Mode       string `json:"mode,omitempty"` // manual, automatic
	SchemeName string `json:"schemeName,omitempty"`
}

// EndpointEntry maps an endpoint key to the operation it exposes.
type EndpointEntry struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	URLField    *URLFieldEntry `json:"urlField,omitempty"`
}

type URLFieldEntry struct {
	Name         string `json:"name"`
	Placeholder  string `json:"placeholder,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// Operation resolves the operation an endpoint entry points at. Returns nil
// when the path or method is absent from the document. Method matching is
// case insensitive; x-ui-config entries spell methods both ways.
func (d *Document) Operation(method, path string) *Operation {
	item, ok := d.Paths[path]
	if !ok || item == nil {
		return nil
	}
	return item.Operations()[strings.ToUpper(method)]
}
