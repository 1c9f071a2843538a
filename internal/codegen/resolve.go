// Package codegen renders illustrative request code samples for an
// operation. One shared resolved request feeds every language renderer, so
// adding a language never touches body-construction semantics.
package codegen

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

// Input is everything sample generation needs for one endpoint.
type Input struct {
	Method      string
	Path        string
	BaseURL     string
	Parameters  []spec.Parameter
	Body        *spec.MediaType
	ContentType string
	Auth        *types.Auth
	// Values holds current form state, flat with dot-qualified keys. Nil
	// means "no user input yet"; the body then falls back to examples or
	// required-property synthesis.
	Values map[string]any
}

// Pair is one ordered key/value entry (query parameter or header).
type Pair struct {
	Key   string
	Value string
}

// Request is the resolved tuple shared by all renderers.
type Request struct {
	Method      string
	URL         string // path substituted, no query string
	Query       []Pair // in parameter declaration order
	Headers     []Pair
	Auth        *types.Auth
	Body        any
	ContentType string
}

// FullURL joins the URL and encoded query string.
func (r Request) FullURL() string {
	if len(r.Query) == 0 {
		return r.URL
	}
	parts := make([]string, 0, len(r.Query))
	for _, q := range r.Query {
		parts = append(parts, url.QueryEscape(q.Key)+"="+url.QueryEscape(q.Value))
	}
	return r.URL + "?" + strings.Join(parts, "&")
}

// Resolve computes the (path, query, body, headers) tuple from an input.
// It never fails: unresolvable values degrade to placeholders or omission.
func Resolve(in Input) Request {
	req := Request{
		Method:      strings.ToUpper(in.Method),
		URL:         strings.TrimRight(in.BaseURL, "/") + substitutePath(in.Path, in.Parameters, in.Values),
		Auth:        in.Auth,
		ContentType: in.ContentType,
	}

	for _, p := range in.Parameters {
		if p.In != "query" {
			continue
		}
		v := paramValue(p, in.Values)
		if str, ok := v.(string); ok && isArraySchema(p.Schema) {
			v = splitScalars(str)
		}
		if isEmptyValue(v) {
			continue
		}
		// Array values expand to repeated key=value pairs, in list order.
		if list, ok := v.([]any); ok {
			for _, item := range list {
				req.Query = append(req.Query, Pair{Key: p.Name, Value: scalarString(item)})
			}
			continue
		}
		req.Query = append(req.Query, Pair{Key: p.Name, Value: scalarString(v)})
	}

	req.Body = resolveBody(in)
	if req.Body != nil && req.ContentType == "" {
		req.ContentType = "application/json"
	}
	if req.Body != nil {
		req.Headers = append(req.Headers, Pair{Key: "Content-Type", Value: req.ContentType})
	}
	if a := in.Auth; a != nil {
		switch a.Kind {
		case "apiKey":
			if a.In == "query" {
				req.Query = append(req.Query, Pair{Key: a.Name, Value: a.Placeholder})
			} else {
				req.Headers = append(req.Headers, Pair{Key: a.Name, Value: a.Placeholder})
			}
		case "bearer":
			req.Headers = append(req.Headers, Pair{Key: "Authorization", Value: "Bearer " + a.Placeholder})
			// basic is rendered per language (curl -u, requests auth=), not
			// as a precomputed header.
		}
	}
	return req
}

// substitutePath fills {name} segments using the value precedence chain:
// current form value, then parameter/schema example, then schema default,
// then a literal placeholder.
func substitutePath(path string, params []spec.Parameter, values map[string]any) string {
	for _, p := range params {
		if p.In != "path" {
			continue
		}
		v := paramValue(p, values)
		repl := "<" + p.Name + ">"
		if !isEmptyValue(v) {
			repl = scalarString(v)
		}
		path = strings.ReplaceAll(path, "{"+p.Name+"}", repl)
	}
	return path
}

func paramValue(p spec.Parameter, values map[string]any) any {
	if v, ok := values[p.Name]; ok && !isEmptyValue(v) {
		return v
	}
	if p.Example != nil {
		return p.Example
	}
	if p.Schema != nil {
		if p.Schema.Example != nil {
			return p.Schema.Example
		}
		if p.Schema.Default != nil {
			return p.Schema.Default
		}
	}
	return nil
}

// scalarString renders a scalar for a URL or header without quoting.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// isEmptyValue mirrors the body omission rules: nil, empty string, empty
// slice, and empty map all count as absent.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
