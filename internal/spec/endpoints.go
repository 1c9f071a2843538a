package spec

import (
	"fmt"
	"sort"
	"strings"
)

// methodOrder fixes the iteration order when deriving endpoints from paths.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// NamedEndpoint pairs an endpoint key with its entry.
type NamedEndpoint struct {
	Key   string
	Entry *EndpointEntry
}

// Endpoints returns the document's endpoint table in a stable order. Explicit
// x-ui-config entries win; otherwise one entry is derived per operation.
func (d *Document) Endpoints() []NamedEndpoint {
	if d.UIConfig != nil && len(d.UIConfig.Endpoints) > 0 {
		keys := make([]string, 0, len(d.UIConfig.Endpoints))
		for k := range d.UIConfig.Endpoints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]NamedEndpoint, 0, len(keys))
		for _, k := range keys {
			out = append(out, NamedEndpoint{Key: k, Entry: d.UIConfig.Endpoints[k]})
		}
		return out
	}
	return d.deriveEndpoints()
}

// Endpoint resolves one endpoint entry by key, deriving the table when the
// document carries none. Returns nil when the key is unknown.
func (d *Document) Endpoint(key string) *EndpointEntry {
	for _, ne := range d.Endpoints() {
		if ne.Key == key {
			return ne.Entry
		}
	}
	return nil
}

func (d *Document) deriveEndpoints() []NamedEndpoint {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []NamedEndpoint
	seen := map[string]bool{}
	for _, p := range paths {
		item := d.Paths[p]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, method := range methodOrder {
			op, ok := ops[method]
			if !ok {
				continue
			}
			key := EndpointKey(op.OperationID, method, p)
			if seen[key] {
				continue
			}
			seen[key] = true

			entry := &EndpointEntry{
				Title:       op.Summary,
				Description: op.Description,
				Method:      method,
				Path:        p,
			}
			if entry.Title == "" {
				entry.Title = key
			}
			if uf := deriveURLField(op); uf != nil {
				entry.URLField = uf
			}
			out = append(out, NamedEndpoint{Key: key, Entry: entry})
		}
	}
	return out
}

// EndpointKey derives a stable endpoint key from an operation id, falling
// back to method and path when the id is blank.
func EndpointKey(operationID, method, path string) string {
	id := strings.TrimSpace(operationID)
	if id == "" {
		mangled := strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path)
		id = fmt.Sprintf("%s_%s", strings.ToLower(method), mangled)
	}
	return strings.ReplaceAll(strings.ToLower(id), "_", "-")
}

// deriveURLField surfaces the first path parameter as the URL input.
func deriveURLField(op *Operation) *URLFieldEntry {
	for _, p := range op.Parameters {
		if p.In != "path" {
			continue
		}
		uf := &URLFieldEntry{Name: p.Name, Placeholder: p.Description}
		if p.Schema != nil && p.Schema.Example != nil {
			uf.DefaultValue = fmt.Sprint(p.Schema.Example)
		}
		return uf
	}
	return nil
}

// AuthSchemeName returns the configured security scheme name, falling back
// to the lexically first declared scheme. Declaration order is lost when the
// document is decoded, so the fallback sorts names for determinism.
func (d *Document) AuthSchemeName() string {
	if d.UIConfig != nil && d.UIConfig.Auth != nil && d.UIConfig.Auth.SchemeName != "" {
		return d.UIConfig.Auth.SchemeName
	}
	if len(d.Components.SecuritySchemes) == 0 {
		return ""
	}
	names := make([]string, 0, len(d.Components.SecuritySchemes))
	for name := range d.Components.SecuritySchemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}
