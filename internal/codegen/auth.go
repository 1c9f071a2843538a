package codegen

import (
	"sort"

	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

// Credential placeholders baked into generated samples. Real secrets never
// appear in sample output.
const (
	apiKeyPlaceholder = "YOUR_API_KEY"
	basicPlaceholder  = "username:password"
)

// DetectAuth resolves the active security scheme for an operation:
// operation-level security first, then document-level, then the first
// declared scheme. Returns nil when the document declares no usable scheme.
func DetectAuth(doc *spec.Document, op *spec.Operation) *types.Auth {
	if doc == nil {
		return nil
	}
	name := requirementName(op.Security)
	if name == "" {
		name = requirementName(doc.Security)
	}
	if name == "" {
		name = doc.AuthSchemeName()
	}
	if name == "" {
		return nil
	}
	scheme, ok := doc.Components.SecuritySchemes[name]
	if !ok || scheme == nil {
		return nil
	}

	switch {
	case scheme.Type == "apiKey":
		in := scheme.In
		if in != "query" {
			in = "header"
		}
		return &types.Auth{Scheme: name, Kind: "apiKey", Name: scheme.Name, In: in, Placeholder: apiKeyPlaceholder}
	case scheme.Type == "http" && scheme.Scheme == "bearer":
		return &types.Auth{Scheme: name, Kind: "bearer", Placeholder: apiKeyPlaceholder}
	case scheme.Type == "http" && scheme.Scheme == "basic":
		return &types.Auth{Scheme: name, Kind: "basic", Placeholder: basicPlaceholder}
	}
	return nil
}

func requirementName(reqs []spec.SecurityRequirement) string {
	for _, req := range reqs {
		if len(req) == 0 {
			continue
		}
		names := make([]string, 0, len(req))
		for n := range req {
			names = append(names, n)
		}
		sort.Strings(names)
		return names[0]
	}
	return ""
}
