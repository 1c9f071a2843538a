package codegen

import (
	"strings"
	"testing"

	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/pkg/types"
)

func createUserInput() Input {
	return Input{
		Method:  "POST",
		Path:    "/users",
		BaseURL: "https://api.example.com",
		Body: &spec.MediaType{
			Schema: &spec.Schema{
				Type: "object",
				Properties: map[string]*spec.Schema{
					"name": {Type: "string"},
					"age":  {Type: "integer"},
				},
				Required: []string{"name"},
			},
		},
		ContentType: "application/json",
		Values:      map[string]any{"name": "Ada", "age": float64(30)},
	}
}

func TestGenerateDefaultLanguages(t *testing.T) {
	samples := Generate(createUserInput(), nil)
	if len(samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(samples))
	}
	wantLangs := []string{"curl", "python", "javascript"}
	wantLabels := []string{"cURL", "Python", "JavaScript"}
	for i, s := range samples {
		if s.Lang != wantLangs[i] || s.Label != wantLabels[i] {
			t.Fatalf("sample %d = %s/%s", i, s.Lang, s.Label)
		}
		if s.Source == "" {
			t.Fatalf("sample %d has empty source", i)
		}
	}
}

func TestGenerateSkipsUnknownLanguages(t *testing.T) {
	samples := Generate(createUserInput(), []string{"curl", "rust", "python"})
	if len(samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(samples))
	}
	if samples[0].Lang != "curl" || samples[1].Lang != "python" {
		t.Fatalf("langs = %s, %s", samples[0].Lang, samples[1].Lang)
	}
}

func TestRenderCurl(t *testing.T) {
	samples := Generate(createUserInput(), []string{"curl"})
	src := samples[0].Source

	if !strings.HasPrefix(src, `curl -X POST "https://api.example.com/users"`) {
		t.Fatalf("curl prefix wrong:\n%s", src)
	}
	if !strings.Contains(src, `-H "Content-Type: application/json"`) {
		t.Fatalf("content-type header missing:\n%s", src)
	}
	if !strings.Contains(src, `"name": "Ada"`) || !strings.Contains(src, `"age": 30`) {
		t.Fatalf("body values missing:\n%s", src)
	}
}

func TestRenderCurlNoBody(t *testing.T) {
	in := Input{Method: "GET", Path: "/users", BaseURL: "https://api.example.com"}
	samples := Generate(in, []string{"curl"})
	src := samples[0].Source
	if strings.Contains(src, "-d ") {
		t.Fatalf("GET without body must not carry a data flag:\n%s", src)
	}
}

func TestRenderPython(t *testing.T) {
	samples := Generate(createUserInput(), []string{"python"})
	src := samples[0].Source

	for _, want := range []string{
		"import requests",
		`url = "https://api.example.com/users"`,
		"payload = {",
		`"name": "Ada"`,
		`"age": 30`,
		"response = requests.post(url, headers=headers, json=payload)",
		"print(response.json())",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("python sample missing %q:\n%s", want, src)
		}
	}
}

func TestRenderPythonRepeatedQuery(t *testing.T) {
	in := Input{
		Method:     "GET",
		Path:       "/search",
		BaseURL:    "https://api.example.com",
		Parameters: []spec.Parameter{{Name: "tags", In: "query"}},
		Values:     map[string]any{"tags": []any{"a", "b"}},
	}
	src := Generate(in, []string{"python"})[0].Source
	if !strings.Contains(src, `"tags": ["a", "b"]`) {
		t.Fatalf("repeated query should fold into a list:\n%s", src)
	}
}

func TestRenderPythonLiterals(t *testing.T) {
	in := createUserInput()
	in.Values = map[string]any{"name": "Ada", "active": true, "nickname": nil}
	in.Body.Schema.Properties["active"] = &spec.Schema{Type: "boolean"}
	src := Generate(in, []string{"python"})[0].Source
	if !strings.Contains(src, `"active": True`) {
		t.Fatalf("python booleans must render capitalized:\n%s", src)
	}
}

func TestRenderJavaScript(t *testing.T) {
	samples := Generate(createUserInput(), []string{"javascript"})
	src := samples[0].Source

	for _, want := range []string{
		`const response = await fetch("https://api.example.com/users", {`,
		`method: "POST"`,
		`"Content-Type": "application/json"`,
		"body: JSON.stringify(",
		`"name": "Ada"`,
		"const data = await response.json();",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("javascript sample missing %q:\n%s", want, src)
		}
	}
}

func TestRenderAuthStyles(t *testing.T) {
	in := Input{Method: "GET", Path: "/me", BaseURL: "https://api.example.com"}

	in.Auth = &types.Auth{Kind: "bearer", Placeholder: "YOUR_API_KEY"}
	src := Generate(in, []string{"curl"})[0].Source
	if !strings.Contains(src, `-H "Authorization: Bearer YOUR_API_KEY"`) {
		t.Fatalf("bearer header missing:\n%s", src)
	}

	in.Auth = &types.Auth{Kind: "basic", Placeholder: "username:password"}
	src = Generate(in, []string{"curl"})[0].Source
	if !strings.Contains(src, `-u "username:password"`) {
		t.Fatalf("curl basic flag missing:\n%s", src)
	}
	src = Generate(in, []string{"python"})[0].Source
	if !strings.Contains(src, `auth=("username", "password")`) {
		t.Fatalf("requests basic auth missing:\n%s", src)
	}
	src = Generate(in, []string{"javascript"})[0].Source
	if !strings.Contains(src, `"Authorization": "Basic username:password"`) {
		t.Fatalf("fetch basic header missing:\n%s", src)
	}

	in.Auth = &types.Auth{Kind: "apiKey", Name: "X-Api-Key", In: "header", Placeholder: "YOUR_API_KEY"}
	src = Generate(in, []string{"curl"})[0].Source
	if !strings.Contains(src, `-H "X-Api-Key: YOUR_API_KEY"`) {
		t.Fatalf("api key header missing:\n%s", src)
	}
}

func TestDetectAuth(t *testing.T) {
	doc := &spec.Document{
		Components: spec.Components{
			SecuritySchemes: map[string]*spec.SecurityScheme{
				"ApiKeyAuth": {Type: "apiKey", Name: "X-Api-Key", In: "header"},
				"BearerAuth": {Type: "http", Scheme: "bearer"},
				"BasicAuth":  {Type: "http", Scheme: "basic"},
			},
		},
	}

	// Operation security wins over everything.
	op := &spec.Operation{Security: []spec.SecurityRequirement{{"BearerAuth": {}}}}
	auth := DetectAuth(doc, op)
	if auth == nil || auth.Kind != "bearer" || auth.Placeholder != "YOUR_API_KEY" {
		t.Fatalf("auth = %+v", auth)
	}

	// Document security next.
	doc.Security = []spec.SecurityRequirement{{"BasicAuth": {}}}
	auth = DetectAuth(doc, &spec.Operation{})
	if auth == nil || auth.Kind != "basic" || auth.Placeholder != "username:password" {
		t.Fatalf("auth = %+v", auth)
	}

	// Then the declared-scheme fallback.
	doc.Security = nil
	auth = DetectAuth(doc, &spec.Operation{})
	if auth == nil || auth.Kind != "apiKey" || auth.Name != "X-Api-Key" {
		t.Fatalf("auth = %+v", auth)
	}

	if got := DetectAuth(&spec.Document{}, &spec.Operation{}); got != nil {
		t.Fatalf("no schemes should yield nil, got %+v", got)
	}
}
