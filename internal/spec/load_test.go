package spec

import (
	"os"
	"path/filepath"
	"testing"
)

const petSpecJSON = `{
  "openapi": "3.0.0",
  "info": {"title": "Pets", "version": "1.2.0"},
  "servers": [{"url": "https://pets.example.com/v1"}],
  "paths": {
    "/pets/{petId}": {
      "parameters": [
        {"name": "petId", "in": "path", "required": true, "description": "pet identifier", "schema": {"type": "string", "example": "p_1"}}
      ],
      "get": {
        "operationId": "get_pet",
        "summary": "Fetch a pet",
        "parameters": [
          {"name": "verbose", "in": "query", "schema": {"type": "boolean"}}
        ]
      }
    },
    "/pets": {
      "post": {
        "operationId": "createPet",
        "summary": "Create a pet",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {"name": {"type": "string"}},
                "required": ["name"]
              }
            }
          }
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "ApiKeyAuth": {"type": "apiKey", "name": "X-Api-Key", "in": "header"}
    }
  }
}`

const petSpecYAML = `openapi: "3.0.0"
info:
  title: Pets
  version: "1.2.0"
paths:
  /pets:
    get:
      operationId: listPets
`

func writeTempSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load(writeTempSpec(t, "pets.json", petSpecJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Info.Title != "Pets" || doc.Info.Version != "1.2.0" {
		t.Fatalf("info = %+v", doc.Info)
	}
	if doc.BaseURL() != "https://pets.example.com/v1" {
		t.Fatalf("base url = %q", doc.BaseURL())
	}
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(writeTempSpec(t, "pets.yaml", petSpecYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Info.Title != "Pets" {
		t.Fatalf("info = %+v", doc.Info)
	}
	if doc.Paths["/pets"] == nil || doc.Paths["/pets"].Get == nil {
		t.Fatalf("paths not decoded: %+v", doc.Paths)
	}
}

func TestLoadYAMLContentWithJSONExtension(t *testing.T) {
	// Misleading extensions happen; JSON-first with a YAML fallback.
	doc, err := Load(writeTempSpec(t, "pets.json", petSpecYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Info.Title != "Pets" {
		t.Fatalf("info = %+v", doc.Info)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("want error for missing file")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte("{not json or yaml: [")); err == nil {
		t.Fatalf("want error for garbage input")
	}
}

func TestPathLevelParametersFold(t *testing.T) {
	doc, err := Decode([]byte(petSpecJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	op := doc.Operation("GET", "/pets/{petId}")
	if op == nil {
		t.Fatalf("operation missing")
	}
	// Path-level petId folded in front of the operation's own parameter.
	if len(op.Parameters) != 2 {
		t.Fatalf("parameters = %d, want 2", len(op.Parameters))
	}
	if op.Parameters[0].Name != "petId" || op.Parameters[1].Name != "verbose" {
		t.Fatalf("parameter order = %s, %s", op.Parameters[0].Name, op.Parameters[1].Name)
	}
	if doc.Paths["/pets/{petId}"].Parameters != nil {
		t.Fatalf("path-level parameters should be consumed by the fold")
	}
}

func TestBaseURLFallback(t *testing.T) {
	doc := &Document{}
	if got := doc.BaseURL(); got != "https://api.example.com" {
		t.Fatalf("base url = %q", got)
	}
}

func TestBodyContent(t *testing.T) {
	op := &Operation{RequestBody: &RequestBody{Content: map[string]*MediaType{
		"text/plain":       {Schema: &Schema{Type: "string"}},
		"application/json": {Schema: &Schema{Type: "object"}},
	}}}
	ct, mt := op.BodyContent()
	if ct != "application/json" || mt == nil || mt.Schema.Type != "object" {
		t.Fatalf("content = %q %+v", ct, mt)
	}

	op = &Operation{RequestBody: &RequestBody{Content: map[string]*MediaType{
		"text/plain":      {Schema: &Schema{Type: "string"}},
		"application/xml": {Schema: &Schema{Type: "object"}},
	}}}
	ct, _ = op.BodyContent()
	if ct != "application/xml" {
		t.Fatalf("lexically first content type, got %q", ct)
	}

	if ct, mt := (&Operation{}).BodyContent(); ct != "" || mt != nil {
		t.Fatalf("no body should yield empty content")
	}
}
