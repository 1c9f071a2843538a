package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/yourorg/playground/pkg/types"
)

func sampleConfigs() []*types.EndpointConfig {
	return []*types.EndpointConfig{
		{
			Key:         "create-user",
			Title:       "Create a user",
			Description: "Adds a user to the directory.",
			Method:      "POST",
			Path:        "/users",
			Auth:        &types.Auth{Scheme: "BearerAuth", Kind: "bearer"},
			Fields: []types.Field{
				{Name: "name", Label: "Name", Kind: types.KindText, Required: true},
				{Name: "address", Label: "Address", Kind: types.KindObject, Fields: []types.Field{
					{Name: "address.city", Label: "City", Kind: types.KindText},
				}},
			},
			Samples: []types.Sample{{Lang: "curl", Label: "cURL", Source: "curl -X POST ..."}},
		},
		{
			Key:      "get-user",
			Title:    "get-user",
			Method:   "GET",
			Path:     "/users/{id}",
			URLField: &types.URLField{Name: "id"},
		},
	}
}

func TestWriteConfigs(t *testing.T) {
	dir := t.TempDir()
	if err := WriteConfigs(sampleConfigs(), "Directory API", dir); err != nil {
		t.Fatalf("write configs: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "endpoints.json"))
	if err != nil {
		t.Fatalf("read endpoints.json: %v", err)
	}
	var table map[string]*types.EndpointConfig
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("endpoints.json not valid json: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("table = %d entries", len(table))
	}
	if table["create-user"].Method != "POST" {
		t.Fatalf("entry = %+v", table["create-user"])
	}

	md, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("read index.md: %v", err)
	}
	text := string(md)
	for _, want := range []string{
		"# Directory API",
		"## POST /users",
		"**Create a user** (`create-user`)",
		"Adds a user to the directory.",
		"**Auth:** BearerAuth (bearer)",
		"- name (text, required)",
		"  - address.city (text, optional)",
		"```curl",
		"**URL parameter:** id",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("index.md missing %q:\n%s", want, text)
		}
	}
}

func TestWriteConfigsDefaultTitle(t *testing.T) {
	dir := t.TempDir()
	if err := WriteConfigs(nil, "", dir); err != nil {
		t.Fatalf("write configs: %v", err)
	}
	md, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("read index.md: %v", err)
	}
	if !strings.HasPrefix(string(md), "# API Playground") {
		t.Fatalf("index.md = %q", string(md))
	}
}
