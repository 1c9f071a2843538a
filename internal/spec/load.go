package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Load reads an OpenAPI document from disk. YAML extensions parse as YAML;
// everything else parses as JSON first with a YAML fallback, mirroring how
// specs show up in the wild with misleading extensions.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		doc, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse yaml spec: %w", err)
		}
		return doc, nil
	}
	doc, jsonErr := decodeJSON(data)
	if jsonErr == nil {
		return doc, nil
	}
	if doc, err := decodeYAML(data); err == nil {
		return doc, nil
	}
	return nil, fmt.Errorf("parse spec: %w", jsonErr)
}

// Decode parses an OpenAPI document from memory, JSON first with a YAML
// fallback.
func Decode(data []byte) (*Document, error) {
	doc, jsonErr := decodeJSON(data)
	if jsonErr == nil {
		return doc, nil
	}
	if doc, err := decodeYAML(data); err == nil {
		return doc, nil
	}
	return nil, fmt.Errorf("parse spec: %w", jsonErr)
}

func decodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	finishLoad(&doc)
	return &doc, nil
}

func decodeYAML(data []byte) (*Document, error) {
	// Round-trip through JSON so one set of struct tags serves both formats.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	bridged, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return decodeJSON(bridged)
}

// finishLoad folds path-level parameters into each operation so downstream
// consumers see one flat parameter list.
func finishLoad(doc *Document) {
	for _, item := range doc.Paths {
		if item == nil || len(item.Parameters) == 0 {
			continue
		}
		for _, op := range item.Operations() {
			merged := make([]Parameter, 0, len(item.Parameters)+len(op.Parameters))
			merged = append(merged, item.Parameters...)
			merged = append(merged, op.Parameters...)
			op.Parameters = merged
		}
		item.Parameters = nil
	}
}
