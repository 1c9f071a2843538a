package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/yourorg/playground/pkg/types"
)

// WriteConfigs renders endpoints.json and index.md to outputDir.
func WriteConfigs(configs []*types.EndpointConfig, title, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(configs, outputDir); err != nil {
		return err
	}
	return writeIndex(configs, title, outputDir)
}

func writeJSON(configs []*types.EndpointConfig, outputDir string) error {
	table := make(map[string]*types.EndpointConfig, len(configs))
	for _, cfg := range configs {
		table[cfg.Key] = cfg
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "endpoints.json"), append(data, '\n'), 0o644)
}

func writeIndex(configs []*types.EndpointConfig, title, outputDir string) error {
	b := &strings.Builder{}
	if title == "" {
		title = "API Playground"
	}
	fmt.Fprintf(b, "# %s\n", title)
	for _, cfg := range configs {
		fmt.Fprintf(b, "\n## %s %s\n", cfg.Method, cfg.Path)
		if cfg.Title != "" && cfg.Title != cfg.Key {
			fmt.Fprintf(b, "**%s** (`%s`)\n\n", cfg.Title, cfg.Key)
		} else {
			fmt.Fprintf(b, "`%s`\n\n", cfg.Key)
		}
		if cfg.Description != "" {
			fmt.Fprintf(b, "%s\n\n", cfg.Description)
		}
		if cfg.URLField != nil {
			fmt.Fprintf(b, "**URL parameter:** %s\n\n", cfg.URLField.Name)
		}
		if cfg.Auth != nil {
			fmt.Fprintf(b, "**Auth:** %s (%s)\n\n", cfg.Auth.Scheme, cfg.Auth.Kind)
		}
		if len(cfg.Fields) > 0 {
			fmt.Fprintln(b, "### Fields")
			b.WriteString(renderFields(cfg.Fields, ""))
			b.WriteString("\n")
		}
		if len(cfg.Samples) > 0 {
			fmt.Fprintln(b, "### Samples")
			for _, s := range cfg.Samples {
				fmt.Fprintf(b, "\n```%s\n%s\n```\n", s.Lang, strings.TrimRight(s.Source, "\n"))
			}
		}
	}
	return os.WriteFile(filepath.Join(outputDir, "index.md"), []byte(b.String()), 0o644)
}

func renderFields(fields []types.Field, indent string) string {
	b := &strings.Builder{}
	for _, f := range fields {
		req := "optional"
		if f.Required {
			req = "required"
		}
		fmt.Fprintf(b, "%s- %s (%s, %s)", indent, f.Name, f.Kind, req)
		if f.Description != "" {
			fmt.Fprintf(b, ": %s", f.Description)
		}
		b.WriteString("\n")
		if len(f.Fields) > 0 {
			b.WriteString(renderFields(f.Fields, indent+"  "))
		}
		if f.Discriminator != nil {
			fmt.Fprintf(b, "%s  - variants by %s:\n", indent, f.Discriminator.Name)
			for _, opt := range f.Discriminator.Options {
				fmt.Fprintf(b, "%s    - %s\n", indent, opt.Value)
				b.WriteString(renderFields(f.Discriminator.Variants[opt.Value], indent+"      "))
			}
		}
	}
	return b.String()
}
