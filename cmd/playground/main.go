package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourorg/playground/internal/config"
	"github.com/yourorg/playground/internal/filter"
	"github.com/yourorg/playground/internal/playground"
	"github.com/yourorg/playground/internal/render"
	"github.com/yourorg/playground/internal/server"
	"github.com/yourorg/playground/internal/spec"
	"github.com/yourorg/playground/internal/store"
	"github.com/yourorg/playground/pkg/types"
)

const defaultConfigContent = `samples:
  languages:
    - curl
    - python
    - javascript
  base_url: ""

output:
  dir: "./playground"

filter:
  ignore_paths: []
  ignore_methods: []

auth:
  mode: "manual"

server:
  host: "127.0.0.1"
  port: 4000

log:
  level: "info"
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "playground",
		Short: "OpenAPI playground generator",
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")

	root.AddCommand(newInitCmd())
	root.AddCommand(newGenerateCmd(&cfgPath))
	root.AddCommand(newImportCmd(&cfgPath))
	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newDeleteCmd())

	return root
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".playground"), nil
}

func openStore() (*store.SQLiteStore, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(filepath.Join(dir, "playground.db"))
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// buildConfigs loads a spec file and derives its filtered endpoint configs.
func buildConfigs(path string, cfg *config.Config, log *slog.Logger) (*spec.Document, []*types.EndpointConfig, error) {
	doc, err := spec.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load spec: %w", err)
	}
	b := playground.New(doc, playground.Options{
		Languages: cfg.Samples.Languages,
		BaseURL:   cfg.Samples.BaseURL,
		Logger:    log,
	})
	named := filter.Apply(doc.Endpoints(), cfg.Filter)
	configs := make([]*types.EndpointConfig, 0, len(named))
	for _, ne := range named {
		if c := b.Endpoint(ne.Key); c != nil {
			configs = append(configs, c)
		}
	}
	return doc, configs, nil
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize ~/.playground directory and default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := baseDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgFile := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
				if err := os.WriteFile(cfgFile, []byte(defaultConfigContent), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created", cfgFile)
			} else if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "exists", cfgFile)
			} else {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "database ready", filepath.Join(dir, "playground.db"))
			return nil
		},
	}
}

func newGenerateCmd(cfgPath *string) *cobra.Command {
	var specPath, outDir string
	cmd := &cobra.Command{Use: "generate", Short: "Generate playground config from an OpenAPI spec", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		if outDir != "" {
			cfg.Output.Dir = outDir
		}
		if err := cfg.ValidateGenerate(); err != nil {
			return err
		}
		log := newLogger(cfg.Log.Level)

		doc, configs, err := buildConfigs(specPath, cfg, log)
		if err != nil {
			return err
		}
		if err := render.WriteConfigs(configs, doc.Info.Title, cfg.Output.Dir); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d endpoints to %s\n", len(configs), cfg.Output.Dir)
		return nil
	}}
	cmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI spec file path")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides config)")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func newImportCmd(cfgPath *string) *cobra.Command {
	var specPath string
	cmd := &cobra.Command{Use: "import", Short: "Import an OpenAPI spec into the database", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg.Log.Level)

		raw, err := os.ReadFile(specPath)
		if err != nil {
			return err
		}
		doc, configs, err := buildConfigs(specPath, cfg, log)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.CreateSpec(doc.Info.Title, doc.Info.Version, specPath, raw)
		if err != nil {
			return err
		}
		if err := st.SaveEndpoints(rec.ID, configs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d endpoints)\n", rec.ID, len(configs))
		return nil
	}}
	cmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI spec file path")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func newServeCmd(cfgPath *string) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{Use: "serve", Short: "Start the playground preview server", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = host
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg.Log.Level)

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		srv, err := server.New(cfg, st, log)
		if err != nil {
			return err
		}
		log.Info("listening", "addr", cfg.Addr())
		return srv.ListenAndServe(cfg.Addr())
	}}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "server host")
	cmd.Flags().IntVar(&port, "port", 4000, "server port")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List imported specs", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		specs, err := st.ListSpecs()
		if err != nil {
			return err
		}
		for _, s := range specs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d endpoints\n", s.ID, s.Title, s.Version, s.EndpointCount)
		}
		return nil
	}}
}

func newShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{Use: "show", Short: "Show an imported spec", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		rec, _, err := st.GetSpec(id)
		if err != nil {
			return fmt.Errorf("spec not found: %s", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", rec.ID, rec.Title, rec.Version)
		configs, err := st.ListEndpoints(id)
		if err != nil {
			return err
		}
		for _, c := range configs {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s %s\n", c.Key, c.Method, c.Path)
		}
		return nil
	}}
	cmd.Flags().StringVar(&id, "id", "", "spec id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{Use: "delete", Short: "Delete an imported spec", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.DeleteSpec(id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
		return nil
	}}
	cmd.Flags().StringVar(&id, "id", "", "spec id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
