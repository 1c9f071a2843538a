package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigRelPath = ".playground/config.yaml"

type SamplesConfig struct {
	Languages []string `yaml:"languages"`
	BaseURL   string   `yaml:"base_url"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type FilterConfig struct {
	IgnorePaths   []string `yaml:"ignore_paths"`
	IgnoreMethods []string `yaml:"ignore_methods"`
}

type AuthConfig struct {
	Mode string `yaml:"mode"` // manual or automatic
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Samples SamplesConfig `yaml:"samples"`
	Output  OutputConfig  `yaml:"output"`
	Filter  FilterConfig  `yaml:"filter"`
	Auth    AuthConfig    `yaml:"auth"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// Load loads YAML config, then applies env overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, defaultConfigRelPath)
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func (c *Config) SetDefaults() {
	if len(c.Samples.Languages) == 0 {
		c.Samples.Languages = []string{"curl", "python", "javascript"}
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./playground"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = "manual"
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir cannot be empty")
	}
	if c.Auth.Mode != "manual" && c.Auth.Mode != "automatic" {
		return fmt.Errorf("auth.mode must be manual or automatic, got %q", c.Auth.Mode)
	}
	return nil
}

// ValidateGenerate enforces generate-specific requirements.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ensureWritableDir(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir not writable: %w", err)
	}
	return nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func applyEnvOverrides(c *Config) {
	setString(&c.Samples.BaseURL, "PLAYGROUND_BASE_URL")
	setStrings(&c.Samples.Languages, "PLAYGROUND_LANGUAGES")
	setString(&c.Output.Dir, "PLAYGROUND_OUTPUT_DIR")
	setString(&c.Auth.Mode, "PLAYGROUND_AUTH_MODE")
	setString(&c.Server.Host, "PLAYGROUND_SERVER_HOST")
	setInt(&c.Server.Port, "PLAYGROUND_SERVER_PORT")
	setString(&c.Log.Level, "PLAYGROUND_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setStrings(dst *[]string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		out := parts[:0]
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
