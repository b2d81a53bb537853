package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Database  DatabaseConfig  `yaml:"database"`
	Samples   SamplesConfig   `yaml:"samples"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type EmbeddingConfig struct {
	Provider      string  `yaml:"provider" validate:"oneof=auto ollama openai lexical"`
	Model         string  `yaml:"model"`
	BaseURL       string  `yaml:"base_url" validate:"omitempty,url"`
	APIKey        string  `yaml:"-"`
	RatePerSecond float64 `yaml:"rate_per_second" validate:"gte=0"`
	MaxRetries    uint64  `yaml:"max_retries" validate:"lte=10"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type SamplesConfig struct {
	Path    string `yaml:"path"`
	Context string `yaml:"context" validate:"required"`
	// Legacy reproduces the old category sampling when scoring candidates.
	Legacy bool `yaml:"legacy_sampling"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:      "auto",
			RatePerSecond: 5,
			MaxRetries:    3,
		},
		Database: DatabaseConfig{Path: filepath.Join(dir, "nameswipe.db")},
		Samples:  SamplesConfig{Context: "casual"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from a file, layered over Default. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override with environment variables if present
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.Embedding.APIKey = apiKey
	}
	if db := os.Getenv("NAMESWIPE_DB"); db != "" {
		cfg.Database.Path = db
	}
	cfg.Embedding.Provider = strings.ToLower(strings.TrimSpace(cfg.Embedding.Provider))
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Samples.Path = expandHome(cfg.Samples.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check (got %v)", fieldPath(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return err
	}
	if c.Embedding.Provider == "openai" && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.provider openai requires OPENAI_API_KEY")
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// fieldPath turns "Config.Embedding.BaseURL" into "embedding.baseurl".
func fieldPath(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	return strings.ToLower(ns)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
