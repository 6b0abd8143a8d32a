// Package config loads the project configuration from paxada.yml or
// paxada.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "PAXADA_LOG_LEVEL"

// Logging configures the CLI loggers.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Config holds project settings. Relative directories are resolved against
// the directory of the config file.
type Config struct {
	SourceDir      string  `yaml:"sourceDir"`
	EntitiesDir    string  `yaml:"entitiesDir"`
	RoutesDir      string  `yaml:"routesDir"`
	DefaultGeneric string  `yaml:"defaultGeneric"`
	Language       string  `yaml:"language"`
	HistoryFile    string  `yaml:"historyFile"`
	Concurrency    int     `yaml:"concurrency"`
	Logging        Logging `yaml:"logging"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		SourceDir:      "src",
		EntitiesDir:    filepath.Join("src", "entities"),
		RoutesDir:      filepath.Join("src", "routes"),
		DefaultGeneric: "ObjectId",
		Language:       "en",
		HistoryFile:    filepath.Join(".paxada", "history.json"),
		Concurrency:    4,
		Logging:        Logging{Level: "info", Format: "text"},
	}
}

var configNames = []string{"paxada.yml", "paxada.yaml", "paxada.toml"}

// ErrNotFound is returned by FindConfigFile when no config file exists.
var ErrNotFound = errors.New("config: no paxada config file found")

// FindConfigFile searches startDir and its parents for a config file.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", startDir, err)
	}
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads the config file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	raw := map[string]any{}
	if strings.HasSuffix(path, ".toml") {
		err = toml.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	cfg.resolve(filepath.Dir(path))
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the nearest config file above dir, or the defaults
// resolved against dir when there is none.
func LoadDefault(dir string) (*Config, error) {
	path, err := FindConfigFile(dir)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		cfg := Default()
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("config: resolve %s: %w", dir, err)
		}
		cfg.resolve(abs)
		cfg.applyEnv()
		return cfg, nil
	}
	return Load(path)
}

// decode maps raw onto cfg; keys absent from raw keep their current value.
// Unknown keys are an error so typos do not go unnoticed.
func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	return dec.Decode(raw)
}

func (c *Config) resolve(base string) {
	for _, p := range []*string{&c.SourceDir, &c.EntitiesDir, &c.RoutesDir, &c.HistoryFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *Config) applyEnv() {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Logging.Level = lvl
	}
}

// Root is the project directory: the config file's directory, or the parent
// of SourceDir for defaults.
func (c *Config) Root() string {
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	return filepath.Dir(c.SourceDir)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.DefaultGeneric == "" {
		return errors.New("defaultGeneric must not be empty")
	}
	return nil
}

// Rel returns path relative to the project root when possible.
func (c *Config) Rel(path string) string {
	rel, err := filepath.Rel(c.Root(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
