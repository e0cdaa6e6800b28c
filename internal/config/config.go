// Package config loads the jsonmodel CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/format"
)

// FileNames are the config file names FindConfigFile looks for, in order.
var FileNames = []string{".jsonmodel.yaml", ".jsonmodel.yml", "jsonmodel.yaml", "jsonmodel.yml"}

// Config holds CLI defaults. Flags override every field.
type Config struct {
	// Format is the input format used when a file extension says nothing.
	Format   string       `yaml:"format"`
	Driver   string       `yaml:"driver"`
	Language string       `yaml:"language"`
	Date     DateConfig   `yaml:"date"`
	Limits   LimitsConfig `yaml:"limits"`
	Log      LogConfig    `yaml:"log"`
}

type DateConfig struct {
	// Layout is a Go time layout, or "rfc3339".
	Layout   string `yaml:"layout"`
	Location string `yaml:"location"`
}

type LimitsConfig struct {
	MaxBytes      int64  `yaml:"max_bytes"`
	MaxDepth      int    `yaml:"max_depth"`
	DuplicateKeys string `yaml:"duplicate_keys"` // ignore, warn or error
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Format:   "json",
		Driver:   "std",
		Language: "en",
		Date:     DateConfig{Layout: "rfc3339", Location: "UTC"},
		Limits:   LimitsConfig{DuplicateKeys: "ignore"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches dir and its parents for a config file. It returns
// "" when none exists.
func FindConfigFile(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	for {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := format.ByName(c.Format); err != nil {
		return err
	}
	if _, err := c.JSONDriver(); err != nil {
		return err
	}
	if _, err := c.ParseOpt(); err != nil {
		return err
	}
	if _, err := c.DateFormatter(); err != nil {
		return err
	}
	return nil
}

// JSONDriver resolves the configured JSON driver.
func (c *Config) JSONDriver() (jsonmodel.JSONDriver, error) {
	switch strings.ToLower(c.Driver) {
	case "", "std", "encoding/json":
		return jsonmodel.StdJSONDriver(), nil
	case "gojson", "go-json":
		return jsonmodel.GoJSONDriver(), nil
	}
	return nil, fmt.Errorf("unknown driver %q (want std or gojson)", c.Driver)
}

// ParseOpt builds the parse limits.
func (c *Config) ParseOpt() (jsonmodel.ParseOpt, error) {
	opt := jsonmodel.ParseOpt{MaxBytes: c.Limits.MaxBytes, MaxDepth: c.Limits.MaxDepth}
	switch strings.ToLower(c.Limits.DuplicateKeys) {
	case "", "ignore":
		opt.OnDuplicateKey = jsonmodel.Ignore
	case "warn":
		opt.OnDuplicateKey = jsonmodel.Warn
	case "error":
		opt.OnDuplicateKey = jsonmodel.Error
	default:
		return opt, fmt.Errorf("unknown duplicate_keys policy %q (want ignore, warn or error)", c.Limits.DuplicateKeys)
	}
	if opt.MaxBytes < 0 || opt.MaxDepth < 0 {
		return opt, fmt.Errorf("limits must not be negative")
	}
	return opt, nil
}

// DateFormatter builds the formatter for date values.
func (c *Config) DateFormatter() (jsonmodel.DateFormatter, error) {
	if c.Date.Layout == "" || strings.EqualFold(c.Date.Layout, "rfc3339") {
		return jsonmodel.RFC3339, nil
	}
	loc := time.UTC
	if c.Date.Location != "" {
		l, err := time.LoadLocation(c.Date.Location)
		if err != nil {
			return nil, fmt.Errorf("date location: %w", err)
		}
		loc = l
	}
	return jsonmodel.InLocation(c.Date.Layout, loc), nil
}
