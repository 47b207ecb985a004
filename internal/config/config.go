// Package config loads the kenlm CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "KENLM_CONFIG"

// Config mirrors ~/.config/kenlm/config.yaml. Pointer fields distinguish
// "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Mmap controls whether validated models are mapped or read into memory.
	Mmap *bool `yaml:"mmap"`

	// Output selects "text" or "json" reports.
	Output string `yaml:"output"`
}

// Path returns the config file location, or "" when none can be derived.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kenlm", "config.yaml")
}

// Load reads the config at Path(). A missing file yields a zero Config.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields a zero Config;
// a malformed one is an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json", "pretty":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	switch strings.ToLower(c.Output) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	return nil
}

// UseMmap reports whether models should be mapped. Defaults to true.
func (c Config) UseMmap() bool {
	return c.Mmap == nil || *c.Mmap
}
