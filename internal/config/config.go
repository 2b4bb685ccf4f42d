// Package config loads calcx configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/comalice/calcx/internal/telemetry"
)

// Config is the top-level calcx configuration.
type Config struct {
	Logging telemetry.LoggingConfig `yaml:"logging"`
	Metrics telemetry.MetricsConfig `yaml:"metrics"`
	Keymap  KeymapConfig            `yaml:"keymap"`
	Display DisplayConfig           `yaml:"display"`
}

// KeymapConfig adds or replaces key bindings. Values are action tokens
// ("equals", "digit:7", "operator:+").
type KeymapConfig struct {
	Bindings map[string]string `yaml:"bindings" validate:"omitempty,dive,keys,required,endkeys,required"`
}

// DisplayConfig controls how the CLI renders snapshots.
type DisplayConfig struct {
	// Trace prints a snapshot after every key instead of once per input.
	Trace bool `yaml:"trace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: telemetry.LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: telemetry.MetricsConfig{
			Namespace: "calcx",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml decode: %w", err)
	}
	return Validate(*cfg)
}

// Validate checks struct constraints.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
