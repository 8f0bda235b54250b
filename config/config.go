// Package config holds the settings of a tinyL compilation run.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/tinyl/core"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the name of the file the compiler writes when no other
// name is configured.
const DefaultOutput = "tinyL.out"

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config is the configuration of one compiler run.
type Config struct {
	Output   string  `yaml:"output"`
	Format   string  `yaml:"format"`
	LogLevel string  `yaml:"log_level"`
	Listing  bool    `yaml:"listing"`
	Run      bool    `yaml:"run"`
	Inputs   []int32 `yaml:"inputs"`
	FreqGHz  float64 `yaml:"freq_ghz"`
	Monitor  bool    `yaml:"monitor"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output:   DefaultOutput,
		Format:   FormatText,
		LogLevel: "warn",
		FreqGHz:  1,
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that have a fixed domain.
func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output file name must not be empty")
	}

	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.FreqGHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %v GHz", c.FreqGHz)
	}

	return nil
}

// Level returns the slog level of the configuration.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}

	return level
}

// ParseLevel accepts "trace" in addition to the slog level names.
func ParseLevel(name string) (slog.Level, error) {
	if strings.EqualFold(name, "trace") {
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}

	return level, nil
}
