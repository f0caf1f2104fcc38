package cavia

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config configures a Runtime. It is loaded once per process and passed
// explicitly to NewRuntime.
type Config struct {
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// LoggingConfig configures the built-in logger providers.
type LoggingConfig struct {
	// Level is one of off, fatal, error, warn, info, debug, trace, all.
	Level string `yaml:"level" toml:"level"`

	// Format is json (default) or console.
	Format string `yaml:"format" toml:"format"`

	// Environment "production" forces the json encoder whatever the format.
	Environment string `yaml:"environment" toml:"environment"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  LevelAll.String(),
			Format: "json",
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Logging.Level != "" {
		if _, err := ParseLoggerLevel(c.Logging.Level); err != nil {
			return ErrInvalidConfig("logging.level", err.Error())
		}
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return ErrInvalidConfig("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}

	return nil
}

// LoadConfig reads a YAML or TOML configuration file, chosen by extension.
// Environment variables in the format ${VAR_NAME} are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}

	return LoadConfigFromReader(file, format)
}

// LoadConfigFromReader parses configuration in the given format ("yaml" or
// "toml"). Unset fields keep their DefaultConfig values.
func LoadConfigFromReader(r io.Reader, format string) (Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(content))
	cfg := DefaultConfig()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return Config{}, ErrInvalidConfig("format", fmt.Sprintf("unsupported config format %q", format))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
