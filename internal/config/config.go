// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogOff disables logging entirely.
const LogOff = "off"

// Config holds all phonebook configuration.
type Config struct {
	Book  Book  `yaml:"book"`
	Shell Shell `yaml:"shell"`
	Log   Log   `yaml:"log"`
}

// Book holds address book storage settings.
type Book struct {
	Path string `yaml:"path"`
}

// Shell holds interactive shell settings.
type Shell struct {
	Prompt string `yaml:"prompt"`
	Banner bool   `yaml:"banner"` // Print the command list on start
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"` // "off" | "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty writes to stderr
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Path: "contacts.txt",
		},
		Shell: Shell{
			Prompt: "Enter command: ",
			Banner: true,
		},
		Log: Log{
			Level: LogOff,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.Path == "" {
		return errors.New("config: book.path cannot be empty")
	}
	switch c.Log.Level {
	case LogOff, "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of off, debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_FILE, PHONEBOOK_LOG_LEVEL, PHONEBOOK_LOG_FILE.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PHONEBOOK_FILE"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("PHONEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PHONEBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book  *rawBook  `yaml:"book"`
	Shell *rawShell `yaml:"shell"`
	Log   *rawLog   `yaml:"log"`
}

type rawBook struct {
	Path *string `yaml:"path"`
}

type rawShell struct {
	Prompt *string `yaml:"prompt"`
	Banner *bool   `yaml:"banner"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil && layer.Book.Path != nil {
		c.Book.Path = *layer.Book.Path
	}
	if layer.Shell != nil {
		if layer.Shell.Prompt != nil {
			c.Shell.Prompt = *layer.Shell.Prompt
		}
		if layer.Shell.Banner != nil {
			c.Shell.Banner = *layer.Shell.Banner
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
