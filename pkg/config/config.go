// Package config loads the controller's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/hal"
)

// DefaultPath is where the CLI looks when no --config is given
const DefaultPath = "crossing.toml"

// Config represents the complete configuration for an intersection
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// GPIO names the lines used by `crossing run`
	GPIO hal.PinMap `toml:"gpio"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		GPIO:      hal.DefaultPinMap(),
	}
}

// Load reads path on top of the defaults. A missing file is not an error
// when path is DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.Decode(string(data)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML into c and validates the result. Keys the file does
// not set keep their current values.
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return crossing.NewConfigurationError("config", "unknown keys: "+strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks that all fields hold known values
func (c *Config) Validate() error {
	var problems []string

	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format: %s", c.LogFormat))
	}
	if err := c.GPIO.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			problems = append(problems, "gpio."+line)
		}
	}

	if len(problems) > 0 {
		return crossing.NewConfigurationError("config", strings.Join(problems, ", "))
	}
	return nil
}

// ParseLevel converts a level name to its slog value
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError, nil
	case "warn":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// NewLogger builds the logger described by the log settings
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
