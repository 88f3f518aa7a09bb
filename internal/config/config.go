package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/grove/internal/output"
)

// Config holds the settings shared by every grove command.
type Config struct {
	// Git is the git executable. Empty means "git" from PATH.
	Git string `yaml:"git" toml:"git"`
	// Timeout bounds each git invocation. Zero means no limit.
	Timeout Duration `yaml:"timeout" toml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Color is one of auto, always, never.
	Color string `yaml:"color" toml:"color"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `yaml:"-" toml:"-"`
}

// Default returns the settings used when no file or variable overrides them.
func Default() Config {
	return Config{
		Timeout:  Duration(30 * time.Second),
		LogLevel: "warn",
		Color:    output.ColorAuto,
	}
}

// FileNames are the settings files Load looks for in Dir, in order.
var FileNames = []string{"config.yaml", "config.yml", "config.toml"}

// Load returns the defaults overlaid with the first settings file found in
// Dir and then with GROVE_* environment variables.
func Load() (Config, error) {
	cfg := Default()

	if dir := Dir(); dir != "" {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			err := cfg.mergeFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return Config{}, err
			}
			break
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFile returns the defaults overlaid with one settings file. The format
// follows the extension: .toml is TOML, anything else is YAML.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	c.Source = path
	return nil
}

// ApplyEnv overlays GROVE_GIT, GROVE_TIMEOUT, GROVE_LOG_LEVEL and
// GROVE_COLOR. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("GROVE_GIT"); ok && v != "" {
		c.Git = v
	}
	if v, ok := lookup("GROVE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GROVE_TIMEOUT: %w", err)
		}
		c.Timeout = Duration(d)
	}
	if v, ok := lookup("GROVE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("GROVE_COLOR"); ok && v != "" {
		c.Color = v
	}
	return nil
}

// Validate rejects values no command can use.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !output.ValidColorMode(c.Color) {
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level. Empty means warn.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", name)
	}
	return level, nil
}

// Duration is a time.Duration written as a Go duration string ("30s",
// "1m30s") in settings files.
type Duration time.Duration

// String returns the duration in Go syntax.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalText implements encoding.TextUnmarshaler, used by both the YAML
// and the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
