// Package config loads the optional ppcp configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the optional ppcp configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults. A nil field leaves the
// built-in default alone.
type DefaultsConfig struct {
	BufferSize     *int    `toml:"buffer_size"`
	Window         *int    `toml:"window"`
	RenderInterval *string `toml:"render_interval"`
	QueueDepth     *int    `toml:"queue_depth"`
	TUI            *bool   `toml:"tui"`
	Preallocate    *bool   `toml:"preallocate"`
}

// ThemeConfig holds optional color overrides.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Blue   *string `toml:"blue"`
	Yellow *string `toml:"yellow"`
	Red    *string `toml:"red"`
	Teal   *string `toml:"teal"`
	Mauve  *string `toml:"mauve"`
	Muted  *string `toml:"muted"`
	Dim    *string `toml:"dim"`
	Bright *string `toml:"bright"`
}

// Validate reports every out-of-range value.
func (d DefaultsConfig) Validate() error {
	var errs []error
	positive := func(name string, v *int) {
		if v != nil && *v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, *v))
		}
	}
	positive("buffer_size", d.BufferSize)
	positive("window", d.Window)
	positive("queue_depth", d.QueueDepth)
	if d.RenderInterval != nil {
		if _, err := d.RenderIntervalDuration(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RenderIntervalDuration parses render_interval. It returns 0 when unset.
func (d DefaultsConfig) RenderIntervalDuration() (time.Duration, error) {
	if d.RenderInterval == nil {
		return 0, nil
	}
	v, err := time.ParseDuration(*d.RenderInterval)
	if err != nil {
		return 0, fmt.Errorf("render_interval: %w", err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("render_interval must be positive, got %s", v)
	}
	return v, nil
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ppcp", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config at path. A missing file yields a
// zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
