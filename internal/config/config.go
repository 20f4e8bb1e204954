// Package config holds the immutable startup configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "netchoo"
	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "config.yaml"

	// DefaultWindow is the default chart history window.
	DefaultWindow = 300 * time.Second
	// DefaultSampleInterval is the default time between counter reads.
	DefaultSampleInterval = time.Second
)

// Validation errors reported at startup.
var (
	ErrInvalidWindow   = errors.New("time window must be positive")
	ErrInvalidInterval = errors.New("sample interval must be positive")
)

// Config is the process-wide configuration. It is populated once at
// startup from the optional config file and command-line flags, and is
// passed by value into components; nothing mutates it afterwards.
type Config struct {
	// WindowDuration is how much rate history each chart retains.
	WindowDuration time.Duration
	// SampleInterval is the period of the counter sampling tick.
	SampleInterval time.Duration
	// ReverseBridgeColors swaps the rx/tx chart colors on docker
	// bridge interfaces so traffic is shown from the container's
	// perspective.
	ReverseBridgeColors bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WindowDuration: DefaultWindow,
		SampleInterval: DefaultSampleInterval,
	}
}

// Validate rejects configurations the sampling loop cannot run with.
func (c Config) Validate() error {
	if c.WindowDuration <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidWindow, c.WindowDuration)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidInterval, c.SampleInterval)
	}
	return nil
}

// fileConfig is the on-disk YAML shape. Zero values mean "not set" so
// absent keys fall back to defaults; the bool uses a pointer for the
// same reason.
type fileConfig struct {
	WindowSeconds       int   `yaml:"window_seconds"`
	SampleIntervalMS    int   `yaml:"sample_interval_ms"`
	ReverseBridgeColors *bool `yaml:"reverse_bridge_colors"`
}

// Path returns the config file location following the XDG Base
// Directory spec.
func Path() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, AppName, ConfigFileName), nil
}

// Load reads the configuration file at path. A missing file is not an
// error: the defaults are returned. A file that exists but cannot be
// parsed is an error, so a typo does not silently revert to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if fc.WindowSeconds != 0 {
		cfg.WindowDuration = time.Duration(fc.WindowSeconds) * time.Second
	}
	if fc.SampleIntervalMS != 0 {
		cfg.SampleInterval = time.Duration(fc.SampleIntervalMS) * time.Millisecond
	}
	if fc.ReverseBridgeColors != nil {
		cfg.ReverseBridgeColors = *fc.ReverseBridgeColors
	}
	return cfg, nil
}
