// Package config loads the settings of the bt driver.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ichiban/backtrack/engine"
)

// Config is the settings of a run of the driver.
type Config struct {
	// HeapLimit caps the number of heap cells of a query. 0 means unbounded.
	HeapLimit int `yaml:"heap_limit"`

	// TrailLimit caps the number of bindings on the trail. 0 means unbounded.
	TrailLimit int `yaml:"trail_limit"`

	// Timeout aborts a query that runs longer. 0 means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Unknown is what a call to an unknown procedure does: error, fail, or warning.
	Unknown string `yaml:"unknown"`

	Demo Demo `yaml:"demo"`
}

// Demo is the input of the demo command.
type Demo struct {
	List1 []string `yaml:"list1"`
	List2 []string `yaml:"list2"`
}

// Default returns the settings used when there's no config file.
func Default() Config {
	return Config{
		Timeout: 10 * time.Second,
		Unknown: "error",
		Demo: Demo{
			List1: []string{"cat", "dog", "frog"},
			List2: []string{"cat", "monkey", "frog"},
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

// Validate checks if the settings are consistent.
func (c *Config) Validate() error {
	if c.HeapLimit < 0 {
		return fmt.Errorf("heap_limit must not be negative: %d", c.HeapLimit)
	}
	if c.TrailLimit < 0 {
		return fmt.Errorf("trail_limit must not be negative: %d", c.TrailLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if _, err := c.UnknownAction(); err != nil {
		return err
	}
	return nil
}

// UnknownAction converts Unknown to the engine's value.
func (c *Config) UnknownAction() (engine.Unknown, error) {
	switch c.Unknown {
	case "", "error":
		return engine.UnknownError, nil
	case "fail":
		return engine.UnknownFail, nil
	case "warning":
		return engine.UnknownWarning, nil
	default:
		return 0, fmt.Errorf("unknown must be one of error, fail, or warning: %q", c.Unknown)
	}
}

// Options returns the VM options for the settings.
func (c *Config) Options() []engine.Option {
	u, _ := c.UnknownAction()
	return []engine.Option{
		engine.WithHeapLimit(c.HeapLimit),
		engine.WithTrailLimit(c.TrailLimit),
		engine.WithUnknown(u),
	}
}
