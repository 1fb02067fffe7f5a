// Package harness drives the external build-and-emulate script over an
// instrumented sketch and captures its output.
package harness

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout        = 20 * time.Second
	defaultMaxOutputBytes = 1 << 20
)

// Config describes how the build/emulate script is invoked
type Config struct {
	// Script is the path of the build-and-run script; it receives the
	// instrumented sketch path as its only argument
	Script string `yaml:"script"`
	// WorkDir is the directory the script runs in
	WorkDir string `yaml:"workDir"`
	// RawOutputFile is where the script leaves the raw emulator output
	RawOutputFile string `yaml:"rawOutputFile"`
	// BuildLogFile, when present after a failure, is attached to the error
	BuildLogFile string `yaml:"buildLogFile"`
	// EnvFile is an optional .env file with toolchain variables
	EnvFile string `yaml:"envFile"`

	TimeoutSec     int   `yaml:"timeoutSec"`
	MaxOutputBytes int64 `yaml:"maxOutputBytes"`
}

// LoadConfig reads a YAML harness configuration
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read harness config %s: %w", path, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse harness config %s: %w", path, err)
	}
	return config.Init(), nil
}

// Init fills defaults and returns the config
func (c *Config) Init() *Config {
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = int(defaultTimeout / time.Second)
	}
	if c.MaxOutputBytes <= 0 {
		c.MaxOutputBytes = defaultMaxOutputBytes
	}
	return c
}

// Timeout returns the configured run deadline
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Validate checks the config is runnable
func (c *Config) Validate() error {
	if c.Script == "" {
		return fmt.Errorf("harness: script is required")
	}
	if c.RawOutputFile == "" {
		return fmt.Errorf("harness: rawOutputFile is required")
	}
	return nil
}
