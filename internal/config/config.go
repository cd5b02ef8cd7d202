// Package config loads the optional redirkit.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/selimozcann/RedirectToolkit/internal/httpclient"
	"github.com/selimozcann/RedirectToolkit/internal/probe"
)

// ErrInvalidConfig is returned when a loaded file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full file layout. Every field is optional.
type Config struct {
	ScratchDir string      `yaml:"scratch_dir,omitempty" validate:"omitempty,dir"`
	Probe      ProbeConfig `yaml:"probe"`
	Log        LogConfig   `yaml:"log"`
}

// ProbeConfig configures the liveness backends.
type ProbeConfig struct {
	Backend       string        `yaml:"backend" validate:"probebackend"`
	FFUFPath      string        `yaml:"ffuf_path" validate:"required"`
	Marker        string        `yaml:"marker" validate:"required"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	Threads       int           `yaml:"threads" validate:"min=1,max=1000"`
	RateLimit     int           `yaml:"rate_limit" validate:"min=0"`
	MaxChain      int           `yaml:"max_chain" validate:"min=1,max=50"`
	ClientSide    bool          `yaml:"client_side"`
	Insecure      bool          `yaml:"insecure"`
	AllowInternal bool          `yaml:"allow_internal"`
	UserAgent     string        `yaml:"user_agent"`
}

// LogConfig defines configuration for logging.
type LogConfig struct {
	Level      string `yaml:"level" validate:"loglevel"`
	Format     string `yaml:"format" validate:"logformat"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Probe: ProbeConfig{
			Backend:   probe.BackendFFUF,
			FFUFPath:  "ffuf",
			Marker:    probe.DefaultMarker,
			Timeout:   2 * time.Second,
			Threads:   20,
			MaxChain:  10,
			UserAgent: httpclient.DefaultUserAgent,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProbeOptions converts the probe section into backend options.
func (c *Config) ProbeOptions() probe.Options {
	p := c.Probe
	return probe.Options{
		FFUFPath:      p.FFUFPath,
		Marker:        p.Marker,
		Threads:       p.Threads,
		Timeout:       p.Timeout,
		RateLimit:     p.RateLimit,
		MaxChain:      p.MaxChain,
		ClientSide:    p.ClientSide,
		Insecure:      p.Insecure,
		AllowInternal: p.AllowInternal,
		UserAgent:     p.UserAgent,
	}
}
