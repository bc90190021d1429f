package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
}

// ServiceConfig describes the external pricing service and the transport
// policy used against it.
type ServiceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	BackoffMillis  int    `yaml:"backoff_millis"` // initial backoff, doubled per retry
}

// FetchConfig controls how a year is planned and normalized.
type FetchConfig struct {
	// Zone is the fixed civil time zone of the output timestamps.
	Zone string `yaml:"zone"`
	// Mode selects the planning strategy: "windowed" (8-day overlapping
	// windows) or "whole-year" (one UTC range). Never mixed.
	Mode string `yaml:"mode"`
	// FloorYear is the known data-availability floor of the service.
	// Older years are warned about but still attempted.
	FloorYear int `yaml:"floor_year"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:        "https://api.energyzero.nl",
			TimeoutSeconds: 30,
			MaxRetries:     3,
			BackoffMillis:  1000,
		},
		Fetch: FetchConfig{
			Zone:      "Europe/Amsterdam",
			Mode:      "windowed",
			FloorYear: 2015,
		},
		Output: OutputConfig{
			Dir: "./data",
		},
	}
}

// Load reads a YAML config file, fills in defaults for omitted fields and
// validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Service.BaseURL == "" {
		return errors.New("service.base_url is required")
	}
	if c.Service.TimeoutSeconds <= 0 {
		return errors.New("service.timeout_seconds must be > 0")
	}
	if c.Service.MaxRetries < 0 {
		return errors.New("service.max_retries must be >= 0")
	}
	if c.Fetch.Zone == "" {
		return errors.New("fetch.zone is required")
	}
	if _, err := time.LoadLocation(c.Fetch.Zone); err != nil {
		return fmt.Errorf("fetch.zone invalid: %w", err)
	}
	switch c.Fetch.Mode {
	case "windowed", "whole-year":
	default:
		return fmt.Errorf("fetch.mode must be %q or %q, got %q", "windowed", "whole-year", c.Fetch.Mode)
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Backoff returns the initial retry backoff as a duration.
func (s ServiceConfig) Backoff() time.Duration {
	return time.Duration(s.BackoffMillis) * time.Millisecond
}
