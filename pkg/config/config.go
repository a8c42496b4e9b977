// Package config provides configuration loading and management for freqfilter.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input is the path of the grayscale source image
	Input string `yaml:"input"`

	// Output parameters
	Output struct {
		// Dir is where filtered images and spectra are written.
		// An empty Dir disables writing.
		Dir string `yaml:"dir"`

		// SaveSpectra writes the min-max normalized log spectra
		SaveSpectra bool `yaml:"saveSpectra"`

		// SavePanel writes the 2x3 summary panel
		SavePanel bool `yaml:"savePanel"`
	} `yaml:"output"`

	// Filter parameters
	Filter struct {
		// Cutoff is the radius of the ideal filter in frequency pixels
		Cutoff float64 `yaml:"cutoff"`

		// Workers is the number of goroutines used to build masks (0 = all cores)
		Workers int `yaml:"workers"`
	} `yaml:"filter"`

	// Sweep parameters
	Sweep struct {
		// Enabled scores every cutoff in Cutoffs and charts the result
		Enabled bool `yaml:"enabled"`

		// Cutoffs lists the radii to score
		Cutoffs []float64 `yaml:"cutoffs"`
	} `yaml:"sweep"`

	// Logging parameters
	Logging struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// JSON switches the log formatter to JSON
		JSON bool `yaml:"json"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Input = "imagenes/input/edificio.png"

	cfg.Output.Dir = "imagenes/output"
	cfg.Output.SaveSpectra = true
	cfg.Output.SavePanel = true

	cfg.Filter.Cutoff = 40
	cfg.Filter.Workers = 0

	cfg.Sweep.Enabled = false
	cfg.Sweep.Cutoffs = []float64{5, 10, 20, 40, 80}

	cfg.Logging.Verbose = false
	cfg.Logging.JSON = false

	return cfg
}

// Validate checks the values that the pipeline cannot work around
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	if c.Filter.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Filter.Workers)
	}
	if c.Sweep.Enabled && len(c.Sweep.Cutoffs) == 0 {
		return errors.New("sweep enabled without cutoffs")
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
