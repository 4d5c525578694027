// Package config loads the dafter.yaml business settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level dafter.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	DB       string         `yaml:"db,omitempty"`
	Addr     string         `yaml:"addr,omitempty"`
}

// BusinessConfig identifies the business entity and its standing figures.
type BusinessConfig struct {
	Name string `yaml:"name"`
	// Capital is the standing equity figure the balance sheet starts from.
	Capital string `yaml:"capital"`
	// DefaultBranch filters reports when no branch is given explicitly.
	DefaultBranch string `yaml:"default_branch,omitempty"`
}

// FiscalConfig defines the fiscal year boundary.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

var yearStartPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// Default returns the configuration used when no dafter.yaml exists.
func Default() *Config {
	return &Config{
		Business: BusinessConfig{Name: "dafter books", Capital: "0"},
		Fiscal:   FiscalConfig{YearStart: "01-01"},
		DB:       "dafter.db",
		Addr:     ":8787",
	}
}

// Load reads a dafter.yaml file from disk, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config fields that later code parses blindly.
func (c *Config) Validate() error {
	if _, err := c.CapitalAmount(); err != nil {
		return err
	}
	if c.Fiscal.YearStart != "" && !yearStartPattern.MatchString(c.Fiscal.YearStart) {
		return fmt.Errorf("fiscal year_start %q: want MM-DD", c.Fiscal.YearStart)
	}
	return nil
}

// CapitalAmount parses the standing capital figure.
func (c *Config) CapitalAmount() (decimal.Decimal, error) {
	if c.Business.Capital == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(c.Business.Capital)
	if err != nil {
		return decimal.Zero, fmt.Errorf("business capital %q: %w", c.Business.Capital, err)
	}
	return d, nil
}
