package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pftrack-dev/pftrack/internal/category"
)

// Config represents the optional pftrack.yaml configuration. Unlike the
// summary file it is user-authored and is never auto-repaired: a
// malformed config is an error.
type Config struct {
	Currency   string           `yaml:"currency"`
	DataFile   string           `yaml:"data_file,omitempty"`
	Categories CategoriesConfig `yaml:"categories,omitempty"`
}

// CategoriesConfig overrides the built-in category registry.
type CategoriesConfig struct {
	Income   []string `yaml:"income,omitempty"`
	Expenses []string `yaml:"expenses,omitempty"`
}

// Load reads a pftrack.yaml file. A missing file yields the defaults.
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
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Currency: "USD"}
}

// Registry builds the category registry from the config, falling back
// to the built-in lists for any side left unset.
func (c *Config) Registry() category.Registry {
	builtin := category.Default()
	income := c.Categories.Income
	if len(income) == 0 {
		income = builtin.Names(category.KindIncome)
	}
	expenses := c.Categories.Expenses
	if len(expenses) == 0 {
		expenses = builtin.Names(category.KindExpense)
	}
	return category.New(income, expenses)
}
