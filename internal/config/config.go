package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/milinsoft/bankapp/internal/money"
)

// Config represents the top-level bankapp.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Accounts AccountsConfig `yaml:"accounts"`
}

// DatabaseConfig selects the persistent store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "mysql"
	Path   string `yaml:"path,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`

	MaxOpenConns int `yaml:"max_open_conns,omitempty"`
	MaxIdleConns int `yaml:"max_idle_conns,omitempty"`
}

// ImportConfig controls how transaction files are parsed.
type ImportConfig struct {
	DateLayout string             `yaml:"date_layout"` // Go reference layout, e.g. "2006-01-02"
	Rounding   money.RoundingMode `yaml:"rounding"`
}

// AccountsConfig holds account-creation defaults.
type AccountsConfig struct {
	// DefaultCreditLimit is assigned to newly created credit accounts and
	// must be a negative decimal string, e.g. "-3000".
	DefaultCreditLimit string `yaml:"default_credit_limit"`

	creditLimit decimal.Decimal
}

// CreditLimit returns the parsed default credit limit. Only valid after
// the config passed through Load or Default.
func (a AccountsConfig) CreditLimit() decimal.Decimal {
	return a.creditLimit
}

// Load reads a bankapp.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults: a local sqlite file,
// ISO dates, half-up rounding and a -3000 credit limit.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "bankapp.db",
		},
		Import: ImportConfig{
			DateLayout: "2006-01-02",
			Rounding:   money.RoundHalfUp,
		},
		Accounts: AccountsConfig{
			DefaultCreditLimit: "-3000",
			creditLimit:        decimal.NewFromInt(-3000),
		},
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "", "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Import.DateLayout == "" {
		return fmt.Errorf("import.date_layout is required")
	}
	if c.Import.Rounding == "" {
		c.Import.Rounding = money.RoundHalfUp
	}
	if !c.Import.Rounding.Valid() {
		return fmt.Errorf("unknown import.rounding %q", c.Import.Rounding)
	}
	limit, err := decimal.NewFromString(c.Accounts.DefaultCreditLimit)
	if err != nil {
		return fmt.Errorf("parsing accounts.default_credit_limit: %w", err)
	}
	if !limit.IsNegative() {
		return fmt.Errorf("accounts.default_credit_limit must be negative, got %s", limit)
	}
	c.Accounts.creditLimit = limit
	return nil
}
