// Package config holds the process-wide engine configuration.
//
// The engine never reads ambient globals: thresholds, bounds and worker
// settings are loaded once here and injected into the importer, so tests
// can run with deterministic fixtures.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Engine holds the tunables of the import engine.
type Engine struct {
	// ExpenseThreshold is the minimum expense score for a match.
	ExpenseThreshold int `yaml:"expense_threshold" env:"TXMAIL_EXPENSE_THRESHOLD" env-default:"5"`
	// CreditThreshold is the minimum refund/cashback score for a match.
	// Credit events are rarer and easier to confuse with marketing, so
	// the bar is higher than for expenses.
	CreditThreshold int `yaml:"credit_threshold" env:"TXMAIL_CREDIT_THRESHOLD" env-default:"7"`
	// AnchorWindow is the character distance, either direction, within
	// which a currency amount is considered adjacent to an anchor phrase.
	AnchorWindow int `yaml:"anchor_window" env:"TXMAIL_ANCHOR_WINDOW" env-default:"300"`
	// MinAmount and MaxAmount bound accepted transaction values, inclusive.
	MinAmount float64 `yaml:"min_amount" env:"TXMAIL_MIN_AMOUNT" env-default:"1"`
	MaxAmount float64 `yaml:"max_amount" env:"TXMAIL_MAX_AMOUNT" env-default:"1000000"`
	// Workers bounds concurrent per-message processing. The store insert
	// is idempotent, so concurrent imports of the same logical transaction
	// race harmlessly.
	Workers int `yaml:"workers" env:"TXMAIL_WORKERS" env-default:"1"`
	// QueryPageSize caps the number of ids returned per search query.
	QueryPageSize int64 `yaml:"query_page_size" env:"TXMAIL_QUERY_PAGE_SIZE" env-default:"50"`
}

// Config is the root txmail configuration.
type Config struct {
	Engine Engine `yaml:"engine"`
	// Merchants adds deployment-specific entries to the known-merchant
	// table, keyed by lower-cased, space-stripped name.
	Merchants map[string]string `yaml:"merchants"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from TXMAIL_CONFIG
// (fallback "./txmail.yaml"); a missing default file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("TXMAIL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "./txmail.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// environment. Used by tests and as the base for flag overrides.
func Default() *Config {
	return &Config{
		Engine: Engine{
			ExpenseThreshold: 5,
			CreditThreshold:  7,
			AnchorWindow:     300,
			MinAmount:        1,
			MaxAmount:        1_000_000,
			Workers:          1,
			QueryPageSize:    50,
		},
	}
}

// Validate checks invariants the engine relies on.
func (c *Config) Validate() error {
	if c.Engine.ExpenseThreshold <= 0 || c.Engine.CreditThreshold <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	if c.Engine.AnchorWindow <= 0 {
		return fmt.Errorf("anchor window must be positive")
	}
	if c.Engine.MinAmount < 0 || c.Engine.MaxAmount <= c.Engine.MinAmount {
		return fmt.Errorf("amount bounds invalid: [%v, %v]", c.Engine.MinAmount, c.Engine.MaxAmount)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Engine.QueryPageSize < 1 {
		return fmt.Errorf("query page size must be at least 1")
	}
	return nil
}
