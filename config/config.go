package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/dca"
	"gopkg.in/yaml.v3"
)

// Config represents a complete backtest configuration
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy dca.Config     `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains the simulated account initialization parameters
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Cash     float64 `json:"cash" yaml:"cash"`
}

// DataConfig points at the bar dataset to replay
type DataConfig struct {
	BarsFile string `json:"bars_file" yaml:"bars_file"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type            string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	InvestmentsFile string `json:"investments_file,omitempty" yaml:"investments_file,omitempty"`
	ExitsFile       string `json:"exits_file,omitempty" yaml:"exits_file,omitempty"`
	EquityFile      string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath          string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Cash <= 0 {
		return fmt.Errorf("account.cash must be positive")
	}
	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if c.Data.BarsFile == "" {
		return fmt.Errorf("data.bars_file is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.InvestmentsFile == "" || c.Journal.ExitsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal investments_file, exits_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USDT",
			Cash:     10000,
		},
		Strategy: *dca.Defaults(),
		Data: DataConfig{
			BarsFile: "./bars.csv",
		},
		Journal: JournalConfig{
			Type:            "csv",
			InvestmentsFile: "./investments.csv",
			ExitsFile:       "./exits.csv",
			EquityFile:      "./equity.csv",
		},
	}
}
