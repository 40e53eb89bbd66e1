package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/dca"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USDT", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.Cash)
	assert.Equal(t, 500.0, cfg.Strategy.BaseCash)
	assert.Equal(t, 14, cfg.Strategy.IntervalDays)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing currency",
			mutate:  func(c *Config) { c.Account.Currency = "" },
			wantErr: "account.currency is required",
		},
		{
			name:    "negative cash",
			mutate:  func(c *Config) { c.Account.Cash = -1000 },
			wantErr: "account.cash must be positive",
		},
		{
			name:    "bad strategy",
			mutate:  func(c *Config) { c.Strategy.SellRatio = 2 },
			wantErr: "strategy: sell_ratio",
		},
		{
			name:    "missing bars file",
			mutate:  func(c *Config) { c.Data.BarsFile = "" },
			wantErr: "data.bars_file is required",
		},
		{
			name:    "csv journal without paths",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "csv"} },
			wantErr: "investments_file, exits_file and equity_file required",
		},
		{
			name:    "sqlite journal without path",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} },
			wantErr: "db_path required",
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "parquet"} },
			wantErr: "journal.type must be",
		},
		{
			name:   "journal disabled",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "none"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := Default()
	cfg.Strategy.Symbol = "BTCUSDT"
	cfg.Strategy.Sizing = dca.SizeFractional
	cfg.Strategy.CooldownDays = 30
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", loaded.Strategy.Symbol)
	assert.Equal(t, dca.SizeFractional, loaded.Strategy.Sizing)
	assert.Equal(t, 30, loaded.Strategy.CooldownDays)
	assert.Equal(t, cfg.Account.Cash, loaded.Account.Cash)
}

func TestSaveAndLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Strategy.BaseCash, loaded.Strategy.BaseCash)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("garbage content", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":::not yaml or json"), 0644))
		_, err := LoadFromFile(path)
		assert.Error(t, err)
	})

	t.Run("valid yaml failing validation", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("account:\n  currency: USD\n  cash: -5\n"), 0644))
		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "invalid config")
	})
}
