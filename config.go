package dca

import (
	"fmt"
	"io"
)

// SizingMode selects how a cash amount is converted to a unit size.
type SizingMode string

const (
	// SizeWholeUnits truncates to whole units (stock-style sizing).
	SizeWholeUnits SizingMode = "whole"
	// SizeFractional rounds to 4 decimal places (crypto-style sizing).
	SizeFractional SizingMode = "fractional"
)

// Config fixes the engine's policy at construction; it is never changed
// mid-run.
type Config struct {
	Symbol string `json:"symbol" yaml:"symbol"`

	// BaseCash is the per-period investment amount before the deviation
	// multiplier is applied.
	BaseCash float64 `json:"base_cash" yaml:"base_cash"`

	// MAPeriod is the moving-average window in bars.
	MAPeriod int `json:"ma_period" yaml:"ma_period"`

	// IntervalDays is the minimum number of days between investments.
	IntervalDays int `json:"interval_days" yaml:"interval_days"`

	// TargetReturnPct triggers profit taking when the open position's
	// return reaches it.
	TargetReturnPct float64 `json:"target_return_pct" yaml:"target_return_pct"`

	// SellRatio is the fraction of the position sold on each exit;
	// 1.0 liquidates fully.
	SellRatio float64 `json:"sell_ratio" yaml:"sell_ratio"`

	// CooldownDays is the minimum number of days between exits.
	// 0 disables the cooldown.
	CooldownDays int `json:"cooldown_days" yaml:"cooldown_days"`

	Sizing SizingMode `json:"sizing" yaml:"sizing"`

	// TradeLog, when set, receives one line per executed investment and
	// exit. Nil disables trade logging.
	TradeLog io.Writer `json:"-" yaml:"-"`
}

// Defaults mirrors the classic 14-day / 120-bar / 50%-target configuration.
func Defaults() *Config {
	return &Config{
		Symbol:          "SOLUSDT",
		BaseCash:        500,
		MAPeriod:        120,
		IntervalDays:    14,
		TargetReturnPct: 50,
		SellRatio:       1.0,
		CooldownDays:    0,
		Sizing:          SizeWholeUnits,
	}
}

func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.BaseCash <= 0 {
		return fmt.Errorf("base_cash must be positive, got %v", c.BaseCash)
	}
	if c.MAPeriod <= 0 {
		return fmt.Errorf("ma_period must be positive, got %d", c.MAPeriod)
	}
	if c.IntervalDays <= 0 {
		return fmt.Errorf("interval_days must be positive, got %d", c.IntervalDays)
	}
	if c.TargetReturnPct <= 0 {
		return fmt.Errorf("target_return_pct must be positive, got %v", c.TargetReturnPct)
	}
	if c.SellRatio <= 0 || c.SellRatio > 1 {
		return fmt.Errorf("sell_ratio must be in (0, 1], got %v", c.SellRatio)
	}
	if c.CooldownDays < 0 {
		return fmt.Errorf("cooldown_days must not be negative, got %d", c.CooldownDays)
	}
	switch c.Sizing {
	case SizeWholeUnits, SizeFractional:
	default:
		return fmt.Errorf("sizing must be %q or %q, got %q", SizeWholeUnits, SizeFractional, c.Sizing)
	}
	return nil
}
