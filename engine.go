package dca

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/dca/broker"
	"github.com/rustyeddy/dca/indicators"
	"github.com/rustyeddy/dca/journal"
	"github.com/rustyeddy/dca/market"
)

// Engine is the periodic, deviation-adjusted capital-deployment engine.
//
// Per bar it runs, in strict order: moving-average update, profit-taking
// evaluation, then the investment cadence check. The exit-before-entry order
// matters: a full liquidation and a due investment on the same bar means the
// new investment starts a fresh position.
//
// The engine owns its ledger and event histories exclusively for the run;
// it is not safe for concurrent use and does not need to be.
type Engine struct {
	cfg *Config

	broker  broker.Broker
	journal journal.Journal // optional
	ma      *indicators.SimpleMA

	ledger      Ledger
	investments []InvestmentEvent
	exits       []ExitEvent

	lastBarTime time.Time
}

// NewEngine validates cfg and builds an engine with an empty position.
// The journal may be nil.
func NewEngine(cfg *Config, b broker.Broker, j journal.Journal) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("dca: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dca: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("dca: broker is required")
	}

	return &Engine{
		cfg:     cfg,
		broker:  b,
		journal: j,
		ma:      indicators.NewMA(cfg.MAPeriod),
	}, nil
}

// ProcessBar consumes the next chronological bar and makes this bar's
// decisions. Bars must be valid and strictly increasing in time; anything
// else is rejected before any state changes.
func (e *Engine) ProcessBar(ctx context.Context, bar market.Bar) error {
	if err := bar.Validate(); err != nil {
		return fmt.Errorf("dca: %w", err)
	}
	if !e.lastBarTime.IsZero() && !bar.Time.After(e.lastBarTime) {
		return fmt.Errorf("dca: bar %s is not after previous bar %s",
			bar.Time.Format("2006-01-02"), e.lastBarTime.Format("2006-01-02"))
	}
	e.lastBarTime = bar.Time

	e.ma.Update(bar)

	if err := e.checkProfitTaking(ctx, bar); err != nil {
		return err
	}

	if e.investmentDue(bar.Time) {
		if err := e.executeInvestment(ctx, bar); err != nil {
			return err
		}
	}
	return nil
}

// investmentDue gates the periodic investment attempt. The first ever
// attempt is always due; afterwards an attempt is due once IntervalDays full
// days have elapsed since the last completed purchase.
func (e *Engine) investmentDue(t time.Time) bool {
	if e.ledger.LastInvestment.IsZero() {
		return true
	}
	return daysBetween(e.ledger.LastInvestment, t) >= e.cfg.IntervalDays
}

// executeInvestment runs one investment attempt at the bar close.
//
// The skip branches are ordinary policy outcomes, not errors: a cold moving
// average, a zero multiplier, zero free cash, and a size that rounds to
// nothing all leave the cadence date untouched so the attempt repeats on the
// next bar.
func (e *Engine) executeInvestment(ctx context.Context, bar market.Bar) error {
	if !e.ma.Ready() {
		return nil
	}

	maValue := e.ma.Value()
	deviation := Deviation(bar.Close, maValue)
	multiplier := MultiplierFor(deviation)
	if multiplier == 0 {
		return nil
	}

	cash, err := e.broker.GetCash(ctx)
	if err != nil {
		return fmt.Errorf("dca: get cash: %w", err)
	}

	amount := math.Min(e.cfg.BaseCash*multiplier, cash)
	if amount <= 0 {
		return nil
	}

	size := e.sizeFor(amount, bar.Close)
	if size <= 0 {
		return nil
	}

	fill, err := e.broker.SubmitBuy(ctx, broker.OrderRequest{
		Symbol: e.cfg.Symbol,
		Units:  size,
		Price:  bar.Close,
		Time:   bar.Time,
	})
	if err != nil {
		return fmt.Errorf("dca: buy: %w", err)
	}

	// Recompute the deployed amount from the rounded size so the ledger
	// absorbs the rounding remainder instead of inventing cost basis.
	actual := size * bar.Close

	e.ledger.ApplyInvestment(bar.Time, actual, size)

	ev := InvestmentEvent{
		Time:         bar.Time,
		Price:        bar.Close,
		MAValue:      maValue,
		DeviationPct: deviation,
		Multiplier:   multiplier,
		Amount:       actual,
		Shares:       size,
	}
	e.investments = append(e.investments, ev)

	if e.journal != nil {
		if err := e.journal.RecordInvestment(journal.InvestmentRecord{
			EventID:      fill.OrderID,
			Symbol:       e.cfg.Symbol,
			Time:         ev.Time,
			Price:        ev.Price,
			MAValue:      ev.MAValue,
			DeviationPct: ev.DeviationPct,
			Multiplier:   ev.Multiplier,
			Amount:       ev.Amount,
			Shares:       ev.Shares,
		}); err != nil {
			return fmt.Errorf("dca: journal investment: %w", err)
		}
	}

	e.logf("%s investment #%d: price $%.2f, deviation %.1f%%, multiplier %.1f, amount $%.2f, shares %v\n",
		bar.Time.Format("2006-01-02"), len(e.investments),
		bar.Close, deviation, multiplier, actual, size)

	return nil
}

// checkProfitTaking evaluates the exit trigger for the open position.
// The cooldown strictly blocks a retrigger even while the return still
// exceeds the target.
func (e *Engine) checkProfitTaking(ctx context.Context, bar market.Bar) error {
	if !e.ledger.HasPosition() || e.ledger.TotalCostBasis <= 0 {
		return nil
	}
	if e.cfg.CooldownDays > 0 && !e.ledger.LastExit.IsZero() &&
		daysBetween(e.ledger.LastExit, bar.Time) < e.cfg.CooldownDays {
		return nil
	}

	value := e.ledger.TotalShares * bar.Close
	returnPct := (value - e.ledger.TotalCostBasis) / e.ledger.TotalCostBasis * 100
	if returnPct < e.cfg.TargetReturnPct {
		return nil
	}

	sellShares := round4(e.ledger.TotalShares * e.cfg.SellRatio)
	if sellShares <= 0 {
		return nil
	}
	if sellShares > e.ledger.TotalShares {
		sellShares = e.ledger.TotalShares
	}

	fill, err := e.broker.SubmitSell(ctx, broker.OrderRequest{
		Symbol: e.cfg.Symbol,
		Units:  sellShares,
		Price:  bar.Close,
		Time:   bar.Time,
	})
	if err != nil {
		return fmt.Errorf("dca: sell: %w", err)
	}

	proceeds := sellShares * bar.Close
	// Average-cost allocation: the sold fraction carries the same fraction
	// of the accumulated cost basis.
	costOfSold := (sellShares / e.ledger.TotalShares) * e.ledger.TotalCostBasis
	profit := proceeds - costOfSold

	e.ledger.ApplyExit(bar.Time, sellShares, proceeds, costOfSold)

	ev := ExitEvent{
		Time:           bar.Time,
		Price:          bar.Close,
		ReturnPct:      returnPct,
		SharesSold:     sellShares,
		Proceeds:       proceeds,
		CostOfSold:     costOfSold,
		RealizedProfit: profit,
	}
	e.exits = append(e.exits, ev)

	if e.journal != nil {
		if err := e.journal.RecordExit(journal.ExitRecord{
			EventID:        fill.OrderID,
			Symbol:         e.cfg.Symbol,
			Time:           ev.Time,
			Price:          ev.Price,
			ReturnPct:      ev.ReturnPct,
			SharesSold:     ev.SharesSold,
			Proceeds:       ev.Proceeds,
			CostOfSold:     ev.CostOfSold,
			RealizedProfit: ev.RealizedProfit,
		}); err != nil {
			return fmt.Errorf("dca: journal exit: %w", err)
		}
	}

	e.logf("%s profit taking: return %.1f%%, price $%.2f, sold %v shares, proceeds $%.2f\n",
		bar.Time.Format("2006-01-02"), returnPct, bar.Close, sellShares, proceeds)

	return nil
}

func (e *Engine) sizeFor(amount, price float64) float64 {
	raw := amount / price
	if e.cfg.Sizing == SizeWholeUnits {
		return math.Trunc(raw)
	}
	size := round4(raw)
	// Rounding to 4 decimals can round up, pushing the cost past the cash
	// the amount was just clipped to. Fall back to rounding down so the
	// submitted order never exceeds free cash.
	if size*price > amount {
		size = math.Trunc(raw*10000) / 10000
	}
	return size
}

func (e *Engine) logf(format string, args ...any) {
	if e.cfg.TradeLog != nil {
		fmt.Fprintf(e.cfg.TradeLog, format, args...)
	}
}

// Position returns a copy of the current ledger state.
func (e *Engine) Position() Ledger {
	return e.ledger
}

// InvestmentHistory returns the executed investments in order.
func (e *Engine) InvestmentHistory() []InvestmentEvent {
	out := make([]InvestmentEvent, len(e.investments))
	copy(out, e.investments)
	return out
}

// ExitHistory returns the executed exits in order.
func (e *Engine) ExitHistory() []ExitEvent {
	out := make([]ExitEvent, len(e.exits))
	copy(out, e.exits)
	return out
}

func (e *Engine) InvestmentCount() int {
	return len(e.investments)
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// daysBetween counts whole calendar days (UTC) from one bar time to another.
func daysBetween(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)) / (24 * time.Hour))
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
