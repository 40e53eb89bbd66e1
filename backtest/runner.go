package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/dca"
	"github.com/rustyeddy/dca/sim"
)

// Runner drives the decision engine over a bar feed against the simulated
// broker. The loop is strictly sequential: one bar's decisions complete
// before the next bar is read.
type Runner struct {
	Symbol   string
	Strategy *dca.Engine
	Broker   *sim.Engine
	Feed     BarFeed
}

// Run executes the backtest loop:
//  1. read next bar
//  2. mark the broker's valuation price at the bar close
//  3. strategy.ProcessBar
//
// The summary combines the engine's event-derived report with the broker's
// final cash and equity.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Strategy == nil {
		return Result{}, fmt.Errorf("backtest: Strategy is required")
	}
	if r.Broker == nil {
		return Result{}, fmt.Errorf("backtest: Broker is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	defer r.Feed.Close()

	initial := r.Broker.Equity()

	var start, end time.Time
	bars := 0

	for {
		b, ok, err := r.Feed.Next()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}

		if start.IsZero() {
			start = b.Time
		}
		end = b.Time
		bars++

		r.Broker.MarkPrice(r.Symbol, b.Close)

		if err := r.Strategy.ProcessBar(ctx, b); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Symbol:      r.Symbol,
		Start:       start,
		End:         end,
		Bars:        bars,
		InitialCash: initial,
		FinalCash:   r.Broker.Cash(),
		FinalEquity: r.Broker.Equity(),
		Report:      r.Strategy.Summarize(),
	}
	if initial > 0 {
		res.ReturnPct = (res.FinalEquity/initial - 1) * 100
	}
	return res, nil
}
