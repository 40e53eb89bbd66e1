package backtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/dca"
	"github.com/rustyeddy/dca/market"
	"github.com/rustyeddy/dca/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBars(closes ...float64) *market.BarSet {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bs := &market.BarSet{Symbol: "TEST"}
	for i, c := range closes {
		bs.Bars = append(bs.Bars, market.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		})
	}
	return bs
}

func TestRunnerFullCycle(t *testing.T) {
	// Day 1 buys 10 units at 100 (-20% deviation, requested 1100 clipped
	// to 1000); day 2 hits the 50% target at 160 and liquidates.
	cfg := dca.Defaults()
	cfg.Symbol = "TEST"
	cfg.MAPeriod = 2
	cfg.BaseCash = 500

	b := sim.NewEngine(1000, nil)
	strat, err := dca.NewEngine(cfg, b, nil)
	require.NoError(t, err)

	r := &Runner{
		Symbol:   "TEST",
		Strategy: strat,
		Broker:   b,
		Feed:     NewSetFeed(testBars(150, 100, 160)),
	}

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Bars)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), res.Start)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), res.End)

	assert.Equal(t, 1, res.Report.Investments)
	assert.Equal(t, 1, res.Report.Exits)
	assert.InDelta(t, 1000.0, res.Report.TotalDeployed, 1e-9)
	assert.InDelta(t, 600.0, res.Report.RealizedProfit, 1e-9)

	assert.InDelta(t, 1000.0, res.InitialCash, 1e-9)
	assert.InDelta(t, 1600.0, res.FinalCash, 1e-9)
	assert.InDelta(t, 1600.0, res.FinalEquity, 1e-9)
	assert.InDelta(t, 60.0, res.ReturnPct, 1e-9)
}

func TestRunnerRequiresCollaborators(t *testing.T) {
	b := sim.NewEngine(1000, nil)
	strat, err := dca.NewEngine(dca.Defaults(), b, nil)
	require.NoError(t, err)

	_, err = (&Runner{Broker: b, Feed: NewSetFeed(testBars(100))}).Run(context.Background())
	assert.ErrorContains(t, err, "Strategy is required")

	_, err = (&Runner{Strategy: strat, Feed: NewSetFeed(testBars(100))}).Run(context.Background())
	assert.ErrorContains(t, err, "Broker is required")

	_, err = (&Runner{Strategy: strat, Broker: b}).Run(context.Background())
	assert.ErrorContains(t, err, "Feed is required")
}

func TestRunnerPropagatesBarErrors(t *testing.T) {
	cfg := dca.Defaults()
	cfg.Symbol = "TEST"

	b := sim.NewEngine(1000, nil)
	strat, err := dca.NewEngine(cfg, b, nil)
	require.NoError(t, err)

	// Hand-built out-of-order feed; LoadBarSet would have caught this at
	// ingestion, the engine catches it again at processing.
	bs := testBars(100, 101)
	bs.Bars[1].Time = bs.Bars[0].Time.AddDate(0, 0, -1)

	r := &Runner{
		Symbol:   "TEST",
		Strategy: strat,
		Broker:   b,
		Feed:     NewSetFeed(bs),
	}

	_, err = r.Run(context.Background())
	assert.ErrorContains(t, err, "not after previous bar")
}

func TestPrintResult(t *testing.T) {
	var sb strings.Builder
	PrintResult(&sb, Result{
		Symbol:      "TEST",
		Bars:        3,
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		InitialCash: 1000,
		FinalCash:   1600,
		FinalEquity: 1600,
		ReturnPct:   60,
		Report: dca.Report{
			Investments:    1,
			Exits:          1,
			TotalDeployed:  1000,
			RealizedProfit: 600,
			TotalProceeds:  1600,
		},
	})

	out := sb.String()
	assert.Contains(t, out, "Symbol:        TEST")
	assert.Contains(t, out, "Periods:       1")
	assert.Contains(t, out, "Realized P/L:  $600.00")
	assert.Contains(t, out, "Return:        60.00%")
}
