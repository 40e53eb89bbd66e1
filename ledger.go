package dca

import "time"

// dustShares absorbs float residue after a full liquidation so the ledger
// returns to exact zeros.
const dustShares = 1e-9

// Ledger tracks the open position: cumulative shares, cumulative cost basis,
// and proceeds received so far. It is mutated only by the engine, only in
// response to executed investments and exits.
//
// Invariant: TotalCostBasis is zero iff TotalShares is zero (within float
// tolerance); average cost per share is TotalCostBasis / TotalShares whenever
// shares are held.
type Ledger struct {
	TotalShares    float64
	TotalCostBasis float64
	TotalProceeds  float64

	LastInvestment time.Time // zero value means no investment yet
	LastExit       time.Time // zero value means no exit yet
}

func (l *Ledger) HasPosition() bool {
	return l.TotalShares > 0
}

// AvgCost is the average cost per share, 0 with no position.
func (l *Ledger) AvgCost() float64 {
	if l.TotalShares <= 0 {
		return 0
	}
	return l.TotalCostBasis / l.TotalShares
}

// ApplyInvestment commits a completed purchase and advances the investment
// cadence date.
func (l *Ledger) ApplyInvestment(t time.Time, amount, shares float64) {
	l.TotalCostBasis += amount
	l.TotalShares += shares
	l.LastInvestment = t
}

// ApplyExit commits a completed sale, releasing cost basis in proportion to
// the shares sold, and starts the exit cooldown clock.
func (l *Ledger) ApplyExit(t time.Time, sharesSold, proceeds, costOfSold float64) {
	l.TotalShares -= sharesSold
	l.TotalCostBasis -= costOfSold
	l.TotalProceeds += proceeds
	l.LastExit = t

	// A full liquidation must land on exact zeros.
	if l.TotalShares < dustShares {
		l.TotalShares = 0
		l.TotalCostBasis = 0
	}
}
