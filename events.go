package dca

import "time"

// InvestmentEvent records one executed periodic investment. Events are
// append-only; the engine never mutates one after it is recorded.
//
// Events carry no generated IDs so that identical runs produce identical
// histories; the journal layer attaches order ULIDs to its records instead.
type InvestmentEvent struct {
	Time         time.Time
	Price        float64
	MAValue      float64
	DeviationPct float64
	Multiplier   float64
	Amount       float64 // actual cash deployed after size rounding
	Shares       float64
}

// ExitEvent records one executed profit-taking sale.
type ExitEvent struct {
	Time           time.Time
	Price          float64
	ReturnPct      float64
	SharesSold     float64
	Proceeds       float64
	CostOfSold     float64
	RealizedProfit float64
}
