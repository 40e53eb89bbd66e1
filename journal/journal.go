package journal

import "time"

// InvestmentRecord is one executed periodic investment.
type InvestmentRecord struct {
	EventID      string
	Symbol       string
	Time         time.Time
	Price        float64
	MAValue      float64
	DeviationPct float64
	Multiplier   float64
	Amount       float64
	Shares       float64
}

// ExitRecord is one executed profit-taking sale, full or partial.
type ExitRecord struct {
	EventID        string
	Symbol         string
	Time           time.Time
	Price          float64
	ReturnPct      float64
	SharesSold     float64
	Proceeds       float64
	CostOfSold     float64
	RealizedProfit float64
}

// EquitySnapshot records cash and mark-to-market equity at a point in time.
type EquitySnapshot struct {
	Time   time.Time
	Cash   float64
	Shares float64
	Equity float64
}

type Journal interface {
	RecordInvestment(InvestmentRecord) error
	RecordExit(ExitRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
