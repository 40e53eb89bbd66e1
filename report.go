package dca

// Report is the read-only end-of-run summary derived from the accumulated
// event histories.
type Report struct {
	Investments int
	Exits       int

	TotalDeployed   float64 // sum of executed investment amounts
	AvgDeviationPct float64
	AvgMultiplier   float64

	RealizedProfit float64
	TotalProceeds  float64

	// Open position at the end of the run.
	OpenShares    float64
	OpenCostBasis float64
}

// Summarize derives the run report. It can be called at any point; the
// histories are never mutated by it.
func (e *Engine) Summarize() Report {
	r := Report{
		Investments:   len(e.investments),
		Exits:         len(e.exits),
		TotalProceeds: e.ledger.TotalProceeds,
		OpenShares:    e.ledger.TotalShares,
		OpenCostBasis: e.ledger.TotalCostBasis,
	}

	for _, inv := range e.investments {
		r.TotalDeployed += inv.Amount
		r.AvgDeviationPct += inv.DeviationPct
		r.AvgMultiplier += inv.Multiplier
	}
	if len(e.investments) > 0 {
		r.AvgDeviationPct /= float64(len(e.investments))
		r.AvgMultiplier /= float64(len(e.investments))
	}

	for _, ex := range e.exits {
		r.RealizedProfit += ex.RealizedProfit
	}

	return r
}
