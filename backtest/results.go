package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/dca"
)

// Result is the summary of one backtest run.
type Result struct {
	Symbol string

	Start time.Time
	End   time.Time
	Bars  int

	InitialCash float64
	FinalCash   float64
	FinalEquity float64
	ReturnPct   float64

	Report dca.Report
}

func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Dynamic Cost Averaging Backtest")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Symbol:        %s\n", r.Symbol)
	fmt.Fprintf(w, "Bars:          %d\n", r.Bars)
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Start:         %s\n", r.Start.Format("2006-01-02"))
		fmt.Fprintf(w, "End:           %s\n", r.End.Format("2006-01-02"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Investments")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Periods:       %d\n", r.Report.Investments)
	fmt.Fprintf(w, "Deployed:      $%.2f\n", r.Report.TotalDeployed)
	if r.Report.Investments > 0 {
		fmt.Fprintf(w, "Avg Deviation: %.1f%%\n", r.Report.AvgDeviationPct)
		fmt.Fprintf(w, "Avg Multiplier: %.2f\n", r.Report.AvgMultiplier)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit Taking")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Exits:         %d\n", r.Report.Exits)
	fmt.Fprintf(w, "Proceeds:      $%.2f\n", r.Report.TotalProceeds)
	fmt.Fprintf(w, "Realized P/L:  $%.2f\n", r.Report.RealizedProfit)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       $%.2f\n", r.InitialCash)
	fmt.Fprintf(w, "Final Cash:    $%.2f\n", r.FinalCash)
	fmt.Fprintf(w, "Final Equity:  $%.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.ReturnPct)

	if r.Report.OpenShares > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Open Position: %v shares, cost basis $%.2f\n",
			r.Report.OpenShares, r.Report.OpenCostBasis)
	}

	fmt.Fprintln(w)
}
