package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	investments *csv.Writer
	exits       *csv.Writer
	equity      *csv.Writer
	inf, exf    *os.File
	eqf         *os.File
}

func NewCSV(investmentsPath, exitsPath, equityPath string) (*CSVJournal, error) {
	inf, err := os.Create(investmentsPath)
	if err != nil {
		return nil, err
	}
	exf, err := os.Create(exitsPath)
	if err != nil {
		return nil, err
	}
	eqf, err := os.Create(equityPath)
	if err != nil {
		return nil, err
	}

	iw := csv.NewWriter(inf)
	xw := csv.NewWriter(exf)
	ew := csv.NewWriter(eqf)

	if err := iw.Write([]string{"event_id", "symbol", "time", "price", "ma_value", "deviation_pct", "multiplier", "amount", "shares"}); err != nil {
		return nil, err
	}
	if err := xw.Write([]string{"event_id", "symbol", "time", "price", "return_pct", "shares_sold", "proceeds", "cost_of_sold", "realized_profit"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "cash", "shares", "equity"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{iw, xw, ew} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSVJournal{
		investments: iw,
		exits:       xw,
		equity:      ew,
		inf:         inf,
		exf:         exf,
		eqf:         eqf,
	}, nil
}

func (j *CSVJournal) RecordInvestment(r InvestmentRecord) error {
	err := j.investments.Write([]string{
		r.EventID,
		r.Symbol,
		r.Time.Format(time.RFC3339),
		f(r.Price),
		f(r.MAValue),
		f(r.DeviationPct),
		f(r.Multiplier),
		f(r.Amount),
		f(r.Shares),
	})
	if err != nil {
		return err
	}
	j.investments.Flush()
	return j.investments.Error()
}

func (j *CSVJournal) RecordExit(r ExitRecord) error {
	err := j.exits.Write([]string{
		r.EventID,
		r.Symbol,
		r.Time.Format(time.RFC3339),
		f(r.Price),
		f(r.ReturnPct),
		f(r.SharesSold),
		f(r.Proceeds),
		f(r.CostOfSold),
		f(r.RealizedProfit),
	})
	if err != nil {
		return err
	}
	j.exits.Flush()
	return j.exits.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		f(e.Cash),
		f(e.Shares),
		f(e.Equity),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.investments, j.exits, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, file := range []*os.File{j.inf, j.exf, j.eqf} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
