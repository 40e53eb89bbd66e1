package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordInvestment(r InvestmentRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO investments
		(event_id, symbol, time, price, ma_value, deviation_pct, multiplier, amount, shares)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.EventID, r.Symbol, r.Time, r.Price,
		r.MAValue, r.DeviationPct, r.Multiplier, r.Amount, r.Shares,
	)
	return err
}

func (j *SQLiteJournal) RecordExit(r ExitRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO exits
		(event_id, symbol, time, price, return_pct, shares_sold, proceeds, cost_of_sold, realized_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.EventID, r.Symbol, r.Time, r.Price,
		r.ReturnPct, r.SharesSold, r.Proceeds, r.CostOfSold, r.RealizedProfit,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, cash, shares, equity)
		VALUES (?, ?, ?, ?)`,
		e.Time, e.Cash, e.Shares, e.Equity,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
