package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetInvestment returns a single investment record by event ID.
func (j *SQLiteJournal) GetInvestment(eventID string) (InvestmentRecord, error) {
	var rec InvestmentRecord

	row := j.db.QueryRow(`
		SELECT event_id, symbol, time, price, ma_value, deviation_pct, multiplier, amount, shares
		FROM investments
		WHERE event_id = ?`, eventID)

	err := row.Scan(
		&rec.EventID,
		&rec.Symbol,
		&rec.Time,
		&rec.Price,
		&rec.MAValue,
		&rec.DeviationPct,
		&rec.Multiplier,
		&rec.Amount,
		&rec.Shares,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return InvestmentRecord{}, fmt.Errorf("investment %q not found", eventID)
		}
		return InvestmentRecord{}, err
	}
	return rec, nil
}

// ListInvestmentsBetween returns investments with time in [start, end).
func (j *SQLiteJournal) ListInvestmentsBetween(start, end time.Time) ([]InvestmentRecord, error) {
	rows, err := j.db.Query(`
		SELECT event_id, symbol, time, price, ma_value, deviation_pct, multiplier, amount, shares
		FROM investments
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvestmentRecord
	for rows.Next() {
		var rec InvestmentRecord
		if err := rows.Scan(
			&rec.EventID,
			&rec.Symbol,
			&rec.Time,
			&rec.Price,
			&rec.MAValue,
			&rec.DeviationPct,
			&rec.Multiplier,
			&rec.Amount,
			&rec.Shares,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExitsBetween returns exits with time in [start, end).
func (j *SQLiteJournal) ListExitsBetween(start, end time.Time) ([]ExitRecord, error) {
	rows, err := j.db.Query(`
		SELECT event_id, symbol, time, price, return_pct, shares_sold, proceeds, cost_of_sold, realized_profit
		FROM exits
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExitRecord
	for rows.Next() {
		var rec ExitRecord
		if err := rows.Scan(
			&rec.EventID,
			&rec.Symbol,
			&rec.Time,
			&rec.Price,
			&rec.ReturnPct,
			&rec.SharesSold,
			&rec.Proceeds,
			&rec.CostOfSold,
			&rec.RealizedProfit,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RealizedProfitBetween sums realized profit over exits in [start, end).
func (j *SQLiteJournal) RealizedProfitBetween(start, end time.Time) (float64, error) {
	var total sql.NullFloat64
	err := j.db.QueryRow(`
		SELECT SUM(realized_profit)
		FROM exits
		WHERE time >= ? AND time < ?`, start, end).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}
