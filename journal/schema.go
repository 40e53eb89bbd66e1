package journal

const Schema = `
CREATE TABLE IF NOT EXISTS investments (
	event_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	price REAL NOT NULL,
	ma_value REAL NOT NULL,
	deviation_pct REAL NOT NULL,
	multiplier REAL NOT NULL,
	amount REAL NOT NULL,
	shares REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS exits (
	event_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	price REAL NOT NULL,
	return_pct REAL NOT NULL,
	shares_sold REAL NOT NULL,
	proceeds REAL NOT NULL,
	cost_of_sold REAL NOT NULL,
	realized_profit REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	shares REAL NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investments_time ON investments(time);
CREATE INDEX IF NOT EXISTS idx_exits_time ON exits(time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`
