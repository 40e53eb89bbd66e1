package backtest

import (
	"github.com/rustyeddy/dca/market"
)

// BarFeed yields bars one at a time in chronological order.
// Implementations should be deterministic and return ok=false at EOF.
type BarFeed interface {
	Next() (b market.Bar, ok bool, err error)
	Close() error
}

// SetFeed replays an in-memory BarSet. It backs both file-based runs (via
// NewFileFeed) and test fixtures.
type SetFeed struct {
	bars []market.Bar
	idx  int
}

func NewSetFeed(bs *market.BarSet) *SetFeed {
	return &SetFeed{bars: bs.Bars}
}

// NewFileFeed loads a validated bar CSV (plain or xz-compressed) and replays
// it.
func NewFileFeed(path, symbol string) (*SetFeed, error) {
	bs, err := market.LoadBarSet(path, symbol)
	if err != nil {
		return nil, err
	}
	return NewSetFeed(bs), nil
}

func (f *SetFeed) Next() (market.Bar, bool, error) {
	if f.idx >= len(f.bars) {
		return market.Bar{}, false, nil
	}
	b := f.bars[f.idx]
	f.idx++
	return b, true, nil
}

func (f *SetFeed) Close() error { return nil }
