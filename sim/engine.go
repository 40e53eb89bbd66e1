package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/dca/broker"
	"github.com/rustyeddy/dca/journal"
	"github.com/rustyeddy/dca/pkg/id"
)

// Engine is a deterministic simulated broker: every order fills completely
// and immediately at the requested price. It implements broker.Broker.
type Engine struct {
	mu       sync.Mutex
	cash     float64
	holdings map[string]float64
	last     map[string]float64 // last marked price per symbol
	fills    []broker.Fill
	journal  journal.Journal // optional
}

func NewEngine(initialCash float64, j journal.Journal) *Engine {
	return &Engine{
		cash:     initialCash,
		holdings: make(map[string]float64),
		last:     make(map[string]float64),
		journal:  j,
	}
}

func (e *Engine) GetCash(ctx context.Context) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cash, nil
}

// SubmitBuy fills a buy at the requested price. Strategies are expected to
// clip order amounts to free cash first; an order the account cannot cover
// is a caller bug and comes back as an error rather than a partial fill.
func (e *Engine) SubmitBuy(ctx context.Context, req broker.OrderRequest) (broker.Fill, error) {
	if err := validateOrder(req); err != nil {
		return broker.Fill{}, fmt.Errorf("buy: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	amount := req.Units * req.Price
	if amount > e.cash {
		return broker.Fill{}, fmt.Errorf("buy %0.4f %s @ %v: amount %.2f exceeds cash %.2f",
			req.Units, req.Symbol, req.Price, amount, e.cash)
	}

	e.cash -= amount
	e.holdings[req.Symbol] += req.Units
	e.last[req.Symbol] = req.Price

	fill := broker.Fill{
		OrderID: id.New(),
		Symbol:  req.Symbol,
		Units:   req.Units,
		Price:   req.Price,
		Amount:  amount,
		Time:    req.Time,
	}
	e.fills = append(e.fills, fill)

	return fill, e.recordEquityLocked(req.Time)
}

// SubmitSell fills a sell at the requested price. Selling more units than
// held is an error.
func (e *Engine) SubmitSell(ctx context.Context, req broker.OrderRequest) (broker.Fill, error) {
	if err := validateOrder(req); err != nil {
		return broker.Fill{}, fmt.Errorf("sell: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	held := e.holdings[req.Symbol]
	if req.Units > held {
		return broker.Fill{}, fmt.Errorf("sell %0.4f %s: only %0.4f held",
			req.Units, req.Symbol, held)
	}

	amount := req.Units * req.Price
	e.cash += amount
	e.holdings[req.Symbol] = held - req.Units
	e.last[req.Symbol] = req.Price

	fill := broker.Fill{
		OrderID: id.New(),
		Symbol:  req.Symbol,
		Units:   -req.Units,
		Price:   req.Price,
		Amount:  amount,
		Time:    req.Time,
	}
	e.fills = append(e.fills, fill)

	return fill, e.recordEquityLocked(req.Time)
}

// MarkPrice updates the mark used for equity valuation. The backtest runner
// calls it once per bar before the strategy runs.
func (e *Engine) MarkPrice(symbol string, price float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last[symbol] = price
}

// Equity is cash plus all holdings valued at their last marked price.
func (e *Engine) Equity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.equityLocked()
}

func (e *Engine) Cash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cash
}

func (e *Engine) Holdings(symbol string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.holdings[symbol]
}

func (e *Engine) Fills() []broker.Fill {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]broker.Fill, len(e.fills))
	copy(out, e.fills)
	return out
}

func (e *Engine) equityLocked() float64 {
	eq := e.cash
	for sym, units := range e.holdings {
		eq += units * e.last[sym]
	}
	return eq
}

func (e *Engine) recordEquityLocked(t time.Time) error {
	if e.journal == nil {
		return nil
	}

	shares := 0.0
	for _, units := range e.holdings {
		shares += units
	}

	return e.journal.RecordEquity(journal.EquitySnapshot{
		Time:   t,
		Cash:   e.cash,
		Shares: shares,
		Equity: e.equityLocked(),
	})
}

func validateOrder(req broker.OrderRequest) error {
	if req.Symbol == "" {
		return fmt.Errorf("order has no symbol")
	}
	if req.Units <= 0 {
		return fmt.Errorf("order units %v must be positive", req.Units)
	}
	if req.Price <= 0 {
		return fmt.Errorf("order price %v must be positive", req.Price)
	}
	return nil
}
