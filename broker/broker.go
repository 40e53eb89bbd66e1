package broker

import (
	"context"
	"time"
)

// Broker is the narrow execution interface the decision engine depends on.
// Fills are synchronous: an order either fills completely at the requested
// price or returns an error. There are no retries and no partial fills.
type Broker interface {
	GetCash(ctx context.Context) (float64, error)
	SubmitBuy(ctx context.Context, req OrderRequest) (Fill, error)
	SubmitSell(ctx context.Context, req OrderRequest) (Fill, error)
}

// OrderRequest asks for Units of Symbol at Price. Time is the bar time the
// order was decided on; simulated fills carry it through.
type OrderRequest struct {
	Symbol string
	Units  float64
	Price  float64
	Time   time.Time
}

type Fill struct {
	OrderID string
	Symbol  string
	Units   float64
	Price   float64
	Amount  float64 // Units * Price
	Time    time.Time
}
