package indicators

import (
	"fmt"

	"github.com/rustyeddy/dca/market"
)

// SimpleMA is a streaming simple moving average over bar closes.
//
// Value is undefined until Ready reports true; the engine must gate on Ready
// before acting on the average.
type SimpleMA struct {
	period int
	closes []float64
}

// NewMA creates a streaming simple moving average with the given period.
func NewMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("MA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, b.Close)
	// Keep only the last 'period' closes
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}
