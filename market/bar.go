package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is one OHLCV bar. Bars arrive in strictly increasing chronological
// order, one per time step.
type Bar struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64
}

// Validate rejects bars the engine must never process: zero timestamps and
// non-finite or non-positive prices.
func (b Bar) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("bar has zero timestamp")
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("bar %s: %s price is not finite", b.Time.Format("2006-01-02"), p.name)
		}
		if p.v <= 0 {
			return fmt.Errorf("bar %s: %s price %v is not positive", b.Time.Format("2006-01-02"), p.name, p.v)
		}
	}
	if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) || b.Volume < 0 {
		return fmt.Errorf("bar %s: bad volume %v", b.Time.Format("2006-01-02"), b.Volume)
	}
	return nil
}
