package dca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierTiers(t *testing.T) {
	tests := []struct {
		name      string
		deviation float64
		want      float64
	}{
		{"deeply undervalued", -35, 2.2},
		{"lower boundary inclusive", -20, 2.2},
		{"significantly undervalued", -19.999, 1.8},
		{"boundary -10", -10, 1.8},
		{"slightly below", -5, 1.4},
		{"boundary zero", 0, 1.4},
		{"fair value", 3, 1.0},
		{"boundary 5", 5, 1.0},
		{"slightly rich", 10, 0.5},
		{"boundary 15", 15, 0.5},
		{"significantly rich", 20, 0.2},
		{"boundary 25", 25, 0.2},
		{"just past 25", 25.0001, 0.0},
		{"deeply overvalued", 100, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MultiplierFor(tt.deviation))
		})
	}
}

func TestMultiplierTotalAndNonIncreasing(t *testing.T) {
	// Piecewise constant and never increasing as deviation increases,
	// defined for every input including the extremes.
	prev := math.Inf(1)
	for dev := -200.0; dev <= 200.0; dev += 0.25 {
		m := MultiplierFor(dev)
		assert.False(t, math.IsNaN(m))
		assert.LessOrEqual(t, m, prev, "multiplier increased at deviation %v", dev)
		prev = m
	}

	assert.Equal(t, 2.2, MultiplierFor(math.Inf(-1)))
	assert.Equal(t, 0.0, MultiplierFor(math.Inf(1)))
}

func TestDeviation(t *testing.T) {
	assert.InDelta(t, 0.0, Deviation(100, 100), 1e-12)
	assert.InDelta(t, -20.0, Deviation(80, 100), 1e-12)
	assert.InDelta(t, 25.0, Deviation(125, 100), 1e-12)
}
