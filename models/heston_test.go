package models

import (
	"context"
	"math"
	"runtime"
	"testing"

	"github.com/bcdannyboy/optlab/numerics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps(t *testing.T) {
	assert.Equal(t, 252, Steps(1))
	assert.Equal(t, 25, Steps(0.1))
	assert.Equal(t, 0, Steps(0))
	assert.Equal(t, 0, Steps(-2))
	assert.Equal(t, 0, Steps(1.0/600))
}

func TestHestonConvergesToBlackScholes(t *testing.T) {
	c := atm()
	h := NewHestonModel(c.Sigma*c.Sigma, 2.0, c.Sigma*c.Sigma, 0, -0.7)
	stream := numerics.NewStream(numerics.DefaultSeed)

	for _, kind := range []OptionKind{Call, Put} {
		c.Kind = kind
		got := h.Price(c, 20000, stream)
		assert.InDelta(t, BlackScholesPrice(c), got, 0.5, kind.String())
	}
}

func TestHestonDeterministicAcrossWorkers(t *testing.T) {
	c := atm()
	h := NewHestonModel(0.04, 2.0, 0.04, 0.2, -0.7)
	stream := numerics.NewStream(99)

	prev := runtime.GOMAXPROCS(1)
	single := h.Price(c, 3000, stream)
	runtime.GOMAXPROCS(4)
	multi := h.Price(c, 3000, stream)
	runtime.GOMAXPROCS(prev)

	assert.Equal(t, single, multi)
	assert.NotEqual(t, single, h.Price(c, 3000, numerics.NewStream(100)))
}

func TestHestonDegenerateInputs(t *testing.T) {
	h := &HestonModel{DefaultHeston}
	stream := numerics.NewStream(1)

	c := Contract{Spot: 110, Strike: 100, T: 1, Rate: 0.05, Kind: Call}
	assert.Equal(t, 0.0, h.Price(c, 0, stream))
	assert.Equal(t, 0.0, h.Price(c, -10, stream))

	// No steps: payoff on the initial spot, undiscounted at T == 0.
	c.T = 0
	assert.Equal(t, 10.0, h.Price(c, 50, stream))
	c.Kind = Put
	assert.Equal(t, 0.0, h.Price(c, 50, stream))

	// Negative maturity still runs no steps but discounts by exp(-rT) > 1.
	c.Kind, c.T = Call, -1
	assert.InDelta(t, 10*math.Exp(0.05), h.Price(c, 50, stream), 1e-12)
	assert.InDelta(t, 10.5127, h.Price(c, 50, stream), 1e-4)
}

func TestHestonVarianceStaysNonNegative(t *testing.T) {
	// Large vol-of-vol drives the raw scheme negative; truncation keeps
	// every path finite.
	h := NewHestonModel(0.01, 0.5, 0.01, 3.0, -0.9)
	prices, err := h.SimulatePricesBatch(context.Background(), 100, 0.02, 2, 2000, numerics.NewStream(5))
	require.NoError(t, err)
	for _, p := range prices {
		assert.True(t, numerics.IsFinite(p) && p > 0, "terminal price %v", p)
	}
}

func TestHestonPriceContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := &HestonModel{DefaultHeston}
	_, err := h.PriceContext(ctx, atm(), 50000, numerics.NewStream(1))
	assert.ErrorIs(t, err, context.Canceled)
}
