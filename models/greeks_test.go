package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreeksReferenceCase(t *testing.T) {
	g := Greeks(100, 100, 1, 0.05, 0.2)
	assert.InDelta(t, 0.6368306511756191, g.Delta, 1e-9)
	assert.InDelta(t, 0.018762017345846895, g.Gamma, 1e-9)
	assert.InDelta(t, -6.414027546438197, g.Theta, 1e-9)
	assert.InDelta(t, 37.52403469169379, g.Vega, 1e-9)
	assert.InDelta(t, 53.232481545376345, g.Rho, 1e-9)
}

func TestGreeksMatchFiniteDifferences(t *testing.T) {
	const h = 1e-4
	for _, kind := range []OptionKind{Call, Put} {
		c := Contract{Spot: 95, Strike: 100, T: 0.75, Rate: 0.03, Sigma: 0.25, Kind: kind}
		g := GreeksFor(c)

		base := BlackScholesPrice(c)
		priceWith := func(f func(*Contract)) float64 {
			x := c
			f(&x)
			return BlackScholesPrice(x)
		}
		delta := (priceWith(func(x *Contract) { x.Spot += h }) - priceWith(func(x *Contract) { x.Spot -= h })) / (2 * h)
		vega := (priceWith(func(x *Contract) { x.Sigma += h }) - base) / h
		rho := (priceWith(func(x *Contract) { x.Rate += h }) - base) / h
		theta := -(priceWith(func(x *Contract) { x.T += h }) - base) / h

		assert.InDelta(t, delta, g.Delta, 1e-4, kind.String())
		assert.InDelta(t, vega, g.Vega, 1e-2, kind.String())
		assert.InDelta(t, rho, g.Rho, 1e-2, kind.String())
		assert.InDelta(t, theta, g.Theta, 1e-2, kind.String())
	}
}

func TestDeltaBounds(t *testing.T) {
	for _, s := range []float64{1, 50, 100, 150, 1000} {
		for _, sigma := range []float64{0.01, 0.2, 1, 3} {
			for _, T := range []float64{0.01, 1, 10} {
				c := Contract{Spot: s, Strike: 100, T: T, Rate: 0.05, Sigma: sigma}
				call := GreeksFor(c).Delta
				c.Kind = Put
				put := GreeksFor(c).Delta
				assert.True(t, call >= 0 && call <= 1, "call delta %v", call)
				assert.True(t, put >= -1 && put <= 0, "put delta %v", put)
			}
		}
	}
}

func TestGreeksUnguarded(t *testing.T) {
	g := Greeks(100, 100, 1, 0.05, 0)
	assert.True(t, math.IsNaN(g.Gamma) || math.IsInf(g.Gamma, 0))
	g = Greeks(100, 100, 0, 0.05, 0.2)
	assert.True(t, math.IsNaN(g.Gamma) || math.IsInf(g.Gamma, 0))
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	for _, sigma := range []float64{0.1, 0.2, 0.45, 1.2} {
		for _, kind := range []OptionKind{Call, Put} {
			c := Contract{Spot: 100, Strike: 105, T: 0.5, Rate: 0.02, Sigma: sigma, Kind: kind}
			got, err := ImpliedVolatility(BlackScholesPrice(c), c)
			require.NoError(t, err)
			assert.InDelta(t, sigma, got, 1e-6)
		}
	}
}

func TestImpliedVolatilityNoConvergence(t *testing.T) {
	c := atm()
	// A call can never be worth more than the spot.
	_, err := ImpliedVolatility(500, c)
	assert.ErrorIs(t, err, ErrNoConvergence)
}
