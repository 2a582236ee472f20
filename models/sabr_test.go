package models

import (
	"math"
	"testing"

	"github.com/bcdannyboy/optlab/numerics"
	"github.com/stretchr/testify/assert"
)

func TestSABRAtTheMoney(t *testing.T) {
	p := SABRParams{Alpha: 0.2, Beta: 0.5, Rho: -0.3, Nu: 0.4}
	assert.Equal(t, 0.2/math.Pow(100, 0.5), SABRVolatility(100, 100, p))
	assert.InDelta(t, 0.02, SABRVolatility(100, 100, p), 1e-15)

	// sigma = 0.02 with no rate in d1 and exp(-0.5T) on the strike.
	sigma := 0.02
	d1 := 0.5 * sigma * sigma / sigma
	d2 := d1 - sigma
	wantCall := 100*numerics.NormCDF(d1) - 100*math.Exp(-0.5)*numerics.NormCDF(d2)
	wantPut := 100*math.Exp(-0.5)*numerics.NormCDF(-d2) - 100*numerics.NormCDF(-d1)

	assert.InDelta(t, wantCall, SABRPrice(100, 100, 1, p, Call), 1e-12)
	assert.InDelta(t, 20.314369337565715, SABRPrice(100, 100, 1, p, Call), 1e-9)
	assert.InDelta(t, wantPut, SABRPrice(100, 100, 1, p, Put), 1e-12)
}

func TestSABROffTheMoney(t *testing.T) {
	p := DefaultSABR
	for _, k := range []float64{80, 95, 105, 130} {
		vol := SABRVolatility(100, k, p)
		assert.True(t, numerics.IsFinite(vol) && vol > 0, "strike %v vol %v", k, vol)
		assert.True(t, numerics.IsFinite(SABRPrice(100, k, 1, p, Call)))
	}
	// Near the money converges to the ATM value.
	assert.InDelta(t, SABRVolatility(100, 100, p), SABRVolatility(100, 100.0001, p), 1e-5)
}

func TestSABRSingularitiesPropagate(t *testing.T) {
	p := SABRParams{Alpha: 0.2, Beta: 1, Rho: -0.3, Nu: 0.4}
	assert.False(t, numerics.IsFinite(SABRVolatility(100, 90, p)))
	// At the money beta == 1 is just alpha.
	assert.Equal(t, 0.2, SABRVolatility(100, 100, p))

	for _, nu := range []float64{0.05, 0.4} {
		p = SABRParams{Alpha: 0.2, Beta: 0.5, Rho: 1, Nu: nu}
		assert.True(t, math.IsNaN(SABRVolatility(100, 90, p)))
		assert.True(t, math.IsNaN(SABRPrice(100, 90, 1, p, Call)))
	}

	// rho == -1 is not singular.
	p = SABRParams{Alpha: 0.2, Beta: 0.5, Rho: -1, Nu: 0.4}
	assert.True(t, numerics.IsFinite(SABRVolatility(100, 90, p)))
}

func TestSABRPriceContractIgnoresRate(t *testing.T) {
	c := atm()
	a := SABRPriceContract(c, DefaultSABR)
	c.Rate = 0.4
	c.Sigma = 3
	assert.Equal(t, a, SABRPriceContract(c, DefaultSABR))
}

func TestSABRZeroVolOfVol(t *testing.T) {
	p := SABRParams{Alpha: 0.2, Beta: 0.5, Rho: -0.3, Nu: 0}
	want := 0.2 / math.Pow(100, 0.5)
	for _, k := range []float64{90, 100, 110} {
		assert.Equal(t, want, SABRVolatility(100, k, p), "strike %v", k)
	}
	// The small-nu formula approaches the same limit.
	p.Nu = 1e-8
	assert.InDelta(t, want, SABRVolatility(100, 90, p), 1e-6)
}
