package models

import (
	"math"

	"github.com/bcdannyboy/optlab/numerics"
)

// BlackScholesPrice prices a European option. Spot, strike, maturity and
// volatility are floored at numerics.Epsilon, so the result is always a
// finite number even for boundary inputs.
func BlackScholesPrice(c Contract) float64 {
	S := numerics.Floor(c.Spot)
	K := numerics.Floor(c.Strike)
	T := numerics.Floor(c.T)
	sigma := numerics.Floor(c.Sigma)

	d1, d2 := d1d2(S, K, T, c.Rate, sigma)
	return blackScholes(S, K, c.Kind, d1, d2, math.Exp(-c.Rate*T))
}

func d1d2(S, K, T, r, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

func blackScholes(S, K float64, kind OptionKind, d1, d2, discount float64) float64 {
	if kind == Put {
		return K*discount*numerics.NormCDF(-d2) - S*numerics.NormCDF(-d1)
	}
	return S*numerics.NormCDF(d1) - K*discount*numerics.NormCDF(d2)
}
