package models

import (
	"math"

	"github.com/bcdannyboy/optlab/numerics"
)

// Greeks returns the analytic sensitivities of the call price at one point.
// Inputs are not clamped: sigma or T of zero yields Inf/NaN. Put Greeks are
// not produced here; see GreeksFor.
func Greeks(S, K, T, r, sigma float64) GreeksResult {
	d1, d2 := d1d2(S, K, T, r, sigma)
	sqrtT := math.Sqrt(T)
	pdf := numerics.NormPDF(d1)
	disc := math.Exp(-r * T)

	return GreeksResult{
		Delta: numerics.NormCDF(d1),
		Gamma: pdf / (S * sigma * sqrtT),
		Theta: -S*pdf*sigma/(2*sqrtT) - r*K*disc*numerics.NormCDF(d2),
		Vega:  S * sqrtT * pdf,
		Rho:   K * T * disc * numerics.NormCDF(d2),
	}
}

// GreeksFor returns Greeks for the contract's own kind. Gamma and vega are
// shared; put delta, theta and rho follow from put-call parity.
func GreeksFor(c Contract) GreeksResult {
	g := Greeks(c.Spot, c.Strike, c.T, c.Rate, c.Sigma)
	if c.Kind == Call {
		return g
	}
	disc := math.Exp(-c.Rate * c.T)
	g.Delta -= 1
	g.Theta += c.Rate * c.Strike * disc
	g.Rho -= c.Strike * c.T * disc
	return g
}
