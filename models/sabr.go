package models

import "math"

// SABRVolatility maps forward f and strike k to the SABR effective
// volatility. f == k takes the at-the-money branch exactly, and nu == 0 its
// z -> 0 limit. Away from the money beta == 1 or rho == 1 zero a divisor,
// and the result is NaN rather than an error.
func SABRVolatility(f, k float64, p SABRParams) float64 {
	fb := math.Pow(f, 1-p.Beta)
	if f == k || p.Nu == 0 {
		return p.Alpha / fb
	}
	if p.Beta == 1 || p.Rho == 1 {
		return math.NaN()
	}
	z := (p.Nu / p.Alpha) * (fb - math.Pow(k, 1-p.Beta)) / (1 - p.Beta)
	xz := math.Log((math.Sqrt(1-2*p.Rho*z+z*z) + z - p.Rho) / (1 - p.Rho))
	return p.Alpha * z / xz / fb
}

// SABRPrice feeds the SABR volatility into the Black-Scholes formula with
// the forward taken equal to spot. The risk-free rate is not an input: d1
// carries no rate term and the strike is discounted by exp(-0.5*T).
func SABRPrice(S, K, T float64, p SABRParams, kind OptionKind) float64 {
	sigma := SABRVolatility(S, K, p)
	d1, d2 := d1d2(S, K, T, 0, sigma)
	return blackScholes(S, K, kind, d1, d2, math.Exp(-0.5*T))
}

// SABRPriceContract is SABRPrice for a contract; only spot, strike,
// maturity and kind are read.
func SABRPriceContract(c Contract, p SABRParams) float64 {
	return SABRPrice(c.Spot, c.Strike, c.T, p, c.Kind)
}
