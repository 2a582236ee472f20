package models

import (
	"errors"
	"fmt"
	"math"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
)

var ErrNoConvergence = errors.New("implied volatility did not converge")

// ImpliedVolatility solves BlackScholesPrice(c with Sigma=vol) == target by
// Newton iteration on vega. c.Sigma is ignored.
func ImpliedVolatility(target float64, c Contract) (float64, error) {
	sigma := 0.5 // Initial guess
	for i := 0; i < maxIterations; i++ {
		c.Sigma = sigma
		diff := BlackScholesPrice(c) - target
		if math.Abs(diff) < epsilon {
			return sigma, nil
		}

		vega := Greeks(c.Spot, c.Strike, c.T, c.Rate, sigma).Vega
		if vega == 0 || math.IsNaN(vega) {
			break
		}
		sigma -= diff / vega
		if sigma <= 0 {
			sigma = 0.0001 // Avoid negative volatility
		}
	}
	return math.NaN(), fmt.Errorf("%w: target %g after %d iterations", ErrNoConvergence, target, maxIterations)
}
