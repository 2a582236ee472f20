package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdannyboy/optlab/numerics"
	"github.com/bcdannyboy/optlab/tradier"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInsufficientHistory = errors.New("not enough price history")

const (
	garchIterations = 2000
	garchBurnIn     = 200
	garchStepSize   = 0.01
)

// GARCH11 is sigma2[t] = Omega + Alpha*r[t-1]^2 + Beta*sigma2[t-1].
type GARCH11 struct {
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (g GARCH11) valid() bool {
	return g.Omega > 0 && g.Alpha >= 0 && g.Beta >= 0 && g.Alpha+g.Beta < 1
}

// LogLikelihood is the Gaussian log-likelihood of returns, starting from the
// unconditional variance. Parameters outside the stationary region score -Inf.
func (g GARCH11) LogLikelihood(returns []float64) float64 {
	if !g.valid() {
		return math.Inf(-1)
	}
	variance := g.Omega / (1 - g.Alpha - g.Beta)
	logLik := 0.0
	for i := 1; i < len(returns); i++ {
		variance = g.Omega + g.Alpha*returns[i-1]*returns[i-1] + g.Beta*variance
		logLik += -0.5*math.Log(2*math.Pi) - 0.5*math.Log(variance) - 0.5*returns[i]*returns[i]/variance
	}
	return logLik
}

// ConditionalVolatility runs the variance recursion over returns and returns
// the last conditional volatility, annualized.
func (g GARCH11) ConditionalVolatility(returns []float64) float64 {
	variance := g.Omega / (1 - g.Alpha - g.Beta)
	for i := 1; i < len(returns); i++ {
		variance = g.Omega + g.Alpha*returns[i-1]*returns[i-1] + g.Beta*variance
	}
	return math.Sqrt(variance * TradingDays)
}

// EstimateGARCH11 averages a Metropolis chain over the likelihood and uses
// the mean as the Nelder-Mead starting point. The chain draws from
// stream.Block(0) only, so a seed fixes the estimate.
func EstimateGARCH11(returns []float64, stream numerics.Stream) (GARCH11, error) {
	if len(returns) < 3 {
		return GARCH11{}, fmt.Errorf("%w: %d returns", ErrInsufficientHistory, len(returns))
	}

	rng := stream.Block(0)
	step := distuv.Normal{Mu: 0, Sigma: garchStepSize, Src: rng}

	current := GARCH11{Omega: 0.000001, Alpha: 0.1, Beta: 0.8}
	currentLL := current.LogLikelihood(returns)
	var mean GARCH11
	for i := 1; i < garchIterations; i++ {
		proposal := GARCH11{
			Omega: current.Omega + step.Rand(),
			Alpha: current.Alpha + step.Rand(),
			Beta:  current.Beta + step.Rand(),
		}
		if proposal.valid() {
			proposalLL := proposal.LogLikelihood(returns)
			if math.Log(rng.Float64()) < proposalLL-currentLL {
				current, currentLL = proposal, proposalLL
			}
		}
		if i >= garchBurnIn {
			mean.Omega += current.Omega
			mean.Alpha += current.Alpha
			mean.Beta += current.Beta
		}
	}
	kept := float64(garchIterations - garchBurnIn)
	mean = GARCH11{Omega: mean.Omega / kept, Alpha: mean.Alpha / kept, Beta: mean.Beta / kept}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			ll := GARCH11{Omega: x[0], Alpha: x[1], Beta: x[2]}.LogLikelihood(returns)
			if math.IsInf(ll, -1) || math.IsNaN(ll) {
				return math.MaxFloat64
			}
			return -ll
		},
	}
	result, err := optimize.Minimize(problem, []float64{mean.Omega, mean.Alpha, mean.Beta}, nil, &optimize.NelderMead{})
	if err != nil || result == nil {
		return mean, nil
	}
	fit := GARCH11{Omega: result.X[0], Alpha: result.X[1], Beta: result.X[2]}
	if !fit.valid() || fit.LogLikelihood(returns) < mean.LogLikelihood(returns) {
		return mean, nil
	}
	return fit, nil
}

// LogReturns are the daily log close-to-close returns of history.
func LogReturns(history *tradier.QuoteHistory) []float64 {
	closes := history.Closes()
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = numerics.SafeLog(closes[i] / closes[i-1])
	}
	return returns
}

// GARCHVolatility fits GARCH(1,1) to the history's daily returns and returns
// the annualized conditional volatility after the last bar.
func GARCHVolatility(history *tradier.QuoteHistory, stream numerics.Stream) (float64, error) {
	returns := LogReturns(history)
	params, err := EstimateGARCH11(returns, stream)
	if err != nil {
		return 0, err
	}
	return params.ConditionalVolatility(returns), nil
}
