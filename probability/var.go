package probability

import (
	"context"
	"math"
	"sort"

	"github.com/bcdannyboy/optlab/models"
	"github.com/bcdannyboy/optlab/numerics"
	"gonum.org/v1/gonum/stat"
)

type RiskRequest struct {
	models.Contract
	Confidence  float64 `json:"confidence"`  // e.g. 0.95
	Simulations int     `json:"simulations"` // Number of simulated paths
}

// UndefinedReason says why a risk result carries no numbers.
type UndefinedReason int

const (
	ReasonNone UndefinedReason = iota
	ReasonDegenerateInput
	ReasonNumericalFault
)

func (r UndefinedReason) String() string {
	switch r {
	case ReasonDegenerateInput:
		return "degenerate input"
	case ReasonNumericalFault:
		return "numerical fault"
	}
	return ""
}

// RiskResult holds VaR and ES of the simulated option value. When Reason is
// not ReasonNone both values are NaN and must not be displayed.
type RiskResult struct {
	VaR    float64
	ES     float64
	Reason UndefinedReason
}

func (r RiskResult) IsDefined() bool {
	return r.Reason == ReasonNone
}

func undefined(reason UndefinedReason) RiskResult {
	return RiskResult{VaR: math.NaN(), ES: math.NaN(), Reason: reason}
}

// Estimate simulates terminal spot prices, reprices the option at each one
// with the contract's maturity, rate and volatility, and reduces the values to
// VaR, the (1-confidence) percentile, and ES, the mean of values at or below
// VaR. Both come from the same sample. Estimate never fails; degenerate
// inputs or non-finite intermediate values produce an undefined result.
func Estimate(req RiskRequest, stream numerics.Stream) RiskResult {
	res, _ := EstimateContext(context.Background(), req, stream)
	return res
}

// EstimateContext is Estimate with cancellation. The error is non-nil only
// when ctx ends during the simulation.
func EstimateContext(ctx context.Context, req RiskRequest, stream numerics.Stream) (RiskResult, error) {
	c := req.Contract
	if req.Simulations <= 0 || !(c.Spot > 0) || !(c.Sigma > 0) || !(c.T > 0) ||
		!(req.Confidence > 0 && req.Confidence < 1) {
		return undefined(ReasonDegenerateInput), nil
	}
	// A maturity shorter than half a trading day leaves no step to take.
	if models.Steps(c.T) == 0 {
		return undefined(ReasonNumericalFault), nil
	}

	terminal, err := SimulateTerminalPrices(ctx, c.Spot, c.Rate, c.Sigma, c.T, req.Simulations, stream)
	if err != nil {
		return undefined(ReasonNumericalFault), err
	}

	values := make([]float64, len(terminal))
	for i, s := range terminal {
		if !numerics.IsFinite(s) {
			return undefined(ReasonNumericalFault), nil
		}
		repriced := c
		repriced.Spot = s
		values[i] = models.BlackScholesPrice(repriced)
		if !numerics.IsFinite(values[i]) {
			return undefined(ReasonNumericalFault), nil
		}
	}

	sort.Float64s(values)
	valueAtRisk := Percentile(values, 1-req.Confidence)

	// values is sorted, so the tail is a prefix. Its mean can round a few
	// ulps above VaR when the tail is flat; ES never exceeds VaR.
	tail := sort.Search(len(values), func(i int) bool { return values[i] > valueAtRisk })
	return RiskResult{
		VaR: valueAtRisk,
		ES:  math.Min(stat.Mean(values[:tail], nil), valueAtRisk),
	}, nil
}

// Percentile returns the q-quantile (0 <= q <= 1) of ascending sorted by
// linear interpolation between closest ranks.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := q * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
