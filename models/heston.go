package models

import (
	"context"
	"math"

	"github.com/bcdannyboy/optlab/numerics"
	"golang.org/x/exp/rand"
)

type HestonModel struct {
	HestonParams
}

func NewHestonModel(v0, kappa, theta, xi, rho float64) *HestonModel {
	return &HestonModel{HestonParams{
		V0:    v0,
		Kappa: kappa,
		Theta: theta,
		Xi:    xi,
		Rho:   rho,
	}}
}

// Steps is the number of daily steps simulated over t years.
func Steps(t float64) int {
	if t <= 0 {
		return 0
	}
	return int(math.Round(t * TradingDays))
}

// SimulatePrice evolves one path and returns its terminal price. Variance is
// updated first with full truncation, then the price uses the new variance.
func (h *HestonModel) SimulatePrice(s0, r, t float64, rng *rand.Rand) float64 {
	steps := Steps(t)
	dt := t / TradingDays
	sqrtDt := math.Sqrt(dt)
	rhoBar := math.Sqrt(1 - h.Rho*h.Rho)

	s := s0
	v := h.V0
	for i := 0; i < steps; i++ {
		dW1 := sqrtDt * rng.NormFloat64()
		dW2 := h.Rho*dW1 + rhoBar*sqrtDt*rng.NormFloat64()

		v = math.Max(v+h.Kappa*(h.Theta-v)*dt+h.Xi*numerics.SafeSqrt(v)*dW2, 0)
		s *= math.Exp((r-0.5*v)*dt + math.Sqrt(v)*dW1)
	}
	return s
}

// SimulatePricesBatch returns n terminal prices, path i landing in slot i.
func (h *HestonModel) SimulatePricesBatch(ctx context.Context, s0, r, t float64, n int, stream numerics.Stream) ([]float64, error) {
	results := make([]float64, max(n, 0))
	err := numerics.RunBlocks(ctx, n, stream, func(start, end int, rng *rand.Rand) {
		for j := start; j < end; j++ {
			results[j] = h.SimulatePrice(s0, r, t, rng)
		}
	})
	return results, err
}

// Price is the discounted mean payoff over paths simulated paths. It never
// fails: paths <= 0 prices at 0, and t <= 0 runs no steps, so the payoff is
// taken on the initial spot. No variance reduction is applied; the standard
// error shrinks as 1/sqrt(paths).
func (h *HestonModel) Price(c Contract, paths int, stream numerics.Stream) float64 {
	price, _ := h.PriceContext(context.Background(), c, paths, stream)
	return price
}

// PriceContext is Price with cancellation. The error is non-nil only when
// ctx ends before every path has been simulated.
func (h *HestonModel) PriceContext(ctx context.Context, c Contract, paths int, stream numerics.Stream) (float64, error) {
	if paths <= 0 {
		return 0, nil
	}
	prices, err := h.SimulatePricesBatch(ctx, c.Spot, c.Rate, c.T, paths, stream)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, st := range prices {
		sum += c.Kind.Payoff(st, c.Strike)
	}
	return math.Exp(-c.Rate*c.T) * sum / float64(paths), nil
}
