package probability

import (
	"context"
	"math"

	"github.com/bcdannyboy/optlab/models"
	"github.com/bcdannyboy/optlab/numerics"
	"golang.org/x/exp/rand"
)

// SimulateTerminalPrices draws n geometric Brownian motion paths with daily
// steps of dt = t/252 and returns each path's terminal price. Path i always
// lands in slot i and draws its steps in order from its block's generator.
func SimulateTerminalPrices(ctx context.Context, s0, r, sigma, t float64, n int, stream numerics.Stream) ([]float64, error) {
	steps := models.Steps(t)
	dt := t / models.TradingDays
	drift := (r - 0.5*sigma*sigma) * dt
	diffusion := sigma * math.Sqrt(dt)

	terminal := make([]float64, max(n, 0))
	err := numerics.RunBlocks(ctx, n, stream, func(start, end int, rng *rand.Rand) {
		for i := start; i < end; i++ {
			logS := 0.0
			for j := 0; j < steps; j++ {
				logS += drift + diffusion*rng.NormFloat64()
			}
			terminal[i] = s0 * math.Exp(logS)
		}
	})
	return terminal, err
}
