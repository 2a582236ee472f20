package models

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/bcdannyboy/optlab/numerics"
)

var ErrEmptySurface = errors.New("surface axes must be non-empty")

// PriceSurface holds Prices[i][j] for volatility Vols[i] and spot Spots[j].
// Both axes are ascending.
type PriceSurface struct {
	Model  string      `json:"model"`
	Spots  []float64   `json:"spots"`
	Vols   []float64   `json:"vols"`
	Prices [][]float64 `json:"prices"`
}

// DefaultSurfaceAxes mirrors the dashboard heatmap: 50 spots within 50 of
// the current spot (never below 10), 50 vols within 0.2 of the current vol
// (never below 0.05).
func DefaultSurfaceAxes(c Contract) (spots, vols []float64) {
	spots = numerics.Linspace(math.Max(10, c.Spot-50), c.Spot+50, 50)
	vols = numerics.Linspace(math.Max(0.05, c.Sigma-0.2), c.Sigma+0.2, 50)
	return spots, vols
}

// BuildSurface reprices c over the spot/vol grid. progress, when non-nil,
// is called after each completed vol row.
func BuildSurface(ctx context.Context, c Contract, spots, vols []float64, p Pricer, progress func(row int)) (PriceSurface, error) {
	if len(spots) == 0 || len(vols) == 0 {
		return PriceSurface{}, ErrEmptySurface
	}
	surface := PriceSurface{
		Model:  p.Name(),
		Spots:  append([]float64(nil), spots...),
		Vols:   append([]float64(nil), vols...),
		Prices: make([][]float64, len(vols)),
	}
	sort.Float64s(surface.Spots)
	sort.Float64s(surface.Vols)

	for i, sigma := range surface.Vols {
		if err := ctx.Err(); err != nil {
			return PriceSurface{}, err
		}
		row := make([]float64, len(surface.Spots))
		for j, s := range surface.Spots {
			point := c
			point.Spot, point.Sigma = s, sigma
			row[j] = p.Price(point)
		}
		surface.Prices[i] = row
		if progress != nil {
			progress(i)
		}
	}
	return surface, nil
}

// At reads the surface at (spot, sigma) by bilinear interpolation, holding
// the nearest edge value outside the grid.
func (ps PriceSurface) At(spot, sigma float64) float64 {
	if len(ps.Spots) == 0 || len(ps.Vols) == 0 {
		return 0
	}
	i0, i1, xv := bracket(ps.Vols, sigma)
	j0, j1, xs := bracket(ps.Spots, spot)

	v00 := ps.Prices[i0][j0]
	v01 := ps.Prices[i0][j1]
	v10 := ps.Prices[i1][j0]
	v11 := ps.Prices[i1][j1]

	return (1-xv)*(1-xs)*v00 + xv*(1-xs)*v10 + (1-xv)*xs*v01 + xv*xs*v11
}

// bracket finds neighbours of x in ascending axis and the weight of the
// upper one.
func bracket(axis []float64, x float64) (lo, hi int, w float64) {
	n := len(axis)
	if n == 1 || x <= axis[0] {
		return 0, 0, 0
	}
	if x >= axis[n-1] {
		return n - 1, n - 1, 0
	}
	hi = sort.SearchFloat64s(axis, x)
	lo = hi - 1
	return lo, hi, (x - axis[lo]) / (axis[hi] - axis[lo])
}
