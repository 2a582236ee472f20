package numerics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Epsilon is the floor applied to strictly positive pricing inputs.
const Epsilon = 1e-10

// NormCDF is the standard normal cumulative distribution function.
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// Floor clamps x to at least Epsilon. NaN is treated as non-positive.
func Floor(x float64) float64 {
	if math.IsNaN(x) || x < Epsilon {
		return Epsilon
	}
	return x
}

func SafeLog(x float64) float64 {
	return math.Log(Floor(x))
}

func SafeSqrt(x float64) float64 {
	return math.Sqrt(math.Max(x, 0))
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
