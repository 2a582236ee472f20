package numerics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormCDF(0), 1e-12)
	assert.InDelta(t, 0.975002104851780, NormCDF(1.96), 1e-9)
	assert.InDelta(t, 1-NormCDF(1.3), NormCDF(-1.3), 1e-12)
}

func TestNormPDF(t *testing.T) {
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), NormPDF(0), 1e-12)
	assert.InDelta(t, NormPDF(0.7), NormPDF(-0.7), 1e-15)
}

func TestFloor(t *testing.T) {
	assert.Equal(t, Epsilon, Floor(0))
	assert.Equal(t, Epsilon, Floor(-3))
	assert.Equal(t, Epsilon, Floor(math.NaN()))
	assert.Equal(t, 2.5, Floor(2.5))
}

func TestSafeHelpers(t *testing.T) {
	assert.Equal(t, 0.0, SafeSqrt(-4))
	assert.Equal(t, 3.0, SafeSqrt(9))
	assert.InDelta(t, math.Log(Epsilon), SafeLog(0), 1e-12)
}

func TestLinspace(t *testing.T) {
	xs := Linspace(0, 1, 5)
	require.Len(t, xs, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs)
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}
