package models

import (
	"math"
	"testing"

	"github.com/bcdannyboy/optlab/tradier"
	"github.com/stretchr/testify/assert"
)

func flatHistory(n int, high, low float64) *tradier.QuoteHistory {
	h := &tradier.QuoteHistory{}
	for i := 0; i < n; i++ {
		h.History.Day = append(h.History.Day, tradier.Quote{Open: 100, High: high, Low: low, Close: 100})
	}
	return h
}

func TestParkinsonVolatilities(t *testing.T) {
	h := flatHistory(30, 101, 99)
	got := ParkinsonVolatilities(h)

	lr := math.Log(101.0 / 99.0)
	want := math.Sqrt(lr*lr/(4*math.Log(2))) * math.Sqrt(252)
	assert.InDelta(t, want, got["1w"], 1e-12)
	assert.InDelta(t, want, got["1m"], 1e-12)
	assert.NotContains(t, got, "3m")
}

func TestGarmanKlassVolatilities(t *testing.T) {
	h := flatHistory(70, 102, 98)
	got := GarmanKlassVolatilities(h)

	lr := math.Log(102.0 / 98.0)
	want := math.Sqrt(0.5 * lr * lr * 252)
	assert.InDelta(t, want, got["3m"], 1e-12)
	assert.NotContains(t, got, "6m")
}

func TestCloseToCloseVolatility(t *testing.T) {
	assert.Equal(t, 0.0, CloseToCloseVolatility(flatHistory(2, 1, 1)))
	// Constant closes have zero dispersion.
	assert.Equal(t, 0.0, CloseToCloseVolatility(flatHistory(10, 1, 1)))

	h := &tradier.QuoteHistory{}
	for _, c := range []float64{100, 101, 100, 101, 100} {
		h.History.Day = append(h.History.Day, tradier.Quote{Close: c})
	}
	assert.Greater(t, CloseToCloseVolatility(h), 0.0)
}

func TestRogersSatchellAndYangZhang(t *testing.T) {
	h := flatHistory(25, 101, 99)
	hi, lo := math.Log(101.0/100.0), math.Log(99.0/100.0)
	rs := hi*hi + lo*lo

	got := RogersSatchellVolatilities(h)
	assert.InDelta(t, math.Sqrt(rs*252), got["1w"], 1e-12)
	assert.InDelta(t, math.Sqrt(rs*252), got["1m"], 1e-12)

	// Flat opens and closes leave only the Rogers-Satchell share.
	k := 0.34 / (1.34 + 6.0/4.0)
	yz := YangZhangVolatilities(h)
	assert.InDelta(t, math.Sqrt((1-k)*rs*252), yz["1w"], 1e-12)
	assert.NotContains(t, yz, "3m")
}
