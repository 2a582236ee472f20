package models

import (
	"math"

	"github.com/bcdannyboy/optlab/tradier"
	"gonum.org/v1/gonum/stat"
)

// Period is a named trailing window of trading days.
type Period struct {
	Name string
	Days int
}

var RealizedVolPeriods = []Period{
	{"1w", 5},
	{"1m", 21},
	{"3m", 63},
	{"6m", 126},
	{"1y", 252},
}

// GarmanKlassVolatilities returns annualized Garman-Klass volatility for
// every period the history is long enough to cover.
func GarmanKlassVolatilities(history *tradier.QuoteHistory) map[string]float64 {
	return byPeriod(history, func(days []tradier.Quote) float64 {
		sum := 0.0
		for _, d := range days {
			hl := 0.5 * math.Pow(math.Log(d.High/d.Low), 2)
			co := (2*math.Log(2) - 1) * math.Pow(math.Log(d.Close/d.Open), 2)
			sum += hl - co
		}
		return math.Sqrt(sum / float64(len(days)) * TradingDays)
	})
}

// ParkinsonVolatilities returns annualized Parkinson high-low volatility.
func ParkinsonVolatilities(history *tradier.QuoteHistory) map[string]float64 {
	return byPeriod(history, func(days []tradier.Quote) float64 {
		sum := 0.0
		for _, d := range days {
			sum += math.Pow(math.Log(d.High/d.Low), 2)
		}
		return math.Sqrt(sum/(4*float64(len(days))*math.Log(2))) * math.Sqrt(TradingDays)
	})
}

// CloseToCloseVolatility is the annualized sample deviation of daily log
// returns over the whole history.
func CloseToCloseVolatility(history *tradier.QuoteHistory) float64 {
	returns := LogReturns(history)
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDays)
}

func byPeriod(history *tradier.QuoteHistory, estimate func([]tradier.Quote) float64) map[string]float64 {
	results := make(map[string]float64)
	all := history.Days()
	for _, period := range RealizedVolPeriods {
		if len(all) < period.Days {
			continue
		}
		if v := estimate(all[len(all)-period.Days:]); v > 0 && !math.IsNaN(v) {
			results[period.Name] = v
		}
	}
	return results
}

// RogersSatchellVolatilities returns annualized Rogers-Satchell volatility,
// which stays unbiased under a drifting price.
func RogersSatchellVolatilities(history *tradier.QuoteHistory) map[string]float64 {
	return byPeriod(history, func(days []tradier.Quote) float64 {
		return math.Sqrt(rogersSatchellVariance(days) * TradingDays)
	})
}

// YangZhangVolatilities combines overnight, open-to-close and
// Rogers-Satchell variance. Periods shorter than two days are skipped.
func YangZhangVolatilities(history *tradier.QuoteHistory) map[string]float64 {
	return byPeriod(history, func(days []tradier.Quote) float64 {
		n := float64(len(days))
		if n < 2 {
			return 0
		}
		overnight := make([]float64, 0, len(days)-1)
		openClose := make([]float64, 0, len(days))
		for i, d := range days {
			if i > 0 {
				overnight = append(overnight, math.Log(d.Open/days[i-1].Close))
			}
			openClose = append(openClose, math.Log(d.Close/d.Open))
		}

		k := 0.34 / (1.34 + (n+1)/(n-1))
		variance := stat.Variance(overnight, nil) + k*stat.Variance(openClose, nil) + (1-k)*rogersSatchellVariance(days)
		return math.Sqrt(variance * TradingDays)
	})
}

// rogersSatchellVariance is the mean daily Rogers-Satchell variance.
func rogersSatchellVariance(days []tradier.Quote) float64 {
	sum := 0.0
	for _, d := range days {
		sum += math.Log(d.High/d.Close)*math.Log(d.High/d.Open) +
			math.Log(d.Low/d.Close)*math.Log(d.Low/d.Open)
	}
	return sum / float64(len(days))
}
