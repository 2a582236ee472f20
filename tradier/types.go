package tradier

// Quote is one bar of daily price history.
type Quote struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int     `json:"volume"`
}

type QuoteHistory struct {
	History struct {
		Day []Quote `json:"day"`
	} `json:"history"`
}

// Days returns the bars oldest first.
func (q *QuoteHistory) Days() []Quote {
	if q == nil {
		return nil
	}
	return q.History.Day
}

// Closes returns the closing prices oldest first.
func (q *QuoteHistory) Closes() []float64 {
	days := q.Days()
	closes := make([]float64, len(days))
	for i, d := range days {
		closes[i] = d.Close
	}
	return closes
}

// Last returns the most recent close, or 0 when there is no history.
func (q *QuoteHistory) Last() float64 {
	days := q.Days()
	if len(days) == 0 {
		return 0
	}
	return days[len(days)-1].Close
}
