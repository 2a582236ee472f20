package positions

import "github.com/bcdannyboy/optlab/models"

// Leg is one option in a position. Quantity is positive for long legs and
// negative for short legs; Premium is the price paid per unit.
type Leg struct {
	Kind     models.OptionKind `json:"kind"`
	Strike   float64           `json:"strike"`
	Premium  float64           `json:"premium"`
	Quantity float64           `json:"quantity"`
}

// PnL is the leg's profit at expiry for terminal price s.
func (l Leg) PnL(s float64) float64 {
	return l.Quantity * (l.Kind.Payoff(s, l.Strike) - l.Premium)
}

type Position struct {
	Name string `json:"name"`
	Legs []Leg  `json:"legs"`
}

type Summary struct {
	MaxProfit  float64   `json:"max_profit"`
	MaxLoss    float64   `json:"max_loss"`
	Breakevens []float64 `json:"breakevens"`
}
