package positions

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bcdannyboy/optlab/models"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// StrangleWidth is the distance of each strangle strike from the center.
const StrangleWidth = 10.0

// PnL evaluates the position at expiry for every terminal price.
func (p Position) PnL(spots []float64) []float64 {
	pnl := make([]float64, len(spots))
	for i, s := range spots {
		for _, leg := range p.Legs {
			pnl[i] += leg.PnL(s)
		}
	}
	return pnl
}

// Summarize reports the extremes of the position over spots and the
// interpolated prices where P&L crosses zero. spots must be ascending.
func (p Position) Summarize(spots []float64) Summary {
	pnl := p.PnL(spots)
	sum := Summary{MaxProfit: math.Inf(-1), MaxLoss: math.Inf(1)}
	for i, v := range pnl {
		sum.MaxProfit = math.Max(sum.MaxProfit, v)
		sum.MaxLoss = math.Min(sum.MaxLoss, v)
		if v == 0 {
			sum.Breakevens = append(sum.Breakevens, spots[i])
			continue
		}
		if i > 0 && pnl[i-1] != 0 && (pnl[i-1] < 0) != (v < 0) {
			prev := pnl[i-1]
			w := prev / (prev - v)
			sum.Breakevens = append(sum.Breakevens, spots[i-1]+w*(spots[i]-spots[i-1]))
		}
	}
	if len(pnl) == 0 {
		sum.MaxProfit, sum.MaxLoss = 0, 0
	}
	return sum
}

// Single is one long option bought at premium.
func Single(kind models.OptionKind, strike, premium float64) Position {
	return Position{
		Name: "long " + kind.String(),
		Legs: []Leg{{Kind: kind, Strike: strike, Premium: premium, Quantity: 1}},
	}
}

// Straddle is a long call and a long put at the same strike.
func Straddle(strike, callPremium, putPremium float64) Position {
	return Position{
		Name: "straddle",
		Legs: []Leg{
			{Kind: models.Call, Strike: strike, Premium: callPremium, Quantity: 1},
			{Kind: models.Put, Strike: strike, Premium: putPremium, Quantity: 1},
		},
	}
}

// Strangle is a long call StrangleWidth above center and a long put
// StrangleWidth below it.
func Strangle(center, callPremium, putPremium float64) Position {
	return Position{
		Name: "strangle",
		Legs: []Leg{
			{Kind: models.Call, Strike: center + StrangleWidth, Premium: callPremium, Quantity: 1},
			{Kind: models.Put, Strike: center - StrangleWidth, Premium: putPremium, Quantity: 1},
		},
	}
}

// BullPut sells the higher strike put and buys the lower strike put for a
// net credit.
func BullPut(shortStrike, longStrike, shortPremium, longPremium float64) Position {
	return Position{
		Name: "bull put",
		Legs: []Leg{
			{Kind: models.Put, Strike: shortStrike, Premium: shortPremium, Quantity: -1},
			{Kind: models.Put, Strike: longStrike, Premium: longPremium, Quantity: 1},
		},
	}
}

// BearCall sells the lower strike call and buys the higher strike call.
func BearCall(shortStrike, longStrike, shortPremium, longPremium float64) Position {
	return Position{
		Name: "bear call",
		Legs: []Leg{
			{Kind: models.Call, Strike: shortStrike, Premium: shortPremium, Quantity: -1},
			{Kind: models.Call, Strike: longStrike, Premium: longPremium, Quantity: 1},
		},
	}
}

// Credit is the net premium received when opening the position.
func (p Position) Credit() float64 {
	credit := 0.0
	for _, leg := range p.Legs {
		credit -= leg.Quantity * leg.Premium
	}
	return credit
}

// Build constructs a named strategy around contract c, pricing every leg
// with pricer. Spreads use strikes c.Strike and c.Strike -/+ width.
func Build(name string, c models.Contract, pricer models.Pricer, width float64) (Position, error) {
	at := func(kind models.OptionKind, strike float64) float64 {
		leg := c
		leg.Kind, leg.Strike = kind, strike
		return pricer.Price(leg)
	}
	k := c.Strike
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "call":
		return Single(models.Call, k, at(models.Call, k)), nil
	case "put":
		return Single(models.Put, k, at(models.Put, k)), nil
	case "straddle":
		return Straddle(k, at(models.Call, k), at(models.Put, k)), nil
	case "strangle":
		return Strangle(k, at(models.Call, k+StrangleWidth), at(models.Put, k-StrangleWidth)), nil
	case "bullput", "bull-put", "bull put":
		return BullPut(k, k-width, at(models.Put, k), at(models.Put, k-width)), nil
	case "bearcall", "bear-call", "bear call":
		return BearCall(k, k+width, at(models.Call, k), at(models.Call, k+width)), nil
	}
	return Position{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
