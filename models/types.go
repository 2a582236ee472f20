package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOptionKind = errors.New("invalid option kind")
	ErrInvalidContract   = errors.New("invalid contract")
)

type OptionKind int

const (
	Call OptionKind = iota
	Put
)

// ParseOptionKind validates a user supplied kind once at the boundary.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return Call, fmt.Errorf("%w: %q", ErrInvalidOptionKind, s)
}

func (k OptionKind) String() string {
	if k == Put {
		return "put"
	}
	return "call"
}

func (k OptionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OptionKind) UnmarshalText(b []byte) error {
	parsed, err := ParseOptionKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Payoff is the value at expiry for terminal price s.
func (k OptionKind) Payoff(s, strike float64) float64 {
	if k == Put {
		return max(strike-s, 0)
	}
	return max(s-strike, 0)
}

type Contract struct {
	Spot   float64    `json:"spot"`
	Strike float64    `json:"strike"`
	T      float64    `json:"t"`     // Years to maturity
	Rate   float64    `json:"rate"`  // Annual risk-free rate
	Sigma  float64    `json:"sigma"` // Annual volatility
	Kind   OptionKind `json:"kind"`
}

// Validate reports the first non-positive field. Pricers never call it; it
// exists for front ends that want to tell the user before the clamp applies.
func (c Contract) Validate() error {
	switch {
	case !(c.Spot > 0):
		return fmt.Errorf("%w: spot must be positive, got %g", ErrInvalidContract, c.Spot)
	case !(c.Strike > 0):
		return fmt.Errorf("%w: strike must be positive, got %g", ErrInvalidContract, c.Strike)
	case !(c.T > 0):
		return fmt.Errorf("%w: time to maturity must be positive, got %g", ErrInvalidContract, c.T)
	case !(c.Sigma > 0):
		return fmt.Errorf("%w: volatility must be positive, got %g", ErrInvalidContract, c.Sigma)
	}
	return nil
}

type HestonParams struct {
	V0    float64 `json:"v0"`    // Initial variance
	Kappa float64 `json:"kappa"` // Mean reversion speed of variance
	Theta float64 `json:"theta"` // Long-term variance
	Xi    float64 `json:"xi"`    // Volatility of variance
	Rho   float64 `json:"rho"`   // Correlation between asset returns and variance
}

type SABRParams struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"` // Elasticity, 0 normal to 1 lognormal
	Rho   float64 `json:"rho"`
	Nu    float64 `json:"nu"` // Volatility of volatility
}

type GreeksResult struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Dashboard defaults.
var (
	DefaultHeston = HestonParams{V0: 0.04, Kappa: 2.0, Theta: 0.04, Xi: 0.2, Rho: -0.7}
	DefaultSABR   = SABRParams{Alpha: 0.2, Beta: 0.5, Rho: -0.3, Nu: 0.4}
)

const (
	// TradingDays is the number of simulation steps per year.
	TradingDays = 252

	DefaultPaths = 10000
)
