package models

import (
	"github.com/bcdannyboy/optlab/numerics"
)

// Pricer prices a contract under one model.
type Pricer interface {
	Name() string
	Price(c Contract) float64
}

type BlackScholes struct{}

func (BlackScholes) Name() string { return "Black-Scholes" }

func (BlackScholes) Price(c Contract) float64 { return BlackScholesPrice(c) }

// Heston prices with a fixed path count and seed, so repeated calls on the
// same contract return the same number.
type Heston struct {
	Model  HestonModel
	Paths  int
	Stream numerics.Stream
}

func (Heston) Name() string { return "Heston" }

func (h Heston) Price(c Contract) float64 {
	return h.Model.Price(c, h.Paths, h.Stream)
}

type SABR struct {
	Params SABRParams
}

func (SABR) Name() string { return "SABR" }

func (s SABR) Price(c Contract) float64 { return SABRPriceContract(c, s.Params) }

type ModelPrice struct {
	Model string  `json:"model"`
	Price float64 `json:"price"`
}

// Compare prices c under every pricer, in argument order.
func Compare(c Contract, pricers ...Pricer) []ModelPrice {
	out := make([]ModelPrice, 0, len(pricers))
	for _, p := range pricers {
		out = append(out, ModelPrice{Model: p.Name(), Price: p.Price(c)})
	}
	return out
}

// DefaultPricers are the three dashboard models with their default
// parameters.
func DefaultPricers(seed uint64) []Pricer {
	return []Pricer{
		BlackScholes{},
		Heston{Model: HestonModel{DefaultHeston}, Paths: DefaultPaths, Stream: numerics.NewStream(seed)},
		SABR{Params: DefaultSABR},
	}
}
