package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/bcdannyboy/optlab/config"
	"github.com/bcdannyboy/optlab/models"
	"github.com/bcdannyboy/optlab/numerics"
	"github.com/bcdannyboy/optlab/positions"
	"github.com/bcdannyboy/optlab/probability"
	optlabslack "github.com/bcdannyboy/optlab/slack"
	"github.com/bcdannyboy/optlab/tradier"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
	"go.uber.org/zap"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

type command func(ctx context.Context, args []string) error

func (a *app) commands() map[string]command {
	return map[string]command{
		"price":    a.price,
		"greeks":   a.greeks,
		"iv":       a.impliedVol,
		"risk":     a.risk,
		"compare":  a.compare,
		"surface":  a.surface,
		"strategy": a.strategy,
		"history":  a.history,
		"bot":      a.bot,
	}
}

// contractFlags registers the shared contract inputs. Unset flags fall back
// to the values last saved in the dashboard file, then to the dashboard's
// own defaults.
type contractFlags struct {
	spot, strike, t, rate, sigma *float64
	kind                         *string
	save                         *bool
}

func (a *app) contractFlags(fs *flag.FlagSet) contractFlags {
	d, err := config.LoadDashboard(a.cfg.Dashboard)
	if err != nil {
		a.logger.Warn("ignoring dashboard file", zap.String("path", a.cfg.Dashboard), zap.Error(err))
		d = config.Dashboard{}
	}
	return contractFlags{
		spot:   fs.Float64("spot", d.Float("spot", 100), "current spot price"),
		strike: fs.Float64("strike", d.Float("strike", 100), "strike price"),
		t:      fs.Float64("t", d.Float("t", 1), "years to maturity"),
		rate:   fs.Float64("rate", d.Float("rate", 0.05), "annual risk-free rate"),
		sigma:  fs.Float64("sigma", d.Float("sigma", 0.2), "annual volatility"),
		kind:   fs.String("kind", d.String("kind", "call"), "call or put"),
		save:   fs.Bool("save", false, "remember these inputs in the dashboard file"),
	}
}

func (cf contractFlags) contract(a *app) (models.Contract, error) {
	kind, err := models.ParseOptionKind(*cf.kind)
	if err != nil {
		return models.Contract{}, err
	}
	c := models.Contract{Spot: *cf.spot, Strike: *cf.strike, T: *cf.t, Rate: *cf.rate, Sigma: *cf.sigma, Kind: kind}
	if err := c.Validate(); err != nil {
		return models.Contract{}, err
	}
	if *cf.save {
		if err := a.saveContract(c); err != nil {
			return models.Contract{}, err
		}
	}
	return c, nil
}

func (a *app) saveContract(c models.Contract) error {
	return config.UpdateDashboard(a.cfg.Dashboard, config.Dashboard{
		"spot":   c.Spot,
		"strike": c.Strike,
		"t":      c.T,
		"rate":   c.Rate,
		"sigma":  c.Sigma,
		"kind":   c.Kind.String(),
	})
}

func (a *app) pricer(name string) (models.Pricer, error) {
	pricers := a.cfg.Pricers()
	switch strings.ToLower(name) {
	case "bs", "black-scholes", "blackscholes":
		return pricers[0], nil
	case "heston":
		return pricers[1], nil
	case "sabr":
		return pricers[2], nil
	}
	return nil, fmt.Errorf("%w: unknown model %q", errUsage, name)
}

func (a *app) writeJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) price(ctx context.Context, args []string) error {
	fs := a.flagSet("price")
	cf := a.contractFlags(fs)
	model := fs.String("model", "bs", "bs, heston or sabr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	p, err := a.pricer(*model)
	if err != nil {
		return err
	}

	var price float64
	if h, ok := p.(models.Heston); ok {
		if price, err = h.Model.PriceContext(ctx, c, h.Paths, h.Stream); err != nil {
			return err
		}
	} else {
		price = p.Price(c)
	}
	return a.writeJSON(struct {
		Contract models.Contract `json:"contract"`
		models.ModelPrice
	}{c, models.ModelPrice{Model: p.Name(), Price: price}})
}

func (a *app) greeks(_ context.Context, args []string) error {
	fs := a.flagSet("greeks")
	cf := a.contractFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	return a.writeJSON(models.GreeksFor(c))
}

func (a *app) impliedVol(_ context.Context, args []string) error {
	fs := a.flagSet("iv")
	cf := a.contractFlags(fs)
	target := fs.Float64("price", 0, "observed option price")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	iv, err := models.ImpliedVolatility(*target, c)
	if err != nil {
		return err
	}
	return a.writeJSON(map[string]float64{"implied_volatility": iv})
}

func (a *app) risk(ctx context.Context, args []string) error {
	fs := a.flagSet("risk")
	cf := a.contractFlags(fs)
	confidence := fs.Float64("confidence", a.cfg.Confidence, "VaR confidence level")
	sims := fs.Int("simulations", a.cfg.Simulations, "number of simulated paths")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := probability.EstimateContext(ctx, probability.RiskRequest{
		Contract:    c,
		Confidence:  *confidence,
		Simulations: *sims,
	}, a.cfg.Stream())
	if err != nil {
		return err
	}
	a.logger.Info("risk estimated",
		zap.Int("simulations", *sims),
		zap.Int("workers", numerics.Workers()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Stringer("reason", res.Reason))
	return a.writeJSON(res)
}

func (a *app) compare(_ context.Context, args []string) error {
	fs := a.flagSet("compare")
	cf := a.contractFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	return a.writeJSON(models.Compare(c, a.cfg.Pricers()...))
}

func (a *app) surface(ctx context.Context, args []string) error {
	fs := a.flagSet("surface")
	cf := a.contractFlags(fs)
	model := fs.String("model", "bs", "bs, heston or sabr")
	out := fs.String("out", "surface.json", "output file")
	atSpot := fs.Float64("at-spot", 0, "print the interpolated price at this spot")
	atSigma := fs.Float64("at-sigma", 0, "volatility for -at-spot (default -sigma)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	p, err := a.pricer(*model)
	if err != nil {
		return err
	}

	spots, vols := models.DefaultSurfaceAxes(c)
	progress := mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(a.stderr))
	bar := progress.AddBar(int64(len(vols)),
		mpb.PrependDecorators(
			decor.Name(p.Name()),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	surface, err := models.BuildSurface(ctx, c, spots, vols, p, func(int) { bar.Increment() })
	if err != nil {
		bar.Abort(false)
		progress.Wait()
		return err
	}
	progress.Wait()

	data, err := json.Marshal(surface)
	if err != nil {
		return fmt.Errorf("failed to encode surface: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	a.logger.Info("wrote surface", zap.String("path", *out), zap.Int("spots", len(spots)), zap.Int("vols", len(vols)))

	if *atSpot <= 0 {
		return nil
	}
	sigma := *atSigma
	if sigma <= 0 {
		sigma = c.Sigma
	}
	return a.writeJSON(map[string]float64{"spot": *atSpot, "sigma": sigma, "price": surface.At(*atSpot, sigma)})
}

func (a *app) strategy(_ context.Context, args []string) error {
	fs := a.flagSet("strategy")
	cf := a.contractFlags(fs)
	name := fs.String("name", "straddle", "call, put, straddle, strangle, bullput or bearcall")
	model := fs.String("model", "bs", "bs, heston or sabr")
	width := fs.Float64("width", 5, "spread width for credit spreads")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := cf.contract(a)
	if err != nil {
		return err
	}
	p, err := a.pricer(*model)
	if err != nil {
		return err
	}
	pos, err := positions.Build(*name, c, p, *width)
	if err != nil {
		return err
	}

	spots := numerics.Linspace(math.Max(numerics.Epsilon, c.Spot*0.5), c.Spot*1.5, 101)
	return a.writeJSON(struct {
		positions.Position
		Credit  float64           `json:"credit"`
		Summary positions.Summary `json:"summary"`
	}{pos, pos.Credit(), pos.Summarize(spots)})
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := a.flagSet("history")
	symbol := fs.String("symbol", "SPY", "ticker symbol")
	years := fs.Int("years", 1, "years of daily history to fetch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.cfg.Tradier.Token == "" {
		return fmt.Errorf("%w: history needs a Tradier token (TRADIER_KEY)", errUsage)
	}

	client := tradier.NewClient(a.cfg.Tradier.Token, a.logger.Named("tradier"))
	client.BaseURL = a.cfg.Tradier.BaseURL
	end := time.Now()
	quotes, err := client.GetQuotes(ctx, *symbol, end.AddDate(-*years, 0, 0), end, "daily")
	if err != nil {
		return err
	}

	garch, err := models.GARCHVolatility(quotes, a.cfg.Stream())
	if err != nil {
		a.logger.Warn("skipping GARCH volatility", zap.String("symbol", *symbol), zap.Error(err))
	}

	return a.writeJSON(struct {
		Symbol       string             `json:"symbol"`
		Days         int                `json:"days"`
		LastClose    float64            `json:"last_close"`
		CloseToClose float64            `json:"close_to_close"`
		GarmanKlass  map[string]float64 `json:"garman_klass"`
		Parkinson    map[string]float64 `json:"parkinson"`
		Rogers       map[string]float64 `json:"rogers_satchell"`
		YangZhang    map[string]float64 `json:"yang_zhang"`
		GARCH        float64            `json:"garch,omitempty"`
	}{
		Symbol:       *symbol,
		Days:         len(quotes.Days()),
		LastClose:    quotes.Last(),
		CloseToClose: models.CloseToCloseVolatility(quotes),
		GarmanKlass:  models.GarmanKlassVolatilities(quotes),
		Parkinson:    models.ParkinsonVolatilities(quotes),
		Rogers:       models.RogersSatchellVolatilities(quotes),
		YangZhang:    models.YangZhangVolatilities(quotes),
		GARCH:        garch,
	})
}

func (a *app) bot(ctx context.Context, args []string) error {
	fs := a.flagSet("bot")
	if err := fs.Parse(args); err != nil {
		return err
	}
	b, err := optlabslack.NewBot(a.cfg, a.logger.Named("slack"))
	if err != nil {
		return err
	}
	a.logger.Info("slack bot starting")
	return b.Run(ctx)
}
