package optlabslack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bcdannyboy/optlab/config"
	"github.com/bcdannyboy/optlab/models"
	"github.com/bcdannyboy/optlab/probability"
	"github.com/slack-go/slack"
)

var ErrUsage = errors.New("usage")

const contractUsage = "<spot> <strike> <years> <rate> <sigma> [call|put]"

const helpText = "Available commands:\n" +
	"/help - Show this help message\n" +
	"/price " + contractUsage + " - Black-Scholes price\n" +
	"/greeks " + contractUsage + " - Delta, gamma, theta, vega, rho\n" +
	"/risk " + contractUsage + " [confidence] - Monte Carlo VaR and ES\n" +
	"/compare " + contractUsage + " - Black-Scholes, Heston and SABR side by side"

// Commands turns slash commands into reply text. It holds no Slack
// connection so it can run without one.
type Commands struct {
	cfg *config.Config
}

func NewCommands(cfg *config.Config) *Commands {
	return &Commands{cfg: cfg}
}

// Dispatch runs one slash command. Usage errors wrap ErrUsage and carry the
// text to show the user.
func (c *Commands) Dispatch(ctx context.Context, cmd slack.SlashCommand) (string, error) {
	args := strings.Fields(cmd.Text)
	switch cmd.Command {
	case "/help":
		return helpText, nil
	case "/price":
		ct, _, err := parseContract(cmd.Command, args, 0)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s price: %.4f", ct.Kind, models.BlackScholesPrice(ct)), nil
	case "/greeks":
		ct, _, err := parseContract(cmd.Command, args, 0)
		if err != nil {
			return "", err
		}
		return formatGreeks(models.GreeksFor(ct)), nil
	case "/risk":
		ct, rest, err := parseContract(cmd.Command, args, 1)
		if err != nil {
			return "", err
		}
		confidence := c.cfg.Confidence
		if len(rest) == 1 {
			if confidence, err = strconv.ParseFloat(rest[0], 64); err != nil {
				return "", fmt.Errorf("%w: /risk %s [confidence]: bad confidence %q", ErrUsage, contractUsage, rest[0])
			}
		}
		return c.risk(ctx, ct, confidence)
	case "/compare":
		ct, _, err := parseContract(cmd.Command, args, 0)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, mp := range models.Compare(ct, c.cfg.Pricers()...) {
			fmt.Fprintf(&b, "%-14s %.4f\n", mp.Model, mp.Price)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", fmt.Errorf("%w: unknown command %s, try /help", ErrUsage, cmd.Command)
}

func (c *Commands) risk(ctx context.Context, ct models.Contract, confidence float64) (string, error) {
	res, err := probability.EstimateContext(ctx, probability.RiskRequest{
		Contract:    ct,
		Confidence:  confidence,
		Simulations: c.cfg.Simulations,
	}, c.cfg.Stream())
	if err != nil {
		return "", err
	}
	if !res.IsDefined() {
		return fmt.Sprintf("Risk undefined: %s", res.Reason), nil
	}
	return fmt.Sprintf("VaR(%.0f%%): %.4f\nES: %.4f", confidence*100, res.VaR, res.ES), nil
}

func formatGreeks(g models.GreeksResult) string {
	return fmt.Sprintf("Delta: %.4f\nGamma: %.4f\nTheta: %.4f\nVega: %.4f\nRho: %.4f",
		g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho)
}

// parseContract reads the five numeric fields and an optional kind, leaving
// up to extra trailing arguments for the caller.
func parseContract(command string, args []string, extra int) (models.Contract, []string, error) {
	usage := fmt.Errorf("%w: %s %s", ErrUsage, command, contractUsage)
	if len(args) < 5 || len(args) > 6+extra {
		return models.Contract{}, nil, usage
	}

	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return models.Contract{}, nil, fmt.Errorf("%w: bad number %q", usage, args[i])
		}
		vals[i] = v
	}

	ct := models.Contract{Spot: vals[0], Strike: vals[1], T: vals[2], Rate: vals[3], Sigma: vals[4], Kind: models.Call}
	rest := args[5:]
	if len(rest) > 0 {
		if kind, err := models.ParseOptionKind(rest[0]); err == nil {
			ct.Kind = kind
			rest = rest[1:]
		}
	}
	if len(rest) > extra {
		return models.Contract{}, nil, usage
	}
	if err := ct.Validate(); err != nil {
		return models.Contract{}, nil, err
	}
	return ct, rest, nil
}
