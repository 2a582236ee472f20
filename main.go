package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcdannyboy/optlab/config"
	"go.uber.org/zap"
)

const usage = `usage: optlab [-config file] [-debug] <command> [flags]

commands:
  price     price one contract under a model
  greeks    analytic Greeks
  iv        implied volatility from a market price
  risk      Monte Carlo VaR and expected shortfall
  compare   Black-Scholes, Heston and SABR side by side
  surface   price surface over spot and volatility
  strategy  expiry P&L of a multi-leg strategy
  history   realized volatility from Tradier price history
  bot       serve slash commands over Slack socket mode
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "optlab:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("optlab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configFile := fs.String("config", "", "config file (default ./optlab.yaml if present)")
	debug := fs.Bool("debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	app := &app{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := app.commands()[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	logger.Debug("running command", zap.String("command", name), zap.Strings("args", rest))
	return cmd(ctx, rest)
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	} else if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
