package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bcdannyboy/optlab/models"
	"github.com/bcdannyboy/optlab/numerics"
	"github.com/bcdannyboy/optlab/tradier"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "OPTLAB"

type Config struct {
	Heston      models.HestonParams `mapstructure:"heston"`
	SABR        models.SABRParams   `mapstructure:"sabr"`
	Paths       int                 `mapstructure:"paths"`
	Simulations int                 `mapstructure:"simulations"`
	Confidence  float64             `mapstructure:"confidence"`
	Seed        uint64              `mapstructure:"seed"`
	LogLevel    string              `mapstructure:"log_level"`
	Tradier     TradierConfig       `mapstructure:"tradier"`
	Slack       SlackConfig         `mapstructure:"slack"`
	Dashboard   string              `mapstructure:"dashboard_file"`
}

type TradierConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type SlackConfig struct {
	AppToken string `mapstructure:"app_token"`
	BotToken string `mapstructure:"bot_token"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("heston.v0", models.DefaultHeston.V0)
	v.SetDefault("heston.kappa", models.DefaultHeston.Kappa)
	v.SetDefault("heston.theta", models.DefaultHeston.Theta)
	v.SetDefault("heston.xi", models.DefaultHeston.Xi)
	v.SetDefault("heston.rho", models.DefaultHeston.Rho)
	v.SetDefault("sabr.alpha", models.DefaultSABR.Alpha)
	v.SetDefault("sabr.beta", models.DefaultSABR.Beta)
	v.SetDefault("sabr.rho", models.DefaultSABR.Rho)
	v.SetDefault("sabr.nu", models.DefaultSABR.Nu)
	v.SetDefault("paths", models.DefaultPaths)
	v.SetDefault("simulations", 10000)
	v.SetDefault("confidence", 0.95)
	v.SetDefault("seed", numerics.DefaultSeed)
	v.SetDefault("log_level", "info")
	v.SetDefault("tradier.base_url", tradier.DefaultBaseURL)
	v.SetDefault("tradier.token", "")
	v.SetDefault("slack.app_token", "")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("dashboard_file", "dashboard_config.json")
}

// Load reads an optional .env file, an optional optlab.yaml (or the file at
// path when non-empty) and OPTLAB_* environment variables, in increasing
// order of precedence over the built-in defaults. The bare TRADIER_KEY,
// SLACK_APP_TOKEN and SLACK_BOT_TOKEN variables are honoured as well.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("tradier.token", EnvPrefix+"_TRADIER_TOKEN", "TRADIER_KEY")
	_ = v.BindEnv("slack.app_token", EnvPrefix+"_SLACK_APP_TOKEN", "SLACK_APP_TOKEN")
	_ = v.BindEnv("slack.bot_token", EnvPrefix+"_SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("optlab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	switch {
	case c.Paths <= 0:
		return fmt.Errorf("%w: paths must be positive", ErrInvalidConfig)
	case c.Simulations <= 0:
		return fmt.Errorf("%w: simulations must be positive", ErrInvalidConfig)
	case !(c.Confidence > 0 && c.Confidence < 1):
		return fmt.Errorf("%w: confidence must be in (0, 1)", ErrInvalidConfig)
	case c.Heston.Rho < -1 || c.Heston.Rho > 1:
		return fmt.Errorf("%w: heston.rho must be in [-1, 1]", ErrInvalidConfig)
	case c.SABR.Beta < 0 || c.SABR.Beta > 1:
		return fmt.Errorf("%w: sabr.beta must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Stream() numerics.Stream {
	return numerics.NewStream(c.Seed)
}

// Pricers returns Black-Scholes, Heston and SABR with the configured
// parameters, path count and seed.
func (c *Config) Pricers() []models.Pricer {
	return []models.Pricer{
		models.BlackScholes{},
		models.Heston{Model: models.HestonModel{HestonParams: c.Heston}, Paths: c.Paths, Stream: c.Stream()},
		models.SABR{Params: c.SABR},
	}
}
