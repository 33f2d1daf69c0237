package ratecalc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chess-vn/slrating/pkg/rating"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Tau          float64
	DefaultState rating.State
	LogLevel     string
}

// NewFlagSet returns the command line flags LoadConfig understands.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to a yaml config file")
	flags.Float64("tau", rating.DefaultTau, "volatility change constraint")
	flags.String("log-level", "info", "log level")
	return flags
}

// LoadConfig reads configs/ratecalc/config.yaml (or --config), then
// RATECALC_* environment variables, then flags that were set explicitly.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("rating.tau", rating.DefaultTau)
	v.SetDefault("rating.default.rating", rating.DefaultRating)
	v.SetDefault("rating.default.rd", rating.DefaultDeviation)
	v.SetDefault("rating.default.volatility", rating.DefaultVolatility)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("RATECALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs/ratecalc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("tau"); f != nil && f.Changed {
			if err := v.BindPFlag("rating.tau", f); err != nil {
				return Config{}, err
			}
		}
		if f := flags.Lookup("log-level"); f != nil && f.Changed {
			if err := v.BindPFlag("log.level", f); err != nil {
				return Config{}, err
			}
		}
	}

	cfg := Config{
		Tau: v.GetFloat64("rating.tau"),
		DefaultState: rating.State{
			Rating:     v.GetFloat64("rating.default.rating"),
			Deviation:  v.GetFloat64("rating.default.rd"),
			Volatility: v.GetFloat64("rating.default.volatility"),
		},
		LogLevel: v.GetString("log.level"),
	}
	if _, err := rating.NewEngine(cfg.Tau); err != nil {
		return Config{}, err
	}
	// An idle update validates the default state without changing its rating.
	if _, err := rating.UpdateRating(cfg.DefaultState, nil, nil); err != nil {
		return Config{}, fmt.Errorf("invalid default rating: %w", err)
	}
	return cfg, nil
}
