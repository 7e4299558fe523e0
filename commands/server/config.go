package server

import (
	"flag"
	"path/filepath"

	"github.com/iov-one/custody/errors"
	"github.com/spf13/viper"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"

	envPrefix  = "CUSTODY"
	configName = "config"
)

// Config holds the daemon settings. Values are read from <home>/config.toml,
// then from CUSTODY_ prefixed environment variables, then from the command
// line flags. Later sources win.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string
	// Debug returns full error information, including stack traces, to
	// the clients.
	Debug bool
	// Metrics is the address of the HTTP server exposing /metrics and
	// /healthcheck. Empty disables it.
	Metrics string
}

// LoadConfig builds the daemon configuration for the given home directory
// and start command arguments. A missing config file is not an error.
func LoadConfig(home string, args []string) (Config, error) {
	v := viper.New()
	v.SetDefault(flagBind, "tcp://localhost:26658")
	v.SetDefault(flagDebug, false)
	v.SetDefault(flagMetrics, "localhost:26660")

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, errors.Wrapf(errors.ErrInvalidInput, "cannot read %s: %s",
				filepath.Join(home, configName+".toml"), err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.String(flagBind, v.GetString(flagBind), "address server listens on")
	startFlags.Bool(flagDebug, v.GetBool(flagDebug), "call stack returned on error")
	startFlags.String(flagMetrics, v.GetString(flagMetrics), "address of the metrics server, empty to disable")
	if err := startFlags.Parse(args); err != nil {
		return Config{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	// Only flags given explicitly override the other sources.
	startFlags.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	return Config{
		Bind:    v.GetString(flagBind),
		Debug:   v.GetBool(flagDebug),
		Metrics: v.GetString(flagMetrics),
	}, nil
}
