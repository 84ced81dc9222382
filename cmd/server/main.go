// Command server runs the MovieDB REST API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/di"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	fs := pflag.NewFlagSet("moviedb-api", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "config file (default: search ./config.yaml, ./config/config.yaml)")
	showVersion := fs.BoolP("version", "v", false, "print the version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("moviedb-api", buildVersion())
		return
	}

	app := fx.New(
		di.AppModule,

		// Flags win over the config search path and the configured version
		fx.Decorate(func(loader *config.Loader) *config.Loader {
			if *configFile != "" {
				loader.SetConfigFile(*configFile)
			}
			return loader
		}),
		fx.Decorate(func(cfg *config.Config) *config.Config {
			if version != "" {
				cfg.App.Version = version
			}
			return cfg
		}),

		fx.Invoke(di.PrintBanner),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)

	app.Run()
}

func buildVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}
