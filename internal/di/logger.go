package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/pkg/logger"
)

// LoggerModule provides logging dependencies and applies log level changes
// from the watched config file.
var LoggerModule = fx.Module("logger",
	fx.Provide(provideLogger),
	fx.Invoke(watchLogLevel),
)

func provideLogger(cfg *config.LogConfig, app *config.AppConfig) (*zap.Logger, zap.AtomicLevel, error) {
	return logger.NewWithLevel(logger.Config{
		Level:       cfg.Level,
		Development: app.Debug,
		Encoding:    cfg.Encoding,
	})
}

// watchLogLevel starts the config watcher. Only the log level is applied
// live; every other setting needs a restart.
func watchLogLevel(lc fx.Lifecycle, loader *config.Loader, level zap.AtomicLevel, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			loader.Watch(
				func(cfg *config.Config) {
					if err := logger.SetLevel(level, cfg.Log.Level); err != nil {
						log.Warn("Ignoring invalid log level", zap.String("level", cfg.Log.Level), zap.Error(err))
						return
					}
					log.Info("Log level changed", zap.String("level", cfg.Log.Level))
				},
				func(err error) {
					log.Warn("Config reload failed", zap.Error(err))
				},
			)
			return nil
		},
	})
}
