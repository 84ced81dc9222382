package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/moviedb-api/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.NewLoader,
		loadConfig,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideLogConfig,
		provideMetricsConfig,
		provideTracingConfig,
		providePaginationConfig,
	),
)

func loadConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load()
}

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideLogConfig(cfg *config.Config) *config.LogConfig {
	return &cfg.Log
}

func provideMetricsConfig(cfg *config.Config) *config.MetricsConfig {
	return &cfg.Metrics
}

func provideTracingConfig(cfg *config.Config) *config.TracingConfig {
	return &cfg.Tracing
}

func providePaginationConfig(cfg *config.Config) *config.PaginationConfig {
	return &cfg.Pagination
}
