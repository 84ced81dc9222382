package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/observability"
)

// ObservabilityModule provides metrics, tracing and the MongoDB command monitor
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		provideMetricsProvider,
		provideTracingProvider,
		observability.NewCommandMonitor,
	),
)

func provideMetricsProvider(lc fx.Lifecycle, cfg *config.MetricsConfig, app *config.AppConfig, logger *zap.Logger) (*observability.MetricsProvider, error) {
	mp, err := observability.NewMetricsProvider(*cfg, app.Name, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(mp.Shutdown))
	return mp, nil
}

func provideTracingProvider(lc fx.Lifecycle, cfg *config.TracingConfig, app *config.AppConfig, logger *zap.Logger) (*observability.TracingProvider, error) {
	tp, err := observability.NewTracingProvider(*cfg, *app, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(tp.Shutdown))
	return tp, nil
}
