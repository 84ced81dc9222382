package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
)

// MetricsProvider manages OpenTelemetry metrics exported in Prometheus format
type MetricsProvider struct {
	config        config.MetricsConfig
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	logger        *zap.Logger
	registry      *prometheus.Registry
	handler       http.Handler

	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	httpInFlight        metric.Int64UpDownCounter
	dbOperationsTotal   metric.Int64Counter
	dbOperationDuration metric.Float64Histogram
}

// NewMetricsProvider creates a new metrics provider. A disabled provider
// records nothing and serves 404 on the metrics path.
func NewMetricsProvider(cfg config.MetricsConfig, serviceName string, logger *zap.Logger) (*MetricsProvider, error) {
	if !cfg.Enabled {
		return &MetricsProvider{
			config: cfg,
			meter:  otel.Meter(serviceName),
			logger: logger,
		}, nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := otelprometheus.New(
		otelprometheus.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	mp := &MetricsProvider{
		config:        cfg,
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(serviceName),
		logger:        logger,
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if err := mp.initMetrics(); err != nil {
		return nil, err
	}

	logger.Info("OpenTelemetry metrics initialized",
		zap.String("service", serviceName),
		zap.String("path", cfg.Path),
	)

	return mp, nil
}

func (mp *MetricsProvider) initMetrics() error {
	var err error

	mp.httpRequestsTotal, err = mp.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return err
	}

	mp.httpRequestDuration, err = mp.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	mp.httpInFlight, err = mp.meter.Int64UpDownCounter(
		"http_requests_in_flight",
		metric.WithDescription("Number of HTTP requests being served"),
	)
	if err != nil {
		return err
	}

	mp.dbOperationsTotal, err = mp.meter.Int64Counter(
		"db_operations_total",
		metric.WithDescription("Total number of MongoDB commands"),
	)
	if err != nil {
		return err
	}

	mp.dbOperationDuration, err = mp.meter.Float64Histogram(
		"db_operation_duration_seconds",
		metric.WithDescription("MongoDB command duration in seconds"),
		metric.WithUnit("s"),
	)
	return err
}

// RecordHTTPRequest records a served HTTP request
func (mp *MetricsProvider) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if mp.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.Int(statusCode),
	)

	mp.httpRequestsTotal.Add(ctx, 1, attrs)
	mp.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// AddInFlight moves the in-flight request gauge by delta
func (mp *MetricsProvider) AddInFlight(ctx context.Context, delta int64) {
	if mp.httpInFlight == nil {
		return
	}
	mp.httpInFlight.Add(ctx, delta)
}

// RecordDBOperation records a MongoDB command outcome
func (mp *MetricsProvider) RecordDBOperation(ctx context.Context, operation string, success bool, duration time.Duration) {
	if mp.dbOperationsTotal == nil {
		return
	}

	outcome := "ok"
	if !success {
		outcome = "error"
	}

	attrs := metric.WithAttributes(
		AttrDBSystem.String(DBSystemMongo),
		AttrDBOperation.String(operation),
		AttrOutcome.String(outcome),
	)

	mp.dbOperationsTotal.Add(ctx, 1, attrs)
	mp.dbOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// Handler returns an HTTP handler for Prometheus metrics
func (mp *MetricsProvider) Handler() http.Handler {
	if mp.handler != nil {
		return mp.handler
	}
	return http.NotFoundHandler()
}

// Path is where the metrics handler should be mounted
func (mp *MetricsProvider) Path() string {
	return mp.config.Path
}

// Enabled reports whether metrics are exported
func (mp *MetricsProvider) Enabled() bool {
	return mp.config.Enabled
}

// Meter returns the meter for creating custom metrics
func (mp *MetricsProvider) Meter() metric.Meter {
	return mp.meter
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}
