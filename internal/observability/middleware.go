package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrjohn/moviedb-api/internal/middleware"
)

// unmatchedRoute labels requests that hit no registered route so that
// arbitrary paths do not explode metric cardinality.
const unmatchedRoute = "unmatched"

// TracingMiddleware returns a Gin middleware for HTTP tracing
func TracingMiddleware(tp *TracingProvider) gin.HandlerFunc {
	tracer := tp.Tracer()

	return func(c *gin.Context) {
		propagator := otel.GetTextMapPropagator()
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		spanName := c.FullPath()
		if spanName == "" {
			spanName = c.Request.URL.Path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				AttrHTTPMethod.String(c.Request.Method),
				AttrHTTPURL.String(c.Request.URL.String()),
				AttrHTTPRoute.String(spanName),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		statusCode := c.Writer.Status()
		span.SetAttributes(
			AttrHTTPStatusCode.Int(statusCode),
			attribute.Int64("http.response_time_ms", duration.Milliseconds()),
		)
		if id := middleware.GetRequestID(c); id != "" {
			span.SetAttributes(AttrRequestID.String(id))
		}

		// 4xx are client mistakes; only server errors fail the span.
		if statusCode >= 500 {
			span.SetStatus(codes.Error, "HTTP server error")
		} else {
			span.SetStatus(codes.Ok, "")
		}

		for _, err := range c.Errors {
			span.RecordError(err.Err)
		}
	}
}

// MetricsMiddleware records request count, latency and in-flight requests
func MetricsMiddleware(mp *MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		mp.AddInFlight(ctx, 1)
		start := time.Now()

		c.Next()

		mp.AddInFlight(ctx, -1)
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		mp.RecordHTTPRequest(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
