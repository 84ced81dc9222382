package observability

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrjohn/moviedb-api/internal/middleware"
)

// CommandMonitor turns driver command events into client spans and
// db_operations metrics. Either provider may be nil.
type CommandMonitor struct {
	metrics *MetricsProvider
	tracer  trace.Tracer

	// spans in flight keyed by driver request id
	spans sync.Map
}

// NewCommandMonitor creates a monitor for the given providers
func NewCommandMonitor(metrics *MetricsProvider, tracing *TracingProvider) *CommandMonitor {
	m := &CommandMonitor{metrics: metrics}
	if tracing != nil {
		m.tracer = tracing.Tracer()
	}
	return m
}

// Monitor returns the driver hook to pass to options.Client().SetMonitor
func (m *CommandMonitor) Monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Started:   m.started,
		Succeeded: m.succeeded,
		Failed:    m.failed,
	}
}

func (m *CommandMonitor) started(ctx context.Context, e *event.CommandStartedEvent) {
	if m.tracer == nil {
		return
	}
	_, span := m.tracer.Start(ctx, "mongodb."+e.CommandName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrDBSystem.String(DBSystemMongo),
			AttrDBName.String(e.DatabaseName),
			AttrDBOperation.String(e.CommandName),
		),
	)
	if coll, ok := e.Command.Lookup(e.CommandName).StringValueOK(); ok {
		span.SetAttributes(AttrDBCollection.String(coll))
	}
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		span.SetAttributes(AttrRequestID.String(id))
	}
	m.spans.Store(e.RequestID, span)
}

func (m *CommandMonitor) succeeded(ctx context.Context, e *event.CommandSucceededEvent) {
	if m.metrics != nil {
		m.metrics.RecordDBOperation(ctx, e.CommandName, true, e.Duration)
	}
	if span, ok := m.finish(e.RequestID); ok {
		span.SetStatus(codes.Ok, "")
		span.End()
	}
}

func (m *CommandMonitor) failed(ctx context.Context, e *event.CommandFailedEvent) {
	if m.metrics != nil {
		m.metrics.RecordDBOperation(ctx, e.CommandName, false, e.Duration)
	}
	if span, ok := m.finish(e.RequestID); ok {
		span.SetStatus(codes.Error, e.Failure)
		span.End()
	}
}

func (m *CommandMonitor) finish(requestID int64) (trace.Span, bool) {
	v, ok := m.spans.LoadAndDelete(requestID)
	if !ok {
		return nil, false
	}
	return v.(trace.Span), true
}
