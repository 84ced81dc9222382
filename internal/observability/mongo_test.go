package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrjohn/moviedb-api/internal/middleware"
)

func TestCommandMonitor_SpansAndMetrics(t *testing.T) {
	tp, rec := recordingTracer()
	mp := enabledMetrics(t)
	monitor := NewCommandMonitor(mp, tp).Monitor()
	ctx := context.Background()

	cmd, err := bson.Marshal(bson.D{{Key: "find", Value: "movies"}})
	require.NoError(t, err)

	monitor.Started(ctx, &event.CommandStartedEvent{
		Command:      cmd,
		DatabaseName: "moviedb",
		CommandName:  "find",
		RequestID:    1,
	})
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", RequestID: 1},
	})

	monitor.Started(ctx, &event.CommandStartedEvent{
		Command:      cmd,
		DatabaseName: "moviedb",
		CommandName:  "insert",
		RequestID:    2,
	})
	monitor.Failed(ctx, &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", RequestID: 2},
		Failure:              "duplicate key",
	})

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "mongodb.find", spans[0].Name())
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	var collection string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == AttrDBCollection {
			collection = kv.Value.AsString()
		}
	}
	assert.Equal(t, "movies", collection)

	assert.Equal(t, "mongodb.insert", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "duplicate key", spans[1].Status().Description)

	body := scrape(t, mp)
	assert.Contains(t, body, `db_operation="find"`)
	assert.Contains(t, body, `db_operation="insert"`)
}

func TestCommandMonitor_RequestID(t *testing.T) {
	tp, rec := recordingTracer()
	monitor := NewCommandMonitor(nil, tp).Monitor()
	cmd, err := bson.Marshal(bson.D{{Key: "count", Value: "movies"}})
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/movies", func(c *gin.Context) {
		ctx := c.Request.Context()
		monitor.Started(ctx, &event.CommandStartedEvent{Command: cmd, CommandName: "count", RequestID: 3})
		monitor.Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "count", RequestID: 3},
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	var requestID string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == AttrRequestID {
			requestID = kv.Value.AsString()
		}
	}
	assert.Equal(t, "req-42", requestID)
}

func TestCommandMonitor_NilProviders(t *testing.T) {
	monitor := NewCommandMonitor(nil, nil).Monitor()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		monitor.Started(ctx, &event.CommandStartedEvent{CommandName: "ping", RequestID: 9})
		monitor.Succeeded(ctx, &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "ping", RequestID: 9},
		})
		monitor.Failed(ctx, &event.CommandFailedEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "ping", RequestID: 10},
		})
	})
}
