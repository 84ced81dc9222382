package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	"github.com/jrjohn/moviedb-api/internal/resilience"
)

// Connect creates a client for cfg and pings the primary until it answers
// or cfg.ConnectRetries attempts have failed. monitor may be nil.
func Connect(ctx context.Context, cfg config.DatabaseConfig, monitor *event.CommandMonitor, logger *zap.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if monitor != nil {
		opts.SetMonitor(monitor)
	}
	tlsConfig, err := clientTLSConfig(cfg.TLS)
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	retry := &resilience.RetryConfig{
		MaxAttempts:         cfg.ConnectRetries,
		InitialInterval:     cfg.ConnectBackoff,
		MaxInterval:         30 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.2,
		Retryable:           isTransient,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			logger.Warn("MongoDB not reachable, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		},
	}

	err = resilience.Retry(ctx, retry, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// Server error codes that retrying cannot fix.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// isTransient reports whether a ping failure may clear up on its own.
// Authorization failures fail fast.
func isTransient(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code != codeUnauthorized && cmdErr.Code != codeAuthenticationFailed
	}
	return true
}
