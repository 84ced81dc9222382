package di

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	mongodao "github.com/jrjohn/moviedb-api/internal/domain/dao/mongo"
	"github.com/jrjohn/moviedb-api/internal/observability"
)

// MongoDatabase wraps the client and the configured database.
type MongoDatabase struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Ping checks that the primary is reachable.
func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// DatabaseModule provides the MongoDB connection and creates indexes on start
var DatabaseModule = fx.Module("database",
	fx.Provide(provideMongoDatabase),
	fx.Invoke(ensureIndexes),
)

func provideMongoDatabase(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	monitor *observability.CommandMonitor,
	logger *zap.Logger,
) (*MongoDatabase, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("connect_retries", cfg.ConnectRetries),
	)

	client, err := mongodao.Connect(context.Background(), *cfg, monitor.Monitor(), logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &MongoDatabase{Client: client, DB: client.Database(cfg.Name)}, nil
}

func ensureIndexes(lc fx.Lifecycle, db *MongoDatabase, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongodao.EnsureIndexes(ctx, db.DB, logger)
		},
	})
}
