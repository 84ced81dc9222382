package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the queries rely on. $near requires the
// 2dsphere index on cinemas.geometry.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	indexes := map[string][]mongo.IndexModel{
		CinemasCollection: {
			{Keys: bson.D{{Key: "geometry", Value: "2dsphere"}}},
		},
		MoviesCollection: {
			{Keys: bson.D{{Key: "genres", Value: 1}, {Key: "year", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "movies.movieid", Value: 1}}},
		},
	}

	for _, name := range []string{CinemasCollection, MoviesCollection, UsersCollection} {
		created, err := db.Collection(name).Indexes().CreateMany(ctx, indexes[name])
		if err != nil {
			logger.Error("Failed to create indexes",
				zap.String("collection", name),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("Indexes ensured",
			zap.String("collection", name),
			zap.Strings("indexes", created),
		)
	}
	return nil
}
