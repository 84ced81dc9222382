package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// userDAO implements dao.UserDAO using MongoDB.
type userDAO struct {
	*baseMongoDAO[entity.User]
}

// NewUserDAO creates a new MongoDB-based UserDAO.
func NewUserDAO(db *mongo.Database) dao.UserDAO {
	return &userDAO{
		baseMongoDAO: newBaseMongoDAO[entity.User](db, UsersCollection),
	}
}

// profileDocument is the shape produced by userProfilePipeline.
type profileDocument struct {
	entity.UserProfile `bson:",inline"`
	TopMovies          []entity.Rating `bson:"topMovies"`
}

// InsertMany inserts users in one batch.
func (d *userDAO) InsertMany(ctx context.Context, users []*entity.User) (*dao.InsertResult, error) {
	return d.insertMany(ctx, users)
}

// FindProfile runs the top-ratings aggregation for a single user.
func (d *userDAO) FindProfile(ctx context.Context, id entity.ID, limit int) (*entity.UserProfile, error) {
	docs, err := aggregate[profileDocument](ctx, d.collection, userProfilePipeline(id, limit))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	profile := docs[0].UserProfile
	profile.TopMovies = docs[0].TopMovies
	return &profile, nil
}

// RatingStats computes the per-user rating aggregates.
func (d *userDAO) RatingStats(ctx context.Context) ([]*entity.UserRatingStats, error) {
	return aggregate[entity.UserRatingStats](ctx, d.collection, userStatsPipeline())
}
