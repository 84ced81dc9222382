package dao

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// UserDAO provides data access to the users collection.
type UserDAO interface {
	PageReader[entity.User]

	// FindByID retrieves a user by id.
	// Returns nil, nil if the user is not found.
	FindByID(ctx context.Context, id entity.ID) (*entity.User, error)

	// FindProfile returns the user's identity fields with its limit best
	// ratings (rating desc, movieid asc) in TopMovies.
	// Returns nil, nil if the user has no ratings or does not exist.
	FindProfile(ctx context.Context, id entity.ID, limit int) (*entity.UserProfile, error)

	// InsertMany inserts all users in one batch.
	InsertMany(ctx context.Context, users []*entity.User) (*InsertResult, error)

	// Update applies a $set of the given fields.
	Update(ctx context.Context, id entity.ID, fields map[string]any) (*UpdateResult, error)

	// Delete physically removes the user.
	Delete(ctx context.Context, id entity.ID) (*DeleteResult, error)

	// RatingStats computes max/min/avg rating per user, ordered by avg asc.
	RatingStats(ctx context.Context) ([]*entity.UserRatingStats, error)
}
