package dao

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// CinemaDAO provides data access to the cinemas collection.
type CinemaDAO interface {
	PageReader[entity.Cinema]

	// FindByID retrieves a cinema by id.
	// Returns nil, nil if the cinema is not found.
	FindByID(ctx context.Context, id entity.ID) (*entity.Cinema, error)

	// InsertMany inserts all cinemas in one batch.
	InsertMany(ctx context.Context, cinemas []*entity.Cinema) (*InsertResult, error)

	// SetMovies replaces the cinema's showing list.
	SetMovies(ctx context.Context, id entity.ID, movies []entity.ID) (*UpdateResult, error)

	// Near returns the ids of cinemas within maxMeters of point, nearest first.
	Near(ctx context.Context, point entity.Coordinates, maxMeters float64) ([]entity.ID, error)

	// IntersectingLine returns cinemas whose geometry intersects the segment a-b.
	IntersectingLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error)

	// CountWithinSphere counts cinemas within radiusRadians of center.
	CountWithinSphere(ctx context.Context, center entity.Coordinates, radiusRadians float64) (int64, error)

	// Containing returns cinemas whose geometry intersects point.
	Containing(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error)
}
