package dao

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// MovieDAO provides data access to the movies collection and to the
// rating aggregates computed over users' embedded ratings.
type MovieDAO interface {
	PageReader[entity.Movie]

	// FindByID retrieves a movie by id.
	// Returns nil, nil if the movie is not found.
	FindByID(ctx context.Context, id entity.ID) (*entity.Movie, error)

	// Exists checks if a movie with the given id exists.
	Exists(ctx context.Context, id entity.ID) (bool, error)

	// DistinctGenres returns the genres currently present across all movies.
	DistinctGenres(ctx context.Context) ([]string, error)

	// InsertMany inserts all movies in one batch.
	InsertMany(ctx context.Context, movies []*entity.Movie) (*InsertResult, error)

	// Update applies a $set of the given fields.
	Update(ctx context.Context, id entity.ID, fields map[string]any) (*UpdateResult, error)

	// Delete physically removes the movie. Ratings referencing it are kept.
	Delete(ctx context.Context, id entity.ID) (*DeleteResult, error)

	// AverageRating averages every user rating of the movie.
	// found is false when nobody rated it.
	AverageRating(ctx context.Context, id entity.ID) (avg float64, found bool, err error)

	// TopRated returns the n movies with the highest average rating.
	TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error)

	// RankByTotalRating returns every rated movie ordered by rating sum.
	RankByTotalRating(ctx context.Context, ascending bool) ([]*entity.MovieTotal, error)

	// RankByFiveStars returns movies ordered by number of 5-star ratings desc.
	RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error)

	// FindByGenreAndYear returns the movies of that year tagged with genre.
	FindByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error)

	// FindWithParenthesizedTitle returns movies whose title contains "(",
	// ordered by _id.
	FindWithParenthesizedTitle(ctx context.Context) ([]*entity.Movie, error)
}
