package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/testutil/mocks"
	apperrors "github.com/jrjohn/moviedb-api/pkg/errors"
)

var madrid = entity.Coordinates{Lng: -3.7038, Lat: 40.4168}

func setupCinemaService(t *testing.T) (service.CinemaService, *mocks.MockCinemaDAO, *mocks.MockMovieDAO, entity.ID) {
	t.Helper()
	cinemas := mocks.NewMockCinemaDAO()
	movies := mocks.NewMockMovieDAO()

	movies.AddMovie(&entity.Movie{ID: entity.NumericID(1), Title: "Toy Story", Year: 1995, Genres: []string{"Animation"}})
	movies.AddMovie(&entity.Movie{ID: entity.NumericID(2), Title: "Heat", Year: 1995, Genres: []string{"Action"}})

	cinemaID := entity.ObjectID(primitive.NewObjectID())
	cinemas.AddCinema(&entity.Cinema{ID: cinemaID, Geometry: entity.NewPoint(madrid)})

	return service.NewCinemaService(cinemas, movies, zap.NewNop()), cinemas, movies, cinemaID
}

func TestCinemaService_AttachMovies_PartialMatch(t *testing.T) {
	svc, cinemas, _, id := setupCinemaService(t)

	res, err := svc.AttachMovies(context.Background(), id, map[string]any{"movies": []any{float64(1), float64(404)}})
	require.NoError(t, err)
	assert.Equal(t, "movies added to cinema", res.Message)
	assert.Equal(t, []entity.ID{entity.NumericID(1)}, res.Added)
	assert.Equal(t, []any{float64(404)}, res.NotFound)

	cinema, err := cinemas.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, cinema.HasMovie(entity.NumericID(1)))
	assert.Len(t, cinema.Movies, 1)
}

func TestCinemaService_AttachMovies_SkipsDuplicates(t *testing.T) {
	svc, cinemas, _, id := setupCinemaService(t)
	ctx := context.Background()

	_, err := svc.AttachMovies(ctx, id, map[string]any{"movies": []any{float64(1), float64(1)}})
	require.NoError(t, err)

	res, err := svc.AttachMovies(ctx, id, map[string]any{"movies": []any{float64(1)}})
	require.NoError(t, err)
	assert.Equal(t, "cinema already shows these movies", res.Message)
	assert.Empty(t, res.Added)

	cinema, _ := cinemas.FindByID(ctx, id)
	assert.Len(t, cinema.Movies, 1)
}

func TestCinemaService_AttachMovies_Errors(t *testing.T) {
	svc, cinemas, movies, id := setupCinemaService(t)
	ctx := context.Background()

	t.Run("none exist", func(t *testing.T) {
		_, err := svc.AttachMovies(ctx, id, map[string]any{"movies": []any{float64(7), "garbage"}})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Status)
		assert.Equal(t, []any{float64(7), "garbage"}, appErr.Details)
		assert.Zero(t, cinemas.SetMoviesCalls)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := svc.AttachMovies(ctx, id, map[string]any{"movies": []any{}})
		assert.True(t, errors.Is(err, service.ErrMoviesListInvalid))
	})

	t.Run("movies not an array", func(t *testing.T) {
		_, err := svc.AttachMovies(ctx, id, map[string]any{"movies": float64(1)})
		assert.True(t, errors.Is(err, service.ErrMoviesListInvalid))
	})

	t.Run("unknown cinema", func(t *testing.T) {
		_, err := svc.AttachMovies(ctx, entity.NewObjectID(), map[string]any{"movies": []any{float64(1)}})
		assert.True(t, errors.Is(err, service.ErrCinemaNotFound))
	})

	t.Run("lookup failure", func(t *testing.T) {
		movies.ExistsErr = errors.New("lookup failed")
		defer func() { movies.ExistsErr = nil }()
		_, err := svc.AttachMovies(ctx, id, map[string]any{"movies": []any{float64(1)}})
		assert.EqualError(t, err, "lookup failed")
	})
}

func TestCinemaService_MoviesShowing(t *testing.T) {
	svc, _, _, id := setupCinemaService(t)
	ctx := context.Background()

	_, err := svc.MoviesShowing(ctx, id)
	assert.True(t, errors.Is(err, service.ErrNoMoviesShowing))

	_, err = svc.AttachMovies(ctx, id, map[string]any{"movies": []any{float64(2), float64(1)}})
	require.NoError(t, err)

	out, err := svc.MoviesShowing(ctx, id)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Heat", out[0].Title)
}

func TestCinemaService_GeoQueries(t *testing.T) {
	svc, cinemas, _, id := setupCinemaService(t)
	ctx := context.Background()

	t.Run("empty results are not found", func(t *testing.T) {
		_, err := svc.Near(ctx, madrid)
		assert.True(t, errors.Is(err, service.ErrNoResults))
		_, err = svc.OnLine(ctx, madrid, entity.Coordinates{Lng: 2.17, Lat: 41.38})
		assert.True(t, errors.Is(err, service.ErrNoResults))
		_, err = svc.CountNear(ctx, madrid)
		assert.True(t, errors.Is(err, service.ErrNoResults))
		_, err = svc.Coverage(ctx, madrid)
		assert.True(t, errors.Is(err, service.ErrNotInCoverage))
	})

	t.Run("near uses 5km", func(t *testing.T) {
		var gotMeters float64
		cinemas.NearFunc = func(ctx context.Context, point entity.Coordinates, maxMeters float64) ([]entity.ID, error) {
			gotMeters = maxMeters
			return []entity.ID{id}, nil
		}
		out, err := svc.Near(ctx, madrid)
		require.NoError(t, err)
		assert.Equal(t, []entity.ID{id}, out)
		assert.Equal(t, float64(service.NearMaxDistanceMeters), gotMeters)
	})

	t.Run("count uses radians", func(t *testing.T) {
		var gotRadius float64
		cinemas.CountWithinSphereFunc = func(ctx context.Context, center entity.Coordinates, radius float64) (int64, error) {
			gotRadius = radius
			return 3, nil
		}
		n, err := svc.CountNear(ctx, madrid)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.InDelta(t, 5/6378.1, gotRadius, 1e-12)
	})

	t.Run("coverage", func(t *testing.T) {
		cinemas.ContainingFunc = func(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error) {
			return []*entity.Cinema{{ID: id}}, nil
		}
		out, err := svc.Coverage(ctx, madrid)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})
}
