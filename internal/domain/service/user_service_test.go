package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/testutil/mocks"
	apperrors "github.com/jrjohn/moviedb-api/pkg/errors"
)

func setupUserService(t *testing.T) (service.UserService, *mocks.MockUserDAO, *mocks.MockMovieDAO) {
	t.Helper()
	users := mocks.NewMockUserDAO()
	movies := mocks.NewMockMovieDAO()
	movies.AddMovie(&entity.Movie{ID: entity.NumericID(1), Title: "Toy Story", Year: 1995, Genres: []string{"Animation"}})
	return newUserServiceWith(users, movies), users, movies
}

func userPayload(movies ...any) map[string]any {
	p := map[string]any{"name": "Ana", "gender": "F", "age": float64(30), "occupation": "artist"}
	if movies != nil {
		p["movies"] = movies
	}
	return p
}

func rating(movieID, value float64) map[string]any {
	return map[string]any{"movieid": movieID, "rating": value}
}

func TestUserService_Create_StampsRatings(t *testing.T) {
	svc, users, _ := setupUserService(t)

	result, err := svc.Create(context.Background(), []any{userPayload(rating(1, 5))})
	require.NoError(t, err)
	assert.True(t, result.Acknowledged)
	assert.Equal(t, 1, result.InsertedCount)

	stored := users.Users()
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].NumRatings)
	assert.NotZero(t, stored[0].Movies[0].Timestamp)
	assert.NotEmpty(t, stored[0].Movies[0].Date)
}

func TestUserService_Create_DefaultsEmptyRatings(t *testing.T) {
	svc, users, _ := setupUserService(t)

	_, err := svc.Create(context.Background(), []any{userPayload()})
	require.NoError(t, err)

	stored := users.Users()[0]
	assert.Equal(t, 0, stored.NumRatings)
	assert.Equal(t, []entity.Rating{}, stored.Movies)
}

func TestUserService_Create_EmptyBatch(t *testing.T) {
	svc, users, _ := setupUserService(t)

	_, err := svc.Create(context.Background(), []any{})
	assert.True(t, errors.Is(err, service.ErrEmptyBatch))
	assert.Equal(t, 400, apperrors.GetStatus(err))
	assert.Empty(t, users.Users())
}

func TestUserService_Create_FractionalAge(t *testing.T) {
	svc, users, _ := setupUserService(t)

	p := userPayload()
	p["age"] = 25.5
	_, err := svc.Create(context.Background(), []any{p})
	require.NoError(t, err)
	assert.InDelta(t, 25.5, users.Users()[0].Age, 0.001)
}

func TestUserService_Create_AllOrNothing(t *testing.T) {
	svc, users, _ := setupUserService(t)

	_, err := svc.Create(context.Background(), []any{
		userPayload(rating(1, 4)),
		userPayload(rating(99, 4)),
		"not an object",
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	details, ok := appErr.Details.([]service.UserErrors)
	require.True(t, ok)
	require.Len(t, details, 2)
	assert.Equal(t, 1, details[0].UserIndex)
	assert.Equal(t, []string{"movies[0].movieid 99 does not exist"}, details[0].Errors)
	assert.Equal(t, 2, details[1].UserIndex)

	assert.Empty(t, users.Users(), "no document may be inserted when any item is invalid")
}

func TestUserService_Create_LookupError(t *testing.T) {
	svc, _, movies := setupUserService(t)
	movies.ExistsErr = errors.New("mongo down")

	_, err := svc.Create(context.Background(), []any{userPayload(rating(1, 4))})
	assert.EqualError(t, err, "mongo down")
}

func TestUserService_Get(t *testing.T) {
	svc, users, _ := setupUserService(t)

	noRatings := &entity.User{ID: entity.NumericID(1), Name: "Ana"}
	noRatings.SetMovies(nil)
	users.AddUser(noRatings)

	rater := &entity.User{ID: entity.NumericID(2), Name: "Ben"}
	ratings := []entity.Rating{}
	for i, r := range []float64{3, 5, 1, 4, 5, 2, 4} {
		ratings = append(ratings, entity.Rating{MovieID: int64(i + 1), Rating: r})
	}
	rater.SetMovies(ratings)
	users.AddUser(rater)

	t.Run("zero ratings gives message", func(t *testing.T) {
		profile, err := svc.Get(context.Background(), entity.NumericID(1))
		require.NoError(t, err)
		assert.Equal(t, service.NoRatingsMessage, profile.TopMovies)
	})

	t.Run("seven ratings gives top five", func(t *testing.T) {
		profile, err := svc.Get(context.Background(), entity.NumericID(2))
		require.NoError(t, err)

		top, ok := profile.TopMovies.([]entity.Rating)
		require.True(t, ok)
		require.Len(t, top, 5)
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
		}
		assert.Equal(t, int64(2), top[0].MovieID)
		assert.Equal(t, int64(5), top[1].MovieID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.Get(context.Background(), entity.NumericID(42))
		assert.True(t, errors.Is(err, service.ErrUserNotFound))
	})
}

func TestUserService_Update(t *testing.T) {
	svc, users, _ := setupUserService(t)

	u := &entity.User{ID: entity.NumericID(1), Name: "Ana"}
	u.SetMovies([]entity.Rating{{MovieID: 1, Rating: 3}})
	users.AddUser(u)
	ctx := context.Background()

	t.Run("movies omitted keeps ratings", func(t *testing.T) {
		res, err := svc.Update(ctx, entity.NumericID(1), map[string]any{"age": float64(31), "unknown": true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, map[string]any{"age": 31}, users.LastUpdate)
		assert.Equal(t, 1, u.NumRatings)
	})

	t.Run("empty movies resets count", func(t *testing.T) {
		_, err := svc.Update(ctx, entity.NumericID(1), map[string]any{"movies": []any{}})
		require.NoError(t, err)
		assert.Equal(t, 0, users.LastUpdate["num_ratings"])
		assert.Equal(t, 0, u.NumRatings)
	})

	t.Run("array body rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, entity.NumericID(1), []any{map[string]any{"age": float64(3)}})
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("no valid fields", func(t *testing.T) {
		_, err := svc.Update(ctx, entity.NumericID(1), map[string]any{"foo": "bar"})
		assert.True(t, errors.Is(err, service.ErrNoValidFields))
	})

	t.Run("invalid field", func(t *testing.T) {
		_, err := svc.Update(ctx, entity.NumericID(1), map[string]any{"gender": "X"})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"gender must be one of: M F"}, appErr.Details)
	})

	t.Run("missing user wins over bad body", func(t *testing.T) {
		_, err := svc.Update(ctx, entity.NumericID(9), []any{})
		assert.True(t, errors.Is(err, service.ErrUserNotFound))
	})
}

func TestUserService_Delete(t *testing.T) {
	svc, users, _ := setupUserService(t)
	users.AddUser(&entity.User{ID: entity.NumericID(1)})

	res, err := svc.Delete(context.Background(), entity.NumericID(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	_, err = svc.Delete(context.Background(), entity.NumericID(1))
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
}

func TestUserService_Stats(t *testing.T) {
	svc, users, _ := setupUserService(t)

	a := &entity.User{ID: entity.NumericID(1)}
	a.SetMovies([]entity.Rating{{MovieID: 1, Rating: 5}, {MovieID: 2, Rating: 3}})
	b := &entity.User{ID: entity.NumericID(2)}
	b.SetMovies([]entity.Rating{{MovieID: 1, Rating: 1}})
	users.AddUser(a)
	users.AddUser(b)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, entity.NumericID(2), stats[0].ID)
	assert.Equal(t, 4.0, stats[1].AvgRating)

	users.StatsErr = errors.New("boom")
	_, err = svc.Stats(context.Background())
	assert.Error(t, err)
}
