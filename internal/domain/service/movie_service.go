package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/validation"
	"github.com/jrjohn/moviedb-api/pkg/logger"
)

// NoRatingMessage replaces average_rating for movies nobody rated.
const NoRatingMessage = "this movie has no ratings yet"

// Ranking orders accepted by RankByTotalRating.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// MovieService defines the interface for movie operations
type MovieService interface {
	// List returns one page of movies ordered by id.
	List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.Movie], error)

	// Create validates every movie of the batch and inserts all of them, or
	// none when any item is invalid.
	Create(ctx context.Context, items []any) (*dao.InsertResult, error)

	// Get returns the movie with its average rating.
	Get(ctx context.Context, id entity.ID) (*entity.MovieDetail, error)

	// Update applies a partial update from body.
	Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error)

	// Delete removes the movie.
	Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error)

	// TopRated returns the n movies with the best average rating.
	TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error)

	// RankByTotalRating orders rated movies by rating sum, order is asc or desc.
	RankByTotalRating(ctx context.Context, order string) ([]*entity.MovieTotal, error)

	// RankByFiveStars orders movies by their number of 5-star ratings.
	RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error)

	// ByGenreAndYear lists the movies of year tagged with genre.
	ByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error)

	// OriginalTitles splits titles that carry a parenthesized original title.
	OriginalTitles(ctx context.Context) ([]*entity.OriginalTitle, error)
}

// movieService implements MovieService
type movieService struct {
	movies    dao.MovieDAO
	validator *validation.MovieValidator
	logger    *zap.Logger
}

// NewMovieService creates a new MovieService instance
func NewMovieService(movies dao.MovieDAO, validator *validation.MovieValidator, log *zap.Logger) MovieService {
	return &movieService{
		movies:    movies,
		validator: validator,
		logger:    logger.ForComponent(log, "movie_service"),
	}
}

func (s *movieService) List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.Movie], error) {
	return paginate[entity.Movie](ctx, s.movies, req)
}

func (s *movieService) Create(ctx context.Context, items []any) (*dao.InsertResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	genres, err := s.validator.Genres(ctx)
	if err != nil {
		return nil, err
	}

	movies := make([]*entity.Movie, 0, len(items))
	var invalid []MovieErrors

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			invalid = append(invalid, MovieErrors{MovieIndex: i, Errors: []string{"movie must be an object"}})
			continue
		}
		payload := validation.FilterMovieFields(obj)
		if errs := s.validator.ValidateCreate(payload, genres); len(errs) > 0 {
			invalid = append(invalid, MovieErrors{MovieIndex: i, Errors: errs})
			continue
		}
		movies = append(movies, validation.NewMovie(payload))
	}
	if len(invalid) > 0 {
		return nil, ErrInvalidMovieData.WithDetails(invalid)
	}

	result, err := s.movies.InsertMany(ctx, movies)
	if err != nil {
		s.logger.Error("Failed to insert movies", zap.Int("count", len(movies)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Movies created", zap.Int("count", result.InsertedCount))
	return result, nil
}

func (s *movieService) Get(ctx context.Context, id entity.ID) (*entity.MovieDetail, error) {
	movie, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, found, err := s.movies.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entity.MovieDetail{Movie: *movie, AverageRating: NoRatingMessage}
	if found {
		detail.AverageRating = avg
	}
	return detail, nil
}

func (s *movieService) Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return nil, err
	}

	obj, err := requireObject(body)
	if err != nil {
		return nil, err
	}

	payload := validation.FilterMovieFields(obj)
	if len(payload) == 0 {
		return nil, ErrNoValidFields
	}

	var genres validation.GenreSet
	if _, ok := payload["genres"]; ok {
		if genres, err = s.validator.Genres(ctx); err != nil {
			return nil, err
		}
	}
	if errs := s.validator.ValidateUpdate(payload, genres); len(errs) > 0 {
		return nil, ErrInvalidMovieData.WithDetails(errs)
	}

	return s.movies.Update(ctx, id, validation.MovieUpdateFields(payload))
}

func (s *movieService) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return nil, err
	}
	result, err := s.movies.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete movie", zap.Stringer("id", id), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *movieService) TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error) {
	return nonEmpty[*entity.MovieAverage](s.movies.TopRated(ctx, n))
}

func (s *movieService) RankByTotalRating(ctx context.Context, order string) ([]*entity.MovieTotal, error) {
	if order != OrderAsc && order != OrderDesc {
		return nil, ErrInvalidOrder
	}
	return nonEmpty[*entity.MovieTotal](s.movies.RankByTotalRating(ctx, order == OrderAsc))
}

func (s *movieService) RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error) {
	return nonEmpty[*entity.MovieStars](s.movies.RankByFiveStars(ctx))
}

func (s *movieService) ByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error) {
	genres, err := s.validator.Genres(ctx)
	if err != nil {
		return nil, err
	}
	if !genres.Has(genre) {
		return nil, ErrGenreNotFound.WithDetails(genres.List())
	}
	return nonEmpty[*entity.Movie](s.movies.FindByGenreAndYear(ctx, genre, year))
}

func (s *movieService) OriginalTitles(ctx context.Context) ([]*entity.OriginalTitle, error) {
	movies, err := s.movies.FindWithParenthesizedTitle(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]*entity.OriginalTitle, 0, len(movies))
	for _, m := range movies {
		primary, original, ok := entity.SplitOriginalTitle(m.Title)
		if !ok {
			continue
		}
		titles = append(titles, &entity.OriginalTitle{ID: m.ID, Title: primary, OriginalTitle: original})
	}
	if len(titles) == 0 {
		return nil, ErrNoResults
	}
	return titles, nil
}

func (s *movieService) mustFind(ctx context.Context, id entity.ID) (*entity.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

// nonEmpty turns an empty analytic result into ErrNoResults.
func nonEmpty[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoResults
	}
	return items, nil
}

// CurrentYear is the upper bound for year filters.
func CurrentYear() int {
	return time.Now().Year()
}
