package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/pkg/logger"
)

// Geo search parameters.
const (
	NearMaxDistanceMeters = 5000
	NearRadiusKm          = 5
	EarthRadiusKm         = 6378.1
)

// AttachResult reports which movies were added to a cinema.
type AttachResult struct {
	Message  string      `json:"message"`
	Added    []entity.ID `json:"added"`
	NotFound []any       `json:"notFound"`
}

// CinemaService defines the interface for cinema operations
type CinemaService interface {
	// List returns one page of cinemas ordered by id.
	List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.Cinema], error)

	// AttachMovies adds the existing movies listed in body to the cinema.
	AttachMovies(ctx context.Context, id entity.ID, body any) (*AttachResult, error)

	// MoviesShowing returns the movies the cinema shows.
	MoviesShowing(ctx context.Context, id entity.ID) ([]*entity.Movie, error)

	// Near returns the ids of cinemas within 5 km of point.
	Near(ctx context.Context, point entity.Coordinates) ([]entity.ID, error)

	// OnLine returns cinemas lying on the segment a-b.
	OnLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error)

	// CountNear counts cinemas within 5 km of point.
	CountNear(ctx context.Context, point entity.Coordinates) (int64, error)

	// Coverage returns the cinemas whose location matches point.
	Coverage(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error)
}

// cinemaService implements CinemaService
type cinemaService struct {
	cinemas dao.CinemaDAO
	movies  dao.MovieDAO
	logger  *zap.Logger
}

// NewCinemaService creates a new CinemaService instance
func NewCinemaService(cinemas dao.CinemaDAO, movies dao.MovieDAO, log *zap.Logger) CinemaService {
	return &cinemaService{
		cinemas: cinemas,
		movies:  movies,
		logger:  logger.ForComponent(log, "cinema_service"),
	}
}

func (s *cinemaService) List(ctx context.Context, req PageRequest) (*dao.PageResult[entity.Cinema], error) {
	return paginate[entity.Cinema](ctx, s.cinemas, req)
}

func (s *cinemaService) AttachMovies(ctx context.Context, id entity.ID, body any) (*AttachResult, error) {
	cinema, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	obj, err := requireObject(body)
	if err != nil {
		return nil, err
	}
	requested, ok := obj["movies"].([]any)
	if !ok || len(requested) == 0 {
		return nil, ErrMoviesListInvalid
	}

	result := &AttachResult{Added: []entity.ID{}, NotFound: []any{}}
	movies := append([]entity.ID{}, cinema.Movies...)
	current := &entity.Cinema{Movies: movies}

	for _, raw := range requested {
		movieID, ok := entity.IDFromAny(raw)
		if !ok {
			result.NotFound = append(result.NotFound, raw)
			continue
		}
		exists, err := s.movies.Exists(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if !exists {
			result.NotFound = append(result.NotFound, raw)
			continue
		}
		if current.HasMovie(movieID) {
			continue
		}
		current.Movies = append(current.Movies, movieID)
		result.Added = append(result.Added, movieID)
	}

	if len(result.NotFound) == len(requested) {
		return nil, ErrMoviesNotFound.WithDetails(result.NotFound)
	}

	if _, err := s.cinemas.SetMovies(ctx, id, current.Movies); err != nil {
		s.logger.Error("Failed to update cinema movies", zap.Stringer("id", id), zap.Error(err))
		return nil, err
	}

	result.Message = "movies added to cinema"
	if len(result.Added) == 0 {
		result.Message = "cinema already shows these movies"
	}
	return result, nil
}

func (s *cinemaService) MoviesShowing(ctx context.Context, id entity.ID) ([]*entity.Movie, error) {
	cinema, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cinema.Movies) == 0 {
		return nil, ErrNoMoviesShowing
	}

	movies := make([]*entity.Movie, 0, len(cinema.Movies))
	for _, movieID := range cinema.Movies {
		movie, err := s.movies.FindByID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			s.logger.Debug("Cinema references a missing movie",
				zap.Stringer("cinema", id),
				zap.Stringer("movie", movieID),
			)
			continue
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func (s *cinemaService) Near(ctx context.Context, point entity.Coordinates) ([]entity.ID, error) {
	return nonEmpty[entity.ID](s.cinemas.Near(ctx, point, NearMaxDistanceMeters))
}

func (s *cinemaService) OnLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error) {
	return nonEmpty[*entity.Cinema](s.cinemas.IntersectingLine(ctx, a, b))
}

func (s *cinemaService) CountNear(ctx context.Context, point entity.Coordinates) (int64, error) {
	count, err := s.cinemas.CountWithinSphere(ctx, point, NearRadiusKm/EarthRadiusKm)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNoResults
	}
	return count, nil
}

func (s *cinemaService) Coverage(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error) {
	cinemas, err := s.cinemas.Containing(ctx, point)
	if err != nil {
		return nil, err
	}
	if len(cinemas) == 0 {
		return nil, ErrNotInCoverage
	}
	return cinemas, nil
}

func (s *cinemaService) mustFind(ctx context.Context, id entity.ID) (*entity.Cinema, error) {
	cinema, err := s.cinemas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, ErrCinemaNotFound
	}
	return cinema, nil
}
