package mocks

import (
	"context"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	ListFunc   func(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.User], error)
	CreateFunc func(ctx context.Context, items []any) (*dao.InsertResult, error)
	GetFunc    func(ctx context.Context, id entity.ID) (*entity.UserProfile, error)
	UpdateFunc func(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error)
	DeleteFunc func(ctx context.Context, id entity.ID) (*dao.DeleteResult, error)
	StatsFunc  func(ctx context.Context) ([]*entity.UserRatingStats, error)
}

var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) List(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.User], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return dao.NewPageResult([]*entity.User{}, 0, req.Page, req.Limit), nil
}

func (m *MockUserService) Create(ctx context.Context, items []any) (*dao.InsertResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, items)
	}
	ids := make([]entity.ID, len(items))
	for i := range items {
		ids[i] = entity.NewObjectID()
	}
	return &dao.InsertResult{Acknowledged: true, InsertedCount: len(items), InsertedIDs: ids}, nil
}

func (m *MockUserService) Get(ctx context.Context, id entity.ID) (*entity.UserProfile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &entity.UserProfile{ID: id, Name: "mock user", TopMovies: service.NoRatingsMessage}, nil
}

func (m *MockUserService) Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, body)
	}
	return &dao.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockUserService) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return &dao.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *MockUserService) Stats(ctx context.Context) ([]*entity.UserRatingStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return []*entity.UserRatingStats{}, nil
}

// MockMovieService is a mock implementation of service.MovieService
type MockMovieService struct {
	ListFunc              func(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.Movie], error)
	CreateFunc            func(ctx context.Context, items []any) (*dao.InsertResult, error)
	GetFunc               func(ctx context.Context, id entity.ID) (*entity.MovieDetail, error)
	UpdateFunc            func(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error)
	DeleteFunc            func(ctx context.Context, id entity.ID) (*dao.DeleteResult, error)
	TopRatedFunc          func(ctx context.Context, n int) ([]*entity.MovieAverage, error)
	RankByTotalRatingFunc func(ctx context.Context, order string) ([]*entity.MovieTotal, error)
	RankByFiveStarsFunc   func(ctx context.Context) ([]*entity.MovieStars, error)
	ByGenreAndYearFunc    func(ctx context.Context, genre string, year int) ([]*entity.Movie, error)
	OriginalTitlesFunc    func(ctx context.Context) ([]*entity.OriginalTitle, error)
}

var _ service.MovieService = (*MockMovieService)(nil)

func NewMockMovieService() *MockMovieService {
	return &MockMovieService{}
}

func (m *MockMovieService) List(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.Movie], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return dao.NewPageResult([]*entity.Movie{}, 0, req.Page, req.Limit), nil
}

func (m *MockMovieService) Create(ctx context.Context, items []any) (*dao.InsertResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, items)
	}
	return &dao.InsertResult{Acknowledged: true, InsertedCount: len(items), InsertedIDs: []entity.ID{}}, nil
}

func (m *MockMovieService) Get(ctx context.Context, id entity.ID) (*entity.MovieDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &entity.MovieDetail{Movie: entity.Movie{ID: id, Title: "mock movie"}, AverageRating: service.NoRatingMessage}, nil
}

func (m *MockMovieService) Update(ctx context.Context, id entity.ID, body any) (*dao.UpdateResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, body)
	}
	return &dao.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockMovieService) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return &dao.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *MockMovieService) TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error) {
	if m.TopRatedFunc != nil {
		return m.TopRatedFunc(ctx, n)
	}
	return nil, service.ErrNoResults
}

func (m *MockMovieService) RankByTotalRating(ctx context.Context, order string) ([]*entity.MovieTotal, error) {
	if m.RankByTotalRatingFunc != nil {
		return m.RankByTotalRatingFunc(ctx, order)
	}
	return nil, service.ErrNoResults
}

func (m *MockMovieService) RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error) {
	if m.RankByFiveStarsFunc != nil {
		return m.RankByFiveStarsFunc(ctx)
	}
	return nil, service.ErrNoResults
}

func (m *MockMovieService) ByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error) {
	if m.ByGenreAndYearFunc != nil {
		return m.ByGenreAndYearFunc(ctx, genre, year)
	}
	return nil, service.ErrNoResults
}

func (m *MockMovieService) OriginalTitles(ctx context.Context) ([]*entity.OriginalTitle, error) {
	if m.OriginalTitlesFunc != nil {
		return m.OriginalTitlesFunc(ctx)
	}
	return nil, service.ErrNoResults
}

// MockCinemaService is a mock implementation of service.CinemaService
type MockCinemaService struct {
	ListFunc          func(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.Cinema], error)
	AttachMoviesFunc  func(ctx context.Context, id entity.ID, body any) (*service.AttachResult, error)
	MoviesShowingFunc func(ctx context.Context, id entity.ID) ([]*entity.Movie, error)
	NearFunc          func(ctx context.Context, point entity.Coordinates) ([]entity.ID, error)
	OnLineFunc        func(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error)
	CountNearFunc     func(ctx context.Context, point entity.Coordinates) (int64, error)
	CoverageFunc      func(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error)
}

var _ service.CinemaService = (*MockCinemaService)(nil)

func NewMockCinemaService() *MockCinemaService {
	return &MockCinemaService{}
}

func (m *MockCinemaService) List(ctx context.Context, req service.PageRequest) (*dao.PageResult[entity.Cinema], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	return dao.NewPageResult([]*entity.Cinema{}, 0, req.Page, req.Limit), nil
}

func (m *MockCinemaService) AttachMovies(ctx context.Context, id entity.ID, body any) (*service.AttachResult, error) {
	if m.AttachMoviesFunc != nil {
		return m.AttachMoviesFunc(ctx, id, body)
	}
	return &service.AttachResult{Message: "movies added to cinema", Added: []entity.ID{}, NotFound: []any{}}, nil
}

func (m *MockCinemaService) MoviesShowing(ctx context.Context, id entity.ID) ([]*entity.Movie, error) {
	if m.MoviesShowingFunc != nil {
		return m.MoviesShowingFunc(ctx, id)
	}
	return nil, service.ErrNoMoviesShowing
}

func (m *MockCinemaService) Near(ctx context.Context, point entity.Coordinates) ([]entity.ID, error) {
	if m.NearFunc != nil {
		return m.NearFunc(ctx, point)
	}
	return nil, service.ErrNoResults
}

func (m *MockCinemaService) OnLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error) {
	if m.OnLineFunc != nil {
		return m.OnLineFunc(ctx, a, b)
	}
	return nil, service.ErrNoResults
}

func (m *MockCinemaService) CountNear(ctx context.Context, point entity.Coordinates) (int64, error) {
	if m.CountNearFunc != nil {
		return m.CountNearFunc(ctx, point)
	}
	return 0, service.ErrNoResults
}

func (m *MockCinemaService) Coverage(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error) {
	if m.CoverageFunc != nil {
		return m.CoverageFunc(ctx, point)
	}
	return nil, service.ErrNotInCoverage
}
