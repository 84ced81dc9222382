package mocks

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// ErrEmptyInsert mirrors the driver's refusal of an empty InsertMany.
var ErrEmptyInsert = errors.New("must provide at least one element in input slice")

// memStore keeps documents in insertion order, which the mocks treat as _id order.
type memStore[T any] struct {
	mu    sync.RWMutex
	items []*T
	idOf  func(*T) entity.ID
}

func (s *memStore[T]) add(item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

func (s *memStore[T]) find(id entity.ID) (*T, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, item := range s.items {
		if s.idOf(item).Equal(id) {
			return item, i
		}
	}
	return nil, -1
}

func (s *memStore[T]) remove(id entity.ID) int64 {
	_, idx := s.find(id)
	if idx < 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return 1
}

func (s *memStore[T]) count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items))
}

func (s *memStore[T]) page(skip, limit int64) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*T{}
	for i := skip; i < int64(len(s.items)) && i < skip+limit; i++ {
		out = append(out, s.items[i])
	}
	return out
}

func (s *memStore[T]) all() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*T{}, s.items...)
}

// MockUserDAO is an in-memory implementation of dao.UserDAO
type MockUserDAO struct {
	store *memStore[entity.User]

	// LastUpdate holds the $set fields of the most recent Update call.
	LastUpdate map[string]any

	// Error injection
	CountErr       error
	FindPageErr    error
	FindByIDErr    error
	FindProfileErr error
	InsertErr      error
	UpdateErr      error
	DeleteErr      error
	StatsErr       error
}

var _ dao.UserDAO = (*MockUserDAO)(nil)

func NewMockUserDAO() *MockUserDAO {
	return &MockUserDAO{
		store: &memStore[entity.User]{idOf: func(u *entity.User) entity.ID { return u.ID }},
	}
}

// AddUser stores user, assigning an ObjectID when it has no id.
func (d *MockUserDAO) AddUser(user *entity.User) {
	if user.ID.IsZero() {
		user.ID = entity.NewObjectID()
	}
	d.store.add(user)
}

// Users returns every stored user.
func (d *MockUserDAO) Users() []*entity.User {
	return d.store.all()
}

func (d *MockUserDAO) Count(ctx context.Context) (int64, error) {
	if d.CountErr != nil {
		return 0, d.CountErr
	}
	return d.store.count(), nil
}

func (d *MockUserDAO) FindPage(ctx context.Context, skip, limit int64) ([]*entity.User, error) {
	if d.FindPageErr != nil {
		return nil, d.FindPageErr
	}
	return d.store.page(skip, limit), nil
}

func (d *MockUserDAO) FindByID(ctx context.Context, id entity.ID) (*entity.User, error) {
	if d.FindByIDErr != nil {
		return nil, d.FindByIDErr
	}
	user, _ := d.store.find(id)
	return user, nil
}

func (d *MockUserDAO) FindProfile(ctx context.Context, id entity.ID, limit int) (*entity.UserProfile, error) {
	if d.FindProfileErr != nil {
		return nil, d.FindProfileErr
	}
	user, _ := d.store.find(id)
	if user == nil || len(user.Movies) == 0 {
		return nil, nil
	}

	top := append([]entity.Rating{}, user.Movies...)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Rating != top[j].Rating {
			return top[i].Rating > top[j].Rating
		}
		return top[i].MovieID < top[j].MovieID
	})
	if len(top) > limit {
		top = top[:limit]
	}

	profile := entity.NewUserProfile(user)
	profile.TopMovies = top
	return profile, nil
}

func (d *MockUserDAO) InsertMany(ctx context.Context, users []*entity.User) (*dao.InsertResult, error) {
	if d.InsertErr != nil {
		return nil, d.InsertErr
	}
	if len(users) == 0 {
		return nil, ErrEmptyInsert
	}
	ids := make([]entity.ID, 0, len(users))
	for _, u := range users {
		d.AddUser(u)
		ids = append(ids, u.ID)
	}
	return &dao.InsertResult{Acknowledged: true, InsertedCount: len(users), InsertedIDs: ids}, nil
}

func (d *MockUserDAO) Update(ctx context.Context, id entity.ID, fields map[string]any) (*dao.UpdateResult, error) {
	if d.UpdateErr != nil {
		return nil, d.UpdateErr
	}
	d.LastUpdate = fields
	user, _ := d.store.find(id)
	if user == nil {
		return &dao.UpdateResult{Acknowledged: true}, nil
	}
	if movies, ok := fields["movies"].([]entity.Rating); ok {
		user.SetMovies(movies)
	}
	return &dao.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (d *MockUserDAO) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if d.DeleteErr != nil {
		return nil, d.DeleteErr
	}
	return &dao.DeleteResult{Acknowledged: true, DeletedCount: d.store.remove(id)}, nil
}

func (d *MockUserDAO) RatingStats(ctx context.Context) ([]*entity.UserRatingStats, error) {
	if d.StatsErr != nil {
		return nil, d.StatsErr
	}
	stats := []*entity.UserRatingStats{}
	for _, u := range d.store.all() {
		if len(u.Movies) == 0 {
			continue
		}
		s := &entity.UserRatingStats{ID: u.ID, Name: u.Name, MaxRating: u.Movies[0].Rating, MinRating: u.Movies[0].Rating}
		var sum float64
		for _, r := range u.Movies {
			sum += r.Rating
			if r.Rating > s.MaxRating {
				s.MaxRating = r.Rating
			}
			if r.Rating < s.MinRating {
				s.MinRating = r.Rating
			}
		}
		s.AvgRating = sum / float64(len(u.Movies))
		stats = append(stats, s)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].AvgRating < stats[j].AvgRating })
	return stats, nil
}

// MockMovieDAO is an in-memory implementation of dao.MovieDAO. The rating
// aggregates delegate to the optional Func fields and are empty otherwise.
type MockMovieDAO struct {
	store *memStore[entity.Movie]

	AverageRatingFunc     func(ctx context.Context, id entity.ID) (float64, bool, error)
	TopRatedFunc          func(ctx context.Context, n int) ([]*entity.MovieAverage, error)
	RankByTotalRatingFunc func(ctx context.Context, ascending bool) ([]*entity.MovieTotal, error)
	RankByFiveStarsFunc   func(ctx context.Context) ([]*entity.MovieStars, error)

	// LastUpdate holds the $set fields of the most recent Update call.
	LastUpdate map[string]any
	// ExistsCalls counts Exists lookups.
	ExistsCalls int

	// Error injection
	CountErr    error
	FindPageErr error
	FindByIDErr error
	ExistsErr   error
	GenresErr   error
	InsertErr   error
	UpdateErr   error
	DeleteErr   error
	FindErr     error
}

var _ dao.MovieDAO = (*MockMovieDAO)(nil)

func NewMockMovieDAO() *MockMovieDAO {
	return &MockMovieDAO{
		store: &memStore[entity.Movie]{idOf: func(m *entity.Movie) entity.ID { return m.ID }},
	}
}

// AddMovie stores movie, assigning an ObjectID when it has no id.
func (d *MockMovieDAO) AddMovie(movie *entity.Movie) {
	if movie.ID.IsZero() {
		movie.ID = entity.NewObjectID()
	}
	d.store.add(movie)
}

// Movies returns every stored movie.
func (d *MockMovieDAO) Movies() []*entity.Movie {
	return d.store.all()
}

func (d *MockMovieDAO) Count(ctx context.Context) (int64, error) {
	if d.CountErr != nil {
		return 0, d.CountErr
	}
	return d.store.count(), nil
}

func (d *MockMovieDAO) FindPage(ctx context.Context, skip, limit int64) ([]*entity.Movie, error) {
	if d.FindPageErr != nil {
		return nil, d.FindPageErr
	}
	return d.store.page(skip, limit), nil
}

func (d *MockMovieDAO) FindByID(ctx context.Context, id entity.ID) (*entity.Movie, error) {
	if d.FindByIDErr != nil {
		return nil, d.FindByIDErr
	}
	movie, _ := d.store.find(id)
	return movie, nil
}

func (d *MockMovieDAO) Exists(ctx context.Context, id entity.ID) (bool, error) {
	d.ExistsCalls++
	if d.ExistsErr != nil {
		return false, d.ExistsErr
	}
	movie, _ := d.store.find(id)
	return movie != nil, nil
}

func (d *MockMovieDAO) DistinctGenres(ctx context.Context) ([]string, error) {
	if d.GenresErr != nil {
		return nil, d.GenresErr
	}
	seen := map[string]bool{}
	genres := []string{}
	for _, m := range d.store.all() {
		for _, g := range m.Genres {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	sort.Strings(genres)
	return genres, nil
}

func (d *MockMovieDAO) InsertMany(ctx context.Context, movies []*entity.Movie) (*dao.InsertResult, error) {
	if d.InsertErr != nil {
		return nil, d.InsertErr
	}
	if len(movies) == 0 {
		return nil, ErrEmptyInsert
	}
	ids := make([]entity.ID, 0, len(movies))
	for _, m := range movies {
		d.AddMovie(m)
		ids = append(ids, m.ID)
	}
	return &dao.InsertResult{Acknowledged: true, InsertedCount: len(movies), InsertedIDs: ids}, nil
}

func (d *MockMovieDAO) Update(ctx context.Context, id entity.ID, fields map[string]any) (*dao.UpdateResult, error) {
	if d.UpdateErr != nil {
		return nil, d.UpdateErr
	}
	d.LastUpdate = fields
	movie, _ := d.store.find(id)
	if movie == nil {
		return &dao.UpdateResult{Acknowledged: true}, nil
	}
	return &dao.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (d *MockMovieDAO) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	if d.DeleteErr != nil {
		return nil, d.DeleteErr
	}
	return &dao.DeleteResult{Acknowledged: true, DeletedCount: d.store.remove(id)}, nil
}

func (d *MockMovieDAO) AverageRating(ctx context.Context, id entity.ID) (float64, bool, error) {
	if d.AverageRatingFunc != nil {
		return d.AverageRatingFunc(ctx, id)
	}
	return 0, false, nil
}

func (d *MockMovieDAO) TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error) {
	if d.TopRatedFunc != nil {
		return d.TopRatedFunc(ctx, n)
	}
	return []*entity.MovieAverage{}, nil
}

func (d *MockMovieDAO) RankByTotalRating(ctx context.Context, ascending bool) ([]*entity.MovieTotal, error) {
	if d.RankByTotalRatingFunc != nil {
		return d.RankByTotalRatingFunc(ctx, ascending)
	}
	return []*entity.MovieTotal{}, nil
}

func (d *MockMovieDAO) RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error) {
	if d.RankByFiveStarsFunc != nil {
		return d.RankByFiveStarsFunc(ctx)
	}
	return []*entity.MovieStars{}, nil
}

func (d *MockMovieDAO) FindByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error) {
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	out := []*entity.Movie{}
	for _, m := range d.store.all() {
		if m.Year != float64(year) {
			continue
		}
		for _, g := range m.Genres {
			if g == genre {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (d *MockMovieDAO) FindWithParenthesizedTitle(ctx context.Context) ([]*entity.Movie, error) {
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	out := []*entity.Movie{}
	for _, m := range d.store.all() {
		if strings.Contains(m.Title, "(") {
			out = append(out, m)
		}
	}
	return out, nil
}

// MockCinemaDAO is an in-memory implementation of dao.CinemaDAO. Geo queries
// delegate to the optional Func fields and are empty otherwise.
type MockCinemaDAO struct {
	store *memStore[entity.Cinema]

	NearFunc              func(ctx context.Context, point entity.Coordinates, maxMeters float64) ([]entity.ID, error)
	IntersectingLineFunc  func(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error)
	CountWithinSphereFunc func(ctx context.Context, center entity.Coordinates, radiusRadians float64) (int64, error)
	ContainingFunc        func(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error)

	// SetMoviesCalls counts SetMovies writes.
	SetMoviesCalls int

	// Error injection
	CountErr     error
	FindPageErr  error
	FindByIDErr  error
	InsertErr    error
	SetMoviesErr error
}

var _ dao.CinemaDAO = (*MockCinemaDAO)(nil)

func NewMockCinemaDAO() *MockCinemaDAO {
	return &MockCinemaDAO{
		store: &memStore[entity.Cinema]{idOf: func(c *entity.Cinema) entity.ID { return c.ID }},
	}
}

// AddCinema stores cinema, assigning an ObjectID when it has no id.
func (d *MockCinemaDAO) AddCinema(cinema *entity.Cinema) {
	if cinema.ID.IsZero() {
		cinema.ID = entity.NewObjectID()
	}
	d.store.add(cinema)
}

func (d *MockCinemaDAO) Count(ctx context.Context) (int64, error) {
	if d.CountErr != nil {
		return 0, d.CountErr
	}
	return d.store.count(), nil
}

func (d *MockCinemaDAO) FindPage(ctx context.Context, skip, limit int64) ([]*entity.Cinema, error) {
	if d.FindPageErr != nil {
		return nil, d.FindPageErr
	}
	return d.store.page(skip, limit), nil
}

func (d *MockCinemaDAO) FindByID(ctx context.Context, id entity.ID) (*entity.Cinema, error) {
	if d.FindByIDErr != nil {
		return nil, d.FindByIDErr
	}
	cinema, _ := d.store.find(id)
	return cinema, nil
}

func (d *MockCinemaDAO) InsertMany(ctx context.Context, cinemas []*entity.Cinema) (*dao.InsertResult, error) {
	if d.InsertErr != nil {
		return nil, d.InsertErr
	}
	if len(cinemas) == 0 {
		return nil, ErrEmptyInsert
	}
	ids := make([]entity.ID, 0, len(cinemas))
	for _, c := range cinemas {
		d.AddCinema(c)
		ids = append(ids, c.ID)
	}
	return &dao.InsertResult{Acknowledged: true, InsertedCount: len(cinemas), InsertedIDs: ids}, nil
}

func (d *MockCinemaDAO) SetMovies(ctx context.Context, id entity.ID, movies []entity.ID) (*dao.UpdateResult, error) {
	d.SetMoviesCalls++
	if d.SetMoviesErr != nil {
		return nil, d.SetMoviesErr
	}
	cinema, _ := d.store.find(id)
	if cinema == nil {
		return &dao.UpdateResult{Acknowledged: true}, nil
	}
	cinema.Movies = movies
	return &dao.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (d *MockCinemaDAO) Near(ctx context.Context, point entity.Coordinates, maxMeters float64) ([]entity.ID, error) {
	if d.NearFunc != nil {
		return d.NearFunc(ctx, point, maxMeters)
	}
	return []entity.ID{}, nil
}

func (d *MockCinemaDAO) IntersectingLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error) {
	if d.IntersectingLineFunc != nil {
		return d.IntersectingLineFunc(ctx, a, b)
	}
	return []*entity.Cinema{}, nil
}

func (d *MockCinemaDAO) CountWithinSphere(ctx context.Context, center entity.Coordinates, radiusRadians float64) (int64, error) {
	if d.CountWithinSphereFunc != nil {
		return d.CountWithinSphereFunc(ctx, center, radiusRadians)
	}
	return 0, nil
}

func (d *MockCinemaDAO) Containing(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error) {
	if d.ContainingFunc != nil {
		return d.ContainingFunc(ctx, point)
	}
	return []*entity.Cinema{}, nil
}
