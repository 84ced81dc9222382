// Package seed loads a YAML dataset of movies, users and cinemas, checks it
// with the same rules the API applies to request bodies, and inserts it.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
	"github.com/jrjohn/moviedb-api/internal/domain/validation"
	apperrors "github.com/jrjohn/moviedb-api/pkg/errors"
)

// ErrInvalidFixture is returned by Build; its details list every problem.
var ErrInvalidFixture = apperrors.ErrValidation.WithMessage("invalid fixture")

// Fixture is the raw YAML document. Entries stay untyped so they can go
// through the request validators unchanged.
type Fixture struct {
	Movies  []map[string]any `yaml:"movies"`
	Users   []map[string]any `yaml:"users"`
	Cinemas []map[string]any `yaml:"cinemas"`
}

// Decode reads a fixture. Unknown top-level keys are rejected.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// Dataset is a validated fixture ready for insertion.
type Dataset struct {
	Movies  []*entity.Movie
	Users   []*entity.User
	Cinemas []*entity.Cinema
}

// catalog answers genre and movie lookups from the fixture itself, so a
// dataset can be checked before anything is written.
type catalog struct {
	movies map[int64]bool
	genres []string
}

func (c *catalog) DistinctGenres(context.Context) ([]string, error) {
	return c.genres, nil
}

func (c *catalog) Exists(_ context.Context, id entity.ID) (bool, error) {
	n, ok := id.Int64()
	return ok && c.movies[n], nil
}

func newCatalog(movies []map[string]any) *catalog {
	c := &catalog{movies: map[int64]bool{}}
	seen := map[string]bool{}
	for _, m := range movies {
		if id, ok := numericID(m["_id"]); ok {
			c.movies[id] = true
		}
		items, _ := m["genres"].([]any)
		for _, item := range items {
			if g, ok := item.(string); ok && !seen[g] {
				seen[g] = true
				c.genres = append(c.genres, g)
			}
		}
	}
	sort.Strings(c.genres)
	return c
}

// Build validates every entry and converts it to entities. All problems are
// collected; nothing is returned unless the whole fixture is valid.
func Build(ctx context.Context, f *Fixture, now time.Time) (*Dataset, error) {
	cat := newCatalog(f.Movies)
	movieValidator := validation.NewMovieValidator(cat)
	userValidator := validation.NewUserValidator(cat)

	genres, err := movieValidator.Genres(ctx)
	if err != nil {
		return nil, err
	}

	var problems []string
	report := func(kind string, i int, msgs ...string) {
		for _, msg := range msgs {
			problems = append(problems, fmt.Sprintf("%s[%d]: %s", kind, i, msg))
		}
	}

	ds := &Dataset{}

	movieIDs := map[int64]bool{}
	for i, raw := range f.Movies {
		id, ok := numericID(raw["_id"])
		switch {
		case !ok:
			report("movies", i, "_id must be a positive whole number")
		case movieIDs[id]:
			report("movies", i, fmt.Sprintf("_id %d is duplicated", id))
		}
		movieIDs[id] = true

		in := validation.FilterMovieFields(raw)
		if errs := movieValidator.ValidateCreate(in, genres); len(errs) > 0 {
			report("movies", i, errs...)
			continue
		}
		movie := validation.NewMovie(in)
		movie.ID = entity.NumericID(id)
		ds.Movies = append(ds.Movies, movie)
	}

	userIDs := map[int64]bool{}
	for i, raw := range f.Users {
		id, ok := numericID(raw["_id"])
		switch {
		case !ok:
			report("users", i, "_id must be a positive whole number")
		case userIDs[id]:
			report("users", i, fmt.Sprintf("_id %d is duplicated", id))
		}
		userIDs[id] = true

		in := validation.FilterUserFields(raw)
		errs, err := userValidator.ValidateCreate(ctx, in)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			report("users", i, errs...)
			continue
		}
		user := validation.NewUser(in, now)
		user.ID = entity.NumericID(id)
		ds.Users = append(ds.Users, user)
	}

	for i, raw := range f.Cinemas {
		cinema, errs := buildCinema(raw, cat)
		if len(errs) > 0 {
			report("cinemas", i, errs...)
			continue
		}
		ds.Cinemas = append(ds.Cinemas, cinema)
	}

	if len(problems) > 0 {
		return nil, ErrInvalidFixture.WithDetails(problems)
	}
	return ds, nil
}

func buildCinema(raw map[string]any, cat *catalog) (*entity.Cinema, []string) {
	var errs []string
	cinema := &entity.Cinema{Type: "Feature"}

	if v, ok := raw["_id"]; ok {
		s, _ := v.(string)
		id, err := entity.ParseObjectID(s)
		if err != nil {
			errs = append(errs, "_id must be an ObjectID hex string")
		}
		cinema.ID = id
	}
	if t, ok := raw["type"].(string); ok && t != "" {
		cinema.Type = t
	}
	if props, ok := raw["properties"].(map[string]any); ok {
		cinema.Properties = props
	}

	point, err := parsePoint(raw["geometry"])
	if err != "" {
		errs = append(errs, err)
	}
	cinema.Geometry = point

	if v, ok := raw["movies"]; ok {
		items, ok := v.([]any)
		if !ok {
			errs = append(errs, "movies must be an array")
		}
		for j, item := range items {
			id, ok := numericID(item)
			if !ok || !cat.movies[id] {
				errs = append(errs, fmt.Sprintf("movies[%d] %v does not exist", j, item))
				continue
			}
			cinema.Movies = append(cinema.Movies, entity.NumericID(id))
		}
	}

	return cinema, errs
}

// parsePoint accepts {type: Point, coordinates: [lng, lat]}.
func parsePoint(v any) (entity.Point, string) {
	geo, ok := v.(map[string]any)
	if !ok {
		return entity.Point{}, "geometry is required"
	}
	if geo["type"] != entity.GeoPoint {
		return entity.Point{}, "geometry.type must be Point"
	}
	coords, ok := geo["coordinates"].([]any)
	if !ok || len(coords) != 2 {
		return entity.Point{}, "geometry.coordinates must be [lng, lat]"
	}
	lng, okLng := toFloat(coords[0])
	lat, okLat := toFloat(coords[1])
	if !okLng || !okLat || math.Abs(lng) > 180 || math.Abs(lat) > 90 {
		return entity.Point{}, "geometry.coordinates are out of range"
	}
	return entity.NewPoint(entity.Coordinates{Lng: lng, Lat: lat}), ""
}

func numericID(v any) (int64, bool) {
	id, ok := entity.IDFromAny(v)
	if !ok {
		return 0, false
	}
	return id.Int64()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// Report counts inserted documents per collection.
type Report struct {
	Movies  int
	Users   int
	Cinemas int
}

// Seeder writes a dataset through the DAOs.
type Seeder struct {
	users   dao.UserDAO
	movies  dao.MovieDAO
	cinemas dao.CinemaDAO
	logger  *zap.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(users dao.UserDAO, movies dao.MovieDAO, cinemas dao.CinemaDAO, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, movies: movies, cinemas: cinemas, logger: logger}
}

// Seed inserts movies first so that ratings and showings refer to stored
// documents. It stops at the first failed batch.
func (s *Seeder) Seed(ctx context.Context, ds *Dataset) (*Report, error) {
	report := &Report{}

	if len(ds.Movies) > 0 {
		res, err := s.movies.InsertMany(ctx, ds.Movies)
		if err != nil {
			return report, fmt.Errorf("failed to insert movies: %w", err)
		}
		report.Movies = res.InsertedCount
	}

	if len(ds.Users) > 0 {
		res, err := s.users.InsertMany(ctx, ds.Users)
		if err != nil {
			return report, fmt.Errorf("failed to insert users: %w", err)
		}
		report.Users = res.InsertedCount
	}

	if len(ds.Cinemas) > 0 {
		res, err := s.cinemas.InsertMany(ctx, ds.Cinemas)
		if err != nil {
			return report, fmt.Errorf("failed to insert cinemas: %w", err)
		}
		report.Cinemas = res.InsertedCount
	}

	s.logger.Info("Seed complete",
		zap.Int("movies", report.Movies),
		zap.Int("users", report.Users),
		zap.Int("cinemas", report.Cinemas),
	)
	return report, nil
}
