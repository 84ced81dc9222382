package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// MovieFields are the keys a movie payload may carry.
var MovieFields = []string{"title", "year", "genres"}

// GenreSource lists the genres currently stored.
type GenreSource interface {
	DistinctGenres(ctx context.Context) ([]string, error)
}

// GenreSet is the set of genres a movie may be tagged with.
type GenreSet map[string]struct{}

// NewGenreSet builds a GenreSet from a genre list.
func NewGenreSet(genres []string) GenreSet {
	set := make(GenreSet, len(genres))
	for _, g := range genres {
		set[g] = struct{}{}
	}
	return set
}

// Has reports whether genre is in the set.
func (s GenreSet) Has(genre string) bool {
	_, ok := s[genre]
	return ok
}

// List returns the genres sorted.
func (s GenreSet) List() []string {
	out := make([]string, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// MovieValidator validates movie payloads. Genres must already exist on
// some stored movie, so a brand new genre can never be introduced.
type MovieValidator struct {
	genres GenreSource
}

// NewMovieValidator creates a MovieValidator backed by genres.
func NewMovieValidator(genres GenreSource) *MovieValidator {
	return &MovieValidator{genres: genres}
}

// FilterMovieFields drops every key that is not a movie field.
func FilterMovieFields(in map[string]any) map[string]any {
	return filterFields(in, MovieFields)
}

// Genres loads the current genre set.
func (v *MovieValidator) Genres(ctx context.Context) (GenreSet, error) {
	genres, err := v.genres.DistinctGenres(ctx)
	if err != nil {
		return nil, err
	}
	return NewGenreSet(genres), nil
}

// ValidateCreate checks a filtered payload where every field is required.
func (v *MovieValidator) ValidateCreate(in map[string]any, genres GenreSet) []string {
	return validateMovie(in, genres, false)
}

// ValidateUpdate checks a filtered payload where every field is optional.
func (v *MovieValidator) ValidateUpdate(in map[string]any, genres GenreSet) []string {
	return validateMovie(in, genres, true)
}

func validateMovie(in map[string]any, genres GenreSet, partial bool) []string {
	errs := []string{}

	check := func(field string, rule func(any) []string) {
		value, ok := in[field]
		if !ok {
			if !partial {
				errs = append(errs, fmt.Sprintf("%s is required", field))
			}
			return
		}
		errs = append(errs, rule(value)...)
	}

	check("title", func(val any) []string {
		if msg := nonEmptyString("title", val); msg != "" {
			return []string{msg}
		}
		return nil
	})
	check("year", func(val any) []string {
		n, ok := asNumber(val)
		if !ok {
			return []string{"year must be a number"}
		}
		if msg := checkVar("year", n, fmt.Sprintf("gt=%d", entity.MinMovieYear)); msg != "" {
			return []string{msg}
		}
		return nil
	})
	check("genres", func(val any) []string {
		return validateGenres(val, genres)
	})

	return errs
}

func validateGenres(val any, genres GenreSet) []string {
	items, ok := val.([]any)
	if !ok {
		return []string{"genres must be an array"}
	}
	if msg := checkVar("genres", items, "min=1"); msg != "" {
		return []string{"genres must contain at least one genre"}
	}

	var errs []string
	for i, item := range items {
		g, ok := item.(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("genres[%d] must be a string", i))
			continue
		}
		if !genres.Has(g) {
			errs = append(errs, fmt.Sprintf("genres[%d] %q is not a valid genre (valid: %s)", i, g, strings.Join(genres.List(), ", ")))
		}
	}
	return errs
}

// NewMovie builds a movie document from a validated create payload.
func NewMovie(in map[string]any) *entity.Movie {
	year, _ := asNumber(in["year"])
	return &entity.Movie{
		Title:  in["title"].(string),
		Year:   year,
		Genres: toStrings(in["genres"]),
	}
}

// MovieUpdateFields turns a validated update payload into typed $set fields.
func MovieUpdateFields(in map[string]any) map[string]any {
	fields := make(map[string]any, len(in))
	for key, val := range in {
		switch key {
		case "year":
			n, _ := asNumber(val)
			fields[key] = n
		case "genres":
			fields[key] = toStrings(val)
		default:
			fields[key] = val
		}
	}
	return fields
}

func toStrings(val any) []string {
	items, _ := val.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
