package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenres struct {
	genres []string
	err    error
}

func (f fakeGenres) DistinctGenres(context.Context) ([]string, error) {
	return f.genres, f.err
}

func TestFilterMovieFields(t *testing.T) {
	out := FilterMovieFields(map[string]any{"title": "x", "year": float64(2000), "genres": []any{}, "rating": 5})
	assert.Len(t, out, 3)
	assert.NotContains(t, out, "rating")
}

func TestMovieValidator_ValidateCreate(t *testing.T) {
	v := NewMovieValidator(fakeGenres{})
	genres := NewGenreSet([]string{"Comedy", "Drama"})

	tests := []struct {
		name string
		in   map[string]any
		want []string
	}{
		{
			name: "valid",
			in:   map[string]any{"title": "Heat", "year": float64(1995), "genres": []any{"Drama"}},
			want: []string{},
		},
		{
			name: "all missing",
			in:   map[string]any{},
			want: []string{"title is required", "year is required", "genres is required"},
		},
		{
			name: "bad values",
			in:   map[string]any{"title": "", "year": float64(1500), "genres": []any{}},
			want: []string{"title is required", "year must be greater than 1500", "genres must contain at least one genre"},
		},
		{
			name: "unknown genre",
			in:   map[string]any{"title": "Heat", "year": float64(1995), "genres": []any{"Drama", "Western", 3.0}},
			want: []string{
				`genres[1] "Western" is not a valid genre (valid: Comedy, Drama)`,
				"genres[2] must be a string",
			},
		},
		{
			name: "wrong types",
			in:   map[string]any{"title": 1.0, "year": "1995", "genres": "Drama"},
			want: []string{"title must be a string", "year must be a number", "genres must be an array"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidateCreate(tt.in, genres))
		})
	}
}

func TestMovieValidator_NewGenreRejectedOnEmptyCollection(t *testing.T) {
	v := NewMovieValidator(fakeGenres{genres: nil})

	genres, err := v.Genres(context.Background())
	require.NoError(t, err)

	errs := v.ValidateCreate(map[string]any{"title": "First", "year": float64(2001), "genres": []any{"Noir"}}, genres)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"Noir" is not a valid genre`)
}

func TestMovieValidator_ValidateUpdate(t *testing.T) {
	v := NewMovieValidator(fakeGenres{})

	assert.Empty(t, v.ValidateUpdate(map[string]any{"year": float64(2001)}, GenreSet{}))
	assert.Empty(t, v.ValidateUpdate(map[string]any{"year": 1999.5}, GenreSet{}))
	assert.Equal(t, []string{"year must be greater than 1500"}, v.ValidateUpdate(map[string]any{"year": 1500.0}, GenreSet{}))
}

func TestMovieValidator_GenresError(t *testing.T) {
	v := NewMovieValidator(fakeGenres{err: errors.New("boom")})
	_, err := v.Genres(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestNewMovieAndUpdateFields(t *testing.T) {
	m := NewMovie(map[string]any{"title": "Heat", "year": float64(1995), "genres": []any{"Drama"}})
	assert.Equal(t, "Heat", m.Title)
	assert.InDelta(t, 1995, m.Year, 0.001)
	assert.Equal(t, []string{"Drama"}, m.Genres)

	fields := MovieUpdateFields(map[string]any{"year": float64(1996), "genres": []any{"Comedy"}})
	assert.Equal(t, map[string]any{"year": float64(1996), "genres": []string{"Comedy"}}, fields)
}

func TestGenreSet(t *testing.T) {
	s := NewGenreSet([]string{"b", "a"})
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.List())
}
