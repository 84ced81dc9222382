package validation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// UserFields are the keys a user payload may carry.
var UserFields = []string{"name", "gender", "age", "occupation", "movies"}

// ratingFields are the keys a rating entry may carry.
var ratingFields = map[string]bool{"movieid": true, "rating": true}

// isoMillis matches the ISO-8601 form with milliseconds and a Z suffix.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// MovieLookup reports whether a movie exists.
type MovieLookup interface {
	Exists(ctx context.Context, id entity.ID) (bool, error)
}

// UserValidator validates user payloads. Rating entries are checked against
// the movies collection, one lookup per entry.
type UserValidator struct {
	movies MovieLookup
}

// NewUserValidator creates a UserValidator backed by movies.
func NewUserValidator(movies MovieLookup) *UserValidator {
	return &UserValidator{movies: movies}
}

// FilterUserFields drops every key that is not a user field.
func FilterUserFields(in map[string]any) map[string]any {
	return filterFields(in, UserFields)
}

// ValidateCreate checks a filtered payload where every field but movies is
// required. The returned error is only set when a movie lookup failed.
func (v *UserValidator) ValidateCreate(ctx context.Context, in map[string]any) ([]string, error) {
	return v.validate(ctx, in, false)
}

// ValidateUpdate checks a filtered payload where every field is optional.
func (v *UserValidator) ValidateUpdate(ctx context.Context, in map[string]any) ([]string, error) {
	return v.validate(ctx, in, true)
}

func (v *UserValidator) validate(ctx context.Context, in map[string]any, partial bool) ([]string, error) {
	errs := []string{}

	check := func(field string, rule func(any) string) {
		value, ok := in[field]
		if !ok {
			if !partial {
				errs = append(errs, fmt.Sprintf("%s is required", field))
			}
			return
		}
		if msg := rule(value); msg != "" {
			errs = append(errs, msg)
		}
	}

	check("name", func(val any) string { return nonEmptyString("name", val) })
	check("gender", func(val any) string {
		s, ok := val.(string)
		if !ok {
			return "gender must be a string"
		}
		return checkVar("gender", s, "oneof=M F")
	})
	check("age", func(val any) string {
		n, ok := asNumber(val)
		if !ok {
			return "age must be a number"
		}
		return checkVar("age", n, "gt=0")
	})
	check("occupation", func(val any) string { return nonEmptyString("occupation", val) })

	if raw, ok := in["movies"]; ok {
		movieErrs, err := v.validateRatings(ctx, raw)
		if err != nil {
			return nil, err
		}
		errs = append(errs, movieErrs...)
	}

	return errs, nil
}

func (v *UserValidator) validateRatings(ctx context.Context, raw any) ([]string, error) {
	entries, ok := raw.([]any)
	if !ok {
		return []string{"movies must be an array"}, nil
	}

	errs := []string{}
	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("movies[%d] must be an object", i))
			continue
		}

		unknown := make([]string, 0)
		for key := range entry {
			if !ratingFields[key] {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			errs = append(errs, fmt.Sprintf("movies[%d] has invalid field %q", i, key))
		}

		movieErr, err := v.validateMovieID(ctx, i, entry["movieid"])
		if err != nil {
			return nil, err
		}
		if movieErr != "" {
			errs = append(errs, movieErr)
		}

		field := fmt.Sprintf("movies[%d].rating", i)
		n, ok := asNumber(entry["rating"])
		switch {
		case entry["rating"] == nil:
			errs = append(errs, field+" is required")
		case !ok:
			errs = append(errs, field+" must be a number")
		default:
			if msg := checkVar(field, n, "min=1,max=5"); msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return errs, nil
}

func (v *UserValidator) validateMovieID(ctx context.Context, index int, raw any) (string, error) {
	field := fmt.Sprintf("movies[%d].movieid", index)
	if raw == nil {
		return field + " is required", nil
	}
	n, ok := asNumber(raw)
	if !ok {
		return field + " must be a number", nil
	}
	if msg := checkVar(field, n, "gt=0"); msg != "" {
		return msg, nil
	}
	if !isWhole(n) {
		return field + " must be a whole number", nil
	}

	exists, err := v.movies.Exists(ctx, entity.NumericID(int64(n)))
	if err != nil {
		return "", err
	}
	if !exists {
		return fmt.Sprintf("%s %d does not exist", field, int64(n)), nil
	}
	return "", nil
}

// StampRatings converts validated rating entries, giving all of them the
// same capture time.
func StampRatings(raw any, now time.Time) []entity.Rating {
	entries, _ := raw.([]any)
	ratings := make([]entity.Rating, 0, len(entries))
	ts := now.Unix()
	date := now.UTC().Format(isoMillis)
	for _, item := range entries {
		entry, _ := item.(map[string]any)
		movieID, _ := asNumber(entry["movieid"])
		rating, _ := asNumber(entry["rating"])
		ratings = append(ratings, entity.Rating{
			MovieID:   int64(movieID),
			Rating:    rating,
			Timestamp: ts,
			Date:      date,
		})
	}
	return ratings
}

// NewUser builds a user document from a validated create payload.
func NewUser(in map[string]any, now time.Time) *entity.User {
	age, _ := asNumber(in["age"])
	user := &entity.User{
		Name:       in["name"].(string),
		Gender:     in["gender"].(string),
		Age:        age,
		Occupation: in["occupation"].(string),
	}
	user.SetMovies(StampRatings(in["movies"], now))
	return user
}

// UserUpdateFields turns a validated update payload into typed $set fields.
// num_ratings is only touched when movies is supplied.
func UserUpdateFields(in map[string]any, now time.Time) map[string]any {
	fields := make(map[string]any, len(in)+1)
	for key, val := range in {
		switch key {
		case "age":
			n, _ := asNumber(val)
			fields[key] = n
		case "movies":
			ratings := StampRatings(val, now)
			fields["movies"] = ratings
			fields["num_ratings"] = len(ratings)
		default:
			fields[key] = val
		}
	}
	return fields
}
