package service

import (
	apperrors "github.com/jrjohn/moviedb-api/pkg/errors"
)

// Service errors. Each carries the HTTP status it maps to.
var (
	ErrUserNotFound      = apperrors.ErrNotFound.WithMessage("user not found")
	ErrMovieNotFound     = apperrors.ErrNotFound.WithMessage("movie not found")
	ErrCinemaNotFound    = apperrors.ErrNotFound.WithMessage("cinema not found")
	ErrPageNotFound      = apperrors.ErrNotFound.WithMessage("page does not exist")
	ErrNoResults         = apperrors.ErrNotFound.WithMessage("no results found")
	ErrNoMoviesShowing   = apperrors.ErrNotFound.WithMessage("cinema has no movies")
	ErrGenreNotFound     = apperrors.ErrNotFound.WithMessage("genre not found")
	ErrMoviesNotFound    = apperrors.ErrNotFound.WithMessage("none of the movies exist")
	ErrNotInCoverage     = apperrors.ErrNotFound.WithMessage("location is outside festival coverage")
	ErrInvalidUserData   = apperrors.ErrValidation.WithMessage("invalid user data")
	ErrInvalidMovieData  = apperrors.ErrValidation.WithMessage("invalid movie data")
	ErrArrayExpected     = apperrors.ErrBadRequest.WithMessage("request body must be an array")
	ErrEmptyBatch        = apperrors.ErrBadRequest.WithMessage("request body must be a non-empty array")
	ErrObjectExpected    = apperrors.ErrBadRequest.WithMessage("request body must be an object")
	ErrNoValidFields     = apperrors.ErrBadRequest.WithMessage("no valid fields to update")
	ErrMoviesListInvalid = apperrors.ErrBadRequest.WithMessage("movies must be a non-empty array")
	ErrInvalidOrder      = apperrors.ErrBadRequest.WithMessage("order must be asc or desc")
)

// UserErrors lists the validation failures of one user in a batch.
type UserErrors struct {
	UserIndex int      `json:"userIndex"`
	Errors    []string `json:"errors"`
}

// MovieErrors lists the validation failures of one movie in a batch.
type MovieErrors struct {
	MovieIndex int      `json:"movieIndex"`
	Errors     []string `json:"errors"`
}
