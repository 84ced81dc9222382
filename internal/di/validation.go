package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/validation"
)

// ValidationModule provides the request body validators. Both look up
// movies through the DAO, so they come after DAOModule.
var ValidationModule = fx.Module("validation",
	fx.Provide(
		provideUserValidator,
		provideMovieValidator,
	),
)

func provideUserValidator(movies dao.MovieDAO) *validation.UserValidator {
	return validation.NewUserValidator(movies)
}

func provideMovieValidator(movies dao.MovieDAO) *validation.MovieValidator {
	return validation.NewMovieValidator(movies)
}
