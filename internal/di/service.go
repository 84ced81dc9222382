package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
	"github.com/jrjohn/moviedb-api/internal/domain/validation"
)

// ServiceModule provides the service layer
var ServiceModule = fx.Module("service",
	fx.Provide(
		provideUserService,
		provideMovieService,
		provideCinemaService,
	),
)

func provideUserService(users dao.UserDAO, validator *validation.UserValidator, logger *zap.Logger) service.UserService {
	return service.NewUserService(users, validator, logger)
}

func provideMovieService(movies dao.MovieDAO, validator *validation.MovieValidator, logger *zap.Logger) service.MovieService {
	return service.NewMovieService(movies, validator, logger)
}

func provideCinemaService(cinemas dao.CinemaDAO, movies dao.MovieDAO, logger *zap.Logger) service.CinemaService {
	return service.NewCinemaService(cinemas, movies, logger)
}
