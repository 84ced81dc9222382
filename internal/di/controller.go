package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/moviedb-api/internal/config"
	httpctrl "github.com/jrjohn/moviedb-api/internal/controller/http"
	"github.com/jrjohn/moviedb-api/internal/domain/service"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		provideUserController,
		provideMovieController,
		provideCinemaController,
		provideHealthController,
	),
)

func provideUserController(userService service.UserService, cfg *config.PaginationConfig) *httpctrl.UserController {
	return httpctrl.NewUserController(userService, *cfg)
}

func provideMovieController(movieService service.MovieService, cfg *config.PaginationConfig) *httpctrl.MovieController {
	return httpctrl.NewMovieController(movieService, *cfg)
}

func provideCinemaController(cinemaService service.CinemaService, cfg *config.PaginationConfig) *httpctrl.CinemaController {
	return httpctrl.NewCinemaController(cinemaService, *cfg)
}

func provideHealthController(app *config.AppConfig, db *MongoDatabase) *httpctrl.HealthController {
	return httpctrl.NewHealthController(app.Version, db)
}
