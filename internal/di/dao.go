package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	mongodao "github.com/jrjohn/moviedb-api/internal/domain/dao/mongo"
)

// DAOModule provides the MongoDB-backed DAOs
var DAOModule = fx.Module("dao",
	fx.Provide(
		provideUserDAO,
		provideMovieDAO,
		provideCinemaDAO,
	),
)

func provideUserDAO(db *MongoDatabase) dao.UserDAO {
	return mongodao.NewUserDAO(db.DB)
}

func provideMovieDAO(db *MongoDatabase) dao.MovieDAO {
	return mongodao.NewMovieDAO(db.DB)
}

func provideCinemaDAO(db *MongoDatabase) dao.CinemaDAO {
	return mongodao.NewCinemaDAO(db.DB)
}
