package mongo

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// movieDAO implements dao.MovieDAO using MongoDB. Rating aggregates read
// the users collection, where ratings are embedded.
type movieDAO struct {
	*baseMongoDAO[entity.Movie]
	users *mongo.Collection
}

// NewMovieDAO creates a new MongoDB-based MovieDAO.
func NewMovieDAO(db *mongo.Database) dao.MovieDAO {
	return &movieDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Movie](db, MoviesCollection),
		users:        db.Collection(UsersCollection),
	}
}

// InsertMany inserts movies in one batch.
func (d *movieDAO) InsertMany(ctx context.Context, movies []*entity.Movie) (*dao.InsertResult, error) {
	return d.insertMany(ctx, movies)
}

// DistinctGenres returns the sorted set of genres present in the collection.
func (d *movieDAO) DistinctGenres(ctx context.Context) ([]string, error) {
	values, err := d.collection.Distinct(ctx, "genres", bson.M{})
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			genres = append(genres, s)
		}
	}
	sort.Strings(genres)
	return genres, nil
}

type averageDocument struct {
	AvgRating   float64 `bson:"avgRating"`
	RatingCount int     `bson:"ratingCount"`
}

// AverageRating averages all ratings of the movie across users.
func (d *movieDAO) AverageRating(ctx context.Context, id entity.ID) (float64, bool, error) {
	docs, err := aggregate[averageDocument](ctx, d.users, movieAveragePipeline(id))
	if err != nil {
		return 0, false, err
	}
	if len(docs) == 0 || docs[0].RatingCount == 0 {
		return 0, false, nil
	}
	return docs[0].AvgRating, true, nil
}

// TopRated returns the n best movies by average rating.
func (d *movieDAO) TopRated(ctx context.Context, n int) ([]*entity.MovieAverage, error) {
	return aggregate[entity.MovieAverage](ctx, d.users, topRatedPipeline(n))
}

// RankByTotalRating orders every rated movie by its rating sum.
func (d *movieDAO) RankByTotalRating(ctx context.Context, ascending bool) ([]*entity.MovieTotal, error) {
	return aggregate[entity.MovieTotal](ctx, d.users, totalRatingPipeline(ascending))
}

// RankByFiveStars orders movies by their 5-star count.
func (d *movieDAO) RankByFiveStars(ctx context.Context) ([]*entity.MovieStars, error) {
	return aggregate[entity.MovieStars](ctx, d.users, fiveStarPipeline())
}

// FindByGenreAndYear returns movies of year tagged with genre.
func (d *movieDAO) FindByGenreAndYear(ctx context.Context, genre string, year int) ([]*entity.Movie, error) {
	filter := bson.M{"genres": genre, "year": year}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return d.findMany(ctx, filter, opts)
}

// FindWithParenthesizedTitle returns movies whose title contains "(".
func (d *movieDAO) FindWithParenthesizedTitle(ctx context.Context) ([]*entity.Movie, error) {
	filter := bson.M{"title": primitive.Regex{Pattern: `\(`}}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"title": 1})
	return d.findMany(ctx, filter, opts)
}
