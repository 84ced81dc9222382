package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// Aggregation pipelines over the users collection. Every sort carries a
// secondary key so equal scores come back in a stable order.

func userProfilePipeline(id entity.ID, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id.Value()}}}},
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "movies.rating", Value: -1},
			{Key: "movies.movieid", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
			{Key: "gender", Value: bson.D{{Key: "$first", Value: "$gender"}}},
			{Key: "age", Value: bson.D{{Key: "$first", Value: "$age"}}},
			{Key: "occupation", Value: bson.D{{Key: "$first", Value: "$occupation"}}},
			{Key: "num_ratings", Value: bson.D{{Key: "$first", Value: "$num_ratings"}}},
			{Key: "topMovies", Value: bson.D{{Key: "$push", Value: "$movies"}}},
		}}},
	}
}

func userStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
			{Key: "maxRating", Value: bson.D{{Key: "$max", Value: "$movies.rating"}}},
			{Key: "minRating", Value: bson.D{{Key: "$min", Value: "$movies.rating"}}},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$movies.rating"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "avgRating", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}
}

func movieAveragePipeline(id entity.ID) mongo.Pipeline {
	match := bson.D{{Key: "movies.movieid", Value: id.Value()}}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$movies.rating"}}},
			{Key: "ratingCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func topRatedPipeline(n int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$movies.movieid"},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$movies.rating"}}},
			{Key: "ratingCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "avgRating", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: n}},
	}
	return append(pipeline, joinMovieTitle("avgRating", "ratingCount")...)
}

func totalRatingPipeline(ascending bool) mongo.Pipeline {
	order := -1
	if ascending {
		order = 1
	}
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$movies.movieid"},
			{Key: "totalRating", Value: bson.D{{Key: "$sum", Value: "$movies.rating"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalRating", Value: order},
			{Key: "_id", Value: 1},
		}}},
	}
	return append(pipeline, joinMovieTitle("totalRating")...)
}

func fiveStarPipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$movies"}},
		{{Key: "$match", Value: bson.D{{Key: "movies.rating", Value: 5}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$movies.movieid"},
			{Key: "fiveStars", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "fiveStars", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
	return append(pipeline, joinMovieTitle("fiveStars")...)
}

// joinMovieTitle looks up the movie grouped under _id, drops ratings of
// movies that no longer exist and projects the title next to keep.
func joinMovieTitle(keep ...string) mongo.Pipeline {
	project := bson.D{
		{Key: "_id", Value: 1},
		{Key: "title", Value: "$movie.title"},
	}
	for _, field := range keep {
		project = append(project, bson.E{Key: field, Value: 1})
	}
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: MoviesCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "movie"},
		}}},
		{{Key: "$unwind", Value: "$movie"}},
		{{Key: "$project", Value: project}},
	}
}
