package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// cinemaDAO implements dao.CinemaDAO using MongoDB.
type cinemaDAO struct {
	*baseMongoDAO[entity.Cinema]
}

// NewCinemaDAO creates a new MongoDB-based CinemaDAO.
func NewCinemaDAO(db *mongo.Database) dao.CinemaDAO {
	return &cinemaDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Cinema](db, CinemasCollection),
	}
}

// InsertMany inserts cinemas in one batch.
func (d *cinemaDAO) InsertMany(ctx context.Context, cinemas []*entity.Cinema) (*dao.InsertResult, error) {
	return d.insertMany(ctx, cinemas)
}

// SetMovies replaces the cinema's showing list.
func (d *cinemaDAO) SetMovies(ctx context.Context, id entity.ID, movies []entity.ID) (*dao.UpdateResult, error) {
	return d.Update(ctx, id, map[string]any{"movies": movies})
}

// Near returns cinema ids within maxMeters of point, nearest first.
func (d *cinemaDAO) Near(ctx context.Context, point entity.Coordinates, maxMeters float64) ([]entity.ID, error) {
	filter := bson.M{"geometry": bson.M{"$near": bson.M{
		"$geometry":    entity.NewPoint(point),
		"$maxDistance": maxMeters,
	}}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cinemas, err := d.findMany(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]entity.ID, len(cinemas))
	for i, c := range cinemas {
		ids[i] = c.ID
	}
	return ids, nil
}

// IntersectingLine returns cinemas whose location lies on the segment a-b.
func (d *cinemaDAO) IntersectingLine(ctx context.Context, a, b entity.Coordinates) ([]*entity.Cinema, error) {
	filter := bson.M{"geometry": bson.M{"$geoIntersects": bson.M{
		"$geometry": entity.NewLineString(a, b),
	}}}
	return d.findMany(ctx, filter)
}

// CountWithinSphere counts cinemas inside a spherical cap around center.
func (d *cinemaDAO) CountWithinSphere(ctx context.Context, center entity.Coordinates, radiusRadians float64) (int64, error) {
	filter := bson.M{"geometry": bson.M{"$geoWithin": bson.M{
		"$centerSphere": bson.A{bson.A{center.Lng, center.Lat}, radiusRadians},
	}}}
	return d.collection.CountDocuments(ctx, filter)
}

// Containing returns cinemas whose geometry intersects point.
func (d *cinemaDAO) Containing(ctx context.Context, point entity.Coordinates) ([]*entity.Cinema, error) {
	filter := bson.M{"geometry": bson.M{"$geoIntersects": bson.M{
		"$geometry": entity.NewPoint(point),
	}}}
	return d.findMany(ctx, filter)
}
