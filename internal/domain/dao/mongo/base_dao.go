// Package mongo provides MongoDB-based DAO implementations.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jrjohn/moviedb-api/internal/domain/dao"
	"github.com/jrjohn/moviedb-api/internal/domain/entity"
)

// Collection names.
const (
	UsersCollection   = "users"
	MoviesCollection  = "movies"
	CinemasCollection = "cinemas"
)

// baseMongoDAO provides common MongoDB operations for all entity DAOs.
type baseMongoDAO[T any] struct {
	collection *mongo.Collection
}

// newBaseMongoDAO creates a new base MongoDB DAO instance.
func newBaseMongoDAO[T any](db *mongo.Database, collectionName string) *baseMongoDAO[T] {
	return &baseMongoDAO[T]{
		collection: db.Collection(collectionName),
	}
}

// idFilter matches a document by _id.
func idFilter(id entity.ID) bson.M {
	return bson.M{"_id": id.Value()}
}

// Count returns the total number of documents in the collection.
func (d *baseMongoDAO[T]) Count(ctx context.Context) (int64, error) {
	return d.collection.CountDocuments(ctx, bson.M{})
}

// FindPage returns a slice of the collection ordered by _id ascending.
func (d *baseMongoDAO[T]) FindPage(ctx context.Context, skip, limit int64) ([]*T, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	return d.findMany(ctx, bson.M{}, opts)
}

// FindByID retrieves a document by _id, or nil, nil when absent.
func (d *baseMongoDAO[T]) FindByID(ctx context.Context, id entity.ID) (*T, error) {
	return d.findOne(ctx, idFilter(id))
}

// Exists checks if a document with the given _id exists.
func (d *baseMongoDAO[T]) Exists(ctx context.Context, id entity.ID) (bool, error) {
	count, err := d.collection.CountDocuments(ctx, idFilter(id), options.Count().SetLimit(1))
	return count > 0, err
}

// Update applies a $set of fields to the document with the given _id.
func (d *baseMongoDAO[T]) Update(ctx context.Context, id entity.ID, fields map[string]any) (*dao.UpdateResult, error) {
	res, err := d.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	return &dao.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete removes the document with the given _id.
func (d *baseMongoDAO[T]) Delete(ctx context.Context, id entity.ID) (*dao.DeleteResult, error) {
	res, err := d.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return nil, err
	}
	return &dao.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// insertMany inserts docs in one batch and reports the assigned ids.
func (d *baseMongoDAO[T]) insertMany(ctx context.Context, docs []*T) (*dao.InsertResult, error) {
	batch := make([]any, len(docs))
	for i, doc := range docs {
		batch[i] = doc
	}

	res, err := d.collection.InsertMany(ctx, batch)
	if err != nil {
		return nil, err
	}

	ids := make([]entity.ID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		if id, ok := entity.IDFromAny(raw); ok {
			ids = append(ids, id)
		}
	}
	return &dao.InsertResult{
		Acknowledged:  true,
		InsertedCount: len(res.InsertedIDs),
		InsertedIDs:   ids,
	}, nil
}

// findOne finds a single document matching the filter.
func (d *baseMongoDAO[T]) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := d.collection.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// findMany finds all documents matching the filter.
func (d *baseMongoDAO[T]) findMany(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := d.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// aggregate runs pipeline on coll and decodes every result into R.
func aggregate[R any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]*R, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*R{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
