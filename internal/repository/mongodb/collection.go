package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/healthnest-server/internal/model"
)

var _ model.Collection[model.Patient] = (*Collection[model.Patient])(nil)

// Collection stores documents of type T in one MongoDB collection. Ids are
// ObjectIDs on disk and hex strings everywhere else.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection binds a typed collection to the named MongoDB collection.
func NewCollection[T any](conn *Connection, name string) *Collection[T] {
	return &Collection[T]{coll: conn.collection(name)}
}

func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var doc T

	filter, err := idFilter(id)
	if err != nil {
		return doc, model.ErrNotFound
	}

	err = c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, model.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to find %s document: %w", c.Name(), err)
	}

	return doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, filter model.Filter, order model.Sort) ([]T, error) {
	cursor, err := c.coll.Find(ctx, toBSON(filter), options.Find().SetSort(sortDocument(order)))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", c.Name(), err)
	}

	return docs, nil
}

func (c *Collection[T]) Insert(ctx context.Context, doc T) (string, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert %s document: %w", c.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected %s id type %T", c.Name(), res.InsertedID)
	}

	return oid.Hex(), nil
}

// Update merges fields with $set and returns the post-update document in one round trip.
func (c *Collection[T]) Update(ctx context.Context, id string, fields model.Fields) (T, error) {
	var doc T

	filter, err := idFilter(id)
	if err != nil {
		return doc, model.ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: map[string]any(fields)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = c.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, model.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to update %s document: %w", c.Name(), err)
	}

	return doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	filter, err := idFilter(id)
	if err != nil {
		return false, nil
	}

	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s document: %w", c.Name(), err)
	}

	return res.DeletedCount > 0, nil
}

func idFilter(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: model.FieldMongoID, Value: oid}}, nil
}
