package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go-restaurant-billing/database"
)

// Mongo backs the record store with MongoDB collections opened through the
// shared client.
type Mongo struct {
	client *mongo.Client
}

func NewMongo(client *mongo.Client) *Mongo {
	return &Mongo{client: client}
}

func (m *Mongo) collection(name string) *mongo.Collection {
	return database.OpenCollection(m.client, name)
}

func toBson(filter Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc interface{}) error {
	_, err := m.collection(collection).InsertOne(ctx, doc)
	return err
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error {
	err := m.collection(collection).FindOne(ctx, toBson(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocuments
	}
	return err
}

func (m *Mongo) FindAll(ctx context.Context, collection string, filter Filter, out interface{}) error {
	cursor, err := m.collection(collection).Find(ctx, toBson(filter))
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter Filter, set Fields) (int64, error) {
	result, err := m.collection(collection).UpdateOne(ctx, toBson(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	result, err := m.collection(collection).DeleteOne(ctx, toBson(filter))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (m *Mongo) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	return m.collection(collection).CountDocuments(ctx, toBson(filter))
}
