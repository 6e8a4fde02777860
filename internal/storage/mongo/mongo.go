// Package mongo provides a MongoDB-backed implementation of the
// storage.Store interface. It mirrors the document layout the service
// grew up with: one groups collection keyed by normalized name, one
// events collection filtered by owning group.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"lunchbot/internal/storage"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store using MongoDB.
type MongoStore struct {
	client *mongo.Client
	groups *mongo.Collection
	events *mongo.Collection
}

type groupDoc struct {
	Name      string   `bson:"_id"`
	Password  string   `bson:"password"`
	Members   []string `bson:"members"`
	CreatedAt int64    `bson:"created_at"`
}

type eventDoc struct {
	ID          string    `bson:"_id"`
	Group       string    `bson:"group"`
	CreatorID   string    `bson:"creator_id"`
	CreatorName string    `bson:"creator_name"`
	Start       time.Time `bson:"start"`
	End         time.Time `bson:"end"`
	Location    string    `bson:"location"`
	CreatedAt   time.Time `bson:"created_at"`
}

// New connects to MongoDB at uri and returns a store over the named
// database. The connection is verified with a ping before returning.
func New(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		client: client,
		groups: db.Collection("groups"),
		events: db.Collection("events"),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
