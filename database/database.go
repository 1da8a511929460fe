package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection         = "users"
	NotificationsCollection = "notifications"
)

// DB wraps the mongo client and the application database. It is created
// once at startup and handed to the repositories; there is no global
// connection state.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection and creates the
// indexes the repositories rely on.
func New(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{client: client, db: client.Database(dbName)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Collection returns a handle to a named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	_, err = d.Collection(NotificationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}
	return nil
}
