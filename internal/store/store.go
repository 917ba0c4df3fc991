package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store wraps the mongo client. Each product family persists into its
// own collection; stock alerts get a collection of their own.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

const alertsCollection = "stock_alerts"

// NewStore connects to mongo and verifies the connection
func NewStore(uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close disconnects the mongo client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Database returns the underlying database handle
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
