package db

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const MAX_PING_RETRIES = 5

type MongoConnection struct {
	client   *mongo.Client
	database *mongo.Database
}

func (m *MongoConnection) GetCollection(collection string) *mongo.Collection {
	return m.database.Collection(collection)
}

func (m *MongoConnection) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Client Connection
func NewConnection(ctx context.Context, uri, database string) (*MongoConnection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	// The server may still be starting, retry ping
	retryBackoff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MAX_PING_RETRIES),
		ctx,
	)
	err = backoff.Retry(func() error {
		return client.Ping(ctx, readpref.Primary())
	}, retryBackoff)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoConnection{
		client:   client,
		database: client.Database(database),
	}, nil
}
