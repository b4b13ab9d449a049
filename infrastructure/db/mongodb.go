package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	connectAttempts = 5
	initialBackoff  = 2 * time.Second
)

type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoStore connects to MongoDB, retrying the initial connection with
// exponential backoff (2s, 4s, 8s, 16s, 32s) before giving up. The caller is
// expected to treat a returned error as fatal.
func NewMongoStore(ctx context.Context, uri, dbName string, log *zap.SugaredLogger) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri required")
	}
	if dbName == "" {
		return nil, errors.New("mongo database name required")
	}

	clientOpts := options.Client().ApplyURI(uri).
		SetMaxPoolSize(100)

	var lastErr error
	backoff := initialBackoff
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err := connect(ctx, clientOpts)
		if err == nil {
			return &MongoStore{
				Client: client,
				DB:     client.Database(dbName),
			}, nil
		}

		lastErr = err
		if attempt == connectAttempts {
			break
		}

		log.Warnw("mongo connect failed, retrying",
			"attempt", attempt,
			"backoff", backoff.String(),
			"error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}

	return nil, lastErr
}

func connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}
	return client, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(disconnectCtx)
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client is nil")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(pingCtx, nil)
}
