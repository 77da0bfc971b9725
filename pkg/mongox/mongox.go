// Package mongox owns the process-wide Mongo client. The handle is created
// lazily on first use and shared by every request for the process lifetime;
// concurrent first callers block on the same initialization instead of
// racing separate connections.
package mongox

import (
	"context"
	"errors"
	"sync"

	"supplygenie/backend/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrURINotSet is returned when MONGODB_URI is absent. There is no fallback:
// persistence calls fail fast rather than connecting somewhere implicit.
var ErrURINotSet = errors.New("MONGODB_URI not set")

var (
	once      sync.Once
	client    *mongo.Client
	clientErr error
)

// Client returns the shared Mongo client, connecting on first call.
// A connection failure is sticky for the process, matching the
// no-retry contract: the caller decides what to do with it.
func Client(_ context.Context) (*mongo.Client, error) {
	once.Do(func() {
		cfg := config.Get()
		if cfg.Mongo.URI == "" {
			clientErr = ErrURINotSet
			return
		}

		// The handle outlives any one request, so initialization is bounded
		// by its own timeout rather than the first caller's context.
		connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		defer cancel()

		c, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(connectCtx, nil); err != nil {
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// Collection returns the user-chats collection on the shared client
func Collection(ctx context.Context) (*mongo.Collection, error) {
	c, err := Client(ctx)
	if err != nil {
		return nil, err
	}
	cfg := config.Get()
	return c.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), nil
}

// Disconnect closes the shared client. Only called on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
