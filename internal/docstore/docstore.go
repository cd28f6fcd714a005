package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultPingTimeout = 5 * time.Second

// Client wraps the MongoDB connection. The document store is an external
// collaborator: the process connects and verifies reachability at startup,
// but no request path reads from or writes to it.
type Client struct {
	client *mongo.Client
}

// Connect dials the document store and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Client{client: client}, nil
}

// Database returns a handle to the named database.
func (c *Client) Database(name string) *mongo.Database {
	return c.client.Database(name)
}

// Close disconnects from the document store.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
