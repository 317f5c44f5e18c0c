package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const disconnectTimeout = 5 * time.Second

// Connection is the process-wide MongoDB handle. The driver dials lazily, so
// constructing it performs no network I/O.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects to uri and selects database.
func NewConnection(ctx context.Context, uri, database string) (*Connection, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	return &Connection{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (c *Connection) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connection) collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}
