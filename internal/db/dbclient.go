package db

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
)

const (
	connectRetryAttempts = 5
	connectRetryDelay    = 500 * time.Millisecond
)

type Database struct {
	dbName string
	client *mongo.Client
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps = clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	database := &Database{
		dbName: cfg.DbName,
		client: client,
	}

	err = retry.Do(
		func() error { return database.Ping(ctx) },
		retry.Attempts(connectRetryAttempts),
		retry.Delay(connectRetryDelay),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}

	return database, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}
