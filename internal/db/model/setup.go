package model

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
)

var collections = map[string][]mongo.IndexModel{
	StakerAccountCollection: nil,
	LedgerStateCollection:   nil,
	EventLogCollection: {
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "step", Value: 1}}},
	},
}

// Setup creates the collections and indexes the engine relies on. It is safe
// to run repeatedly.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps = clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.DbName)
	for name, indexes := range collections {
		// NamespaceExists is fine, the collection is already there
		if err := database.CreateCollection(ctx, name); err != nil {
			var cmdErr mongo.CommandError
			if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
				return err
			}
		}
		if len(indexes) == 0 {
			continue
		}
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}
