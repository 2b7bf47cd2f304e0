package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
)

// SaveLedgerState upserts the single global state document.
func (db *Database) SaveLedgerState(ctx context.Context, state *model.LedgerStateDocument) error {
	update := bson.M{"$set": state}
	opts := options.Update().SetUpsert(true)
	_, err := db.collection(model.LedgerStateCollection).
		UpdateOne(ctx, bson.M{}, update, opts)
	return err
}

func (db *Database) GetLedgerState(ctx context.Context) (*model.LedgerStateDocument, error) {
	var state model.LedgerStateDocument
	err := db.collection(model.LedgerStateCollection).
		FindOne(ctx, bson.M{}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.LedgerStateCollection,
				Message: "ledger state has not been initialized",
			}
		}
		return nil, err
	}
	return &state, nil
}

// AddAllowedCollections adds collection identities to the persisted
// allow-list without touching the rest of the state document. The engine
// picks the change up on the next restore.
func (db *Database) AddAllowedCollections(ctx context.Context, collections []string) error {
	if len(collections) == 0 {
		return nil
	}

	update := bson.M{
		"$addToSet": bson.M{
			"allowed_collections": bson.M{"$each": collections},
		},
	}

	res, err := db.collection(model.LedgerStateCollection).
		UpdateOne(ctx, bson.M{}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     model.LedgerStateCollection,
			Message: "ledger state has not been initialized",
		}
	}
	return nil
}
