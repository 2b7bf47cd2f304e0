package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
)

// UpsertStakerAccount replaces the persisted projection of one account.
func (db *Database) UpsertStakerAccount(ctx context.Context, accountDoc *model.StakerAccountDocument) error {
	filter := bson.M{"_id": accountDoc.ID}
	update := bson.M{"$set": accountDoc}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.StakerAccountCollection).
		UpdateOne(ctx, filter, update, opts)
	return err
}

func (db *Database) GetStakerAccount(ctx context.Context, staker string) (*model.StakerAccountDocument, error) {
	filter := bson.M{"_id": staker}

	var accountDoc model.StakerAccountDocument
	err := db.collection(model.StakerAccountCollection).
		FindOne(ctx, filter).Decode(&accountDoc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     staker,
				Message: "staker account not found",
			}
		}
		return nil, err
	}

	return &accountDoc, nil
}

// GetAllStakerAccounts streams every persisted account, used to restore the
// in-memory ledger on startup.
func (db *Database) GetAllStakerAccounts(ctx context.Context) ([]*model.StakerAccountDocument, error) {
	cursor, err := db.collection(model.StakerAccountCollection).
		Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.StakerAccountDocument
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
