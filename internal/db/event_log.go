package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
)

// InsertEvent appends one event to the audit log.
func (db *Database) InsertEvent(ctx context.Context, eventDoc *model.EventDocument) error {
	_, err := db.collection(model.EventLogCollection).
		InsertOne(ctx, eventDoc)
	return err
}

// ListEventsByType returns up to limit events of the given type in insertion
// order. An empty eventType returns events of every type.
func (db *Database) ListEventsByType(ctx context.Context, eventType string, limit int64) ([]model.EventDocument, error) {
	filter := bson.M{}
	if eventType != "" {
		filter["type"] = eventType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.EventLogCollection).
		Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.EventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
