package db

import (
	"context"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	SaveLedgerState(ctx context.Context, state *model.LedgerStateDocument) error
	GetLedgerState(ctx context.Context) (*model.LedgerStateDocument, error)
	AddAllowedCollections(ctx context.Context, collections []string) error
	UpsertStakerAccount(ctx context.Context, accountDoc *model.StakerAccountDocument) error
	GetStakerAccount(ctx context.Context, staker string) (*model.StakerAccountDocument, error)
	GetAllStakerAccounts(ctx context.Context) ([]*model.StakerAccountDocument, error)
	InsertEvent(ctx context.Context, eventDoc *model.EventDocument) error
	ListEventsByType(ctx context.Context, eventType string, limit int64) ([]model.EventDocument, error)
}
