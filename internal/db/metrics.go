package db

import (
	"context"
	"time"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveLedgerState(ctx context.Context, state *model.LedgerStateDocument) error {
	return d.run("SaveLedgerState", func() error {
		return d.db.SaveLedgerState(ctx, state)
	})
}

func (d *DbWithMetrics) GetLedgerState(ctx context.Context) (result *model.LedgerStateDocument, err error) {
	//nolint:errcheck
	d.run("GetLedgerState", func() error {
		result, err = d.db.GetLedgerState(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) AddAllowedCollections(ctx context.Context, collections []string) error {
	return d.run("AddAllowedCollections", func() error {
		return d.db.AddAllowedCollections(ctx, collections)
	})
}

func (d *DbWithMetrics) UpsertStakerAccount(ctx context.Context, accountDoc *model.StakerAccountDocument) error {
	return d.run("UpsertStakerAccount", func() error {
		return d.db.UpsertStakerAccount(ctx, accountDoc)
	})
}

func (d *DbWithMetrics) GetStakerAccount(ctx context.Context, staker string) (result *model.StakerAccountDocument, err error) {
	//nolint:errcheck
	d.run("GetStakerAccount", func() error {
		result, err = d.db.GetStakerAccount(ctx, staker)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllStakerAccounts(ctx context.Context) (result []*model.StakerAccountDocument, err error) {
	//nolint:errcheck
	d.run("GetAllStakerAccounts", func() error {
		result, err = d.db.GetAllStakerAccounts(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) InsertEvent(ctx context.Context, eventDoc *model.EventDocument) error {
	return d.run("InsertEvent", func() error {
		return d.db.InsertEvent(ctx, eventDoc)
	})
}

func (d *DbWithMetrics) ListEventsByType(ctx context.Context, eventType string, limit int64) (result []model.EventDocument, err error) {
	//nolint:errcheck
	d.run("ListEventsByType", func() error {
		result, err = d.db.ListEventsByType(ctx, eventType, limit)
		return err
	})
	return
}

// run is private method that executes passed lambda function and sends metrics
// data with spent time, method name and an error if any. It returns the error
// from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
