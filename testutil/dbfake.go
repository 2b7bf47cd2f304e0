package testutil

import (
	"context"
	"sync"

	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
)

// FakeDB is an in-memory stand-in for the database client, for unit tests
// that exercise the service layer without a running MongoDB.
type FakeDB struct {
	mu       sync.Mutex
	state    *model.LedgerStateDocument
	accounts map[string]*model.StakerAccountDocument
	events   []model.EventDocument

	// FailNext makes the next write operation return this error once.
	FailNext error
}

func NewFakeDB() *FakeDB {
	return &FakeDB{
		accounts: make(map[string]*model.StakerAccountDocument),
	}
}

var _ db.DbInterface = (*FakeDB)(nil)

func (f *FakeDB) failNext() error {
	err := f.FailNext
	f.FailNext = nil
	return err
}

func (f *FakeDB) Ping(ctx context.Context) error {
	return nil
}

func (f *FakeDB) SaveLedgerState(ctx context.Context, state *model.LedgerStateDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return err
	}
	stored := *state
	f.state = &stored
	return nil
}

func (f *FakeDB) GetLedgerState(ctx context.Context) (*model.LedgerStateDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == nil {
		return nil, &db.NotFoundError{
			Key:     model.LedgerStateCollection,
			Message: "ledger state has not been initialized",
		}
	}
	stored := *f.state
	return &stored, nil
}

func (f *FakeDB) AddAllowedCollections(ctx context.Context, collections []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == nil {
		return &db.NotFoundError{
			Key:     model.LedgerStateCollection,
			Message: "ledger state has not been initialized",
		}
	}
	existing := make(map[string]struct{}, len(f.state.AllowedCollections))
	for _, collection := range f.state.AllowedCollections {
		existing[collection] = struct{}{}
	}
	for _, collection := range collections {
		if _, ok := existing[collection]; !ok {
			f.state.AllowedCollections = append(f.state.AllowedCollections, collection)
			existing[collection] = struct{}{}
		}
	}
	return nil
}

func (f *FakeDB) UpsertStakerAccount(ctx context.Context, accountDoc *model.StakerAccountDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return err
	}
	stored := *accountDoc
	f.accounts[accountDoc.ID] = &stored
	return nil
}

func (f *FakeDB) GetStakerAccount(ctx context.Context, staker string) (*model.StakerAccountDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	accountDoc, ok := f.accounts[staker]
	if !ok {
		return nil, &db.NotFoundError{Key: staker, Message: "staker account not found"}
	}
	stored := *accountDoc
	return &stored, nil
}

func (f *FakeDB) GetAllStakerAccounts(ctx context.Context) ([]*model.StakerAccountDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	accountDocs := make([]*model.StakerAccountDocument, 0, len(f.accounts))
	for _, accountDoc := range f.accounts {
		stored := *accountDoc
		accountDocs = append(accountDocs, &stored)
	}
	return accountDocs, nil
}

func (f *FakeDB) InsertEvent(ctx context.Context, eventDoc *model.EventDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext(); err != nil {
		return err
	}
	f.events = append(f.events, *eventDoc)
	return nil
}

func (f *FakeDB) ListEventsByType(ctx context.Context, eventType string, limit int64) ([]model.EventDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []model.EventDocument
	for _, event := range f.events {
		if eventType != "" && event.Type != eventType {
			continue
		}
		events = append(events, event)
		if limit > 0 && int64(len(events)) >= limit {
			break
		}
	}
	return events, nil
}

// Events returns a copy of all logged events.
func (f *FakeDB) Events() []model.EventDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]model.EventDocument, len(f.events))
	copy(events, f.events)
	return events
}
