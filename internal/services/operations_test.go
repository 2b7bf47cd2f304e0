package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewarden-io/nft-staking-engine/internal/clients/authgate"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/ledger"
	"github.com/stakewarden-io/nft-staking-engine/internal/services"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
	"github.com/stakewarden-io/nft-staking-engine/testutil"
)

const (
	vaultAddr  = "vault-1"
	ownerAddr  = "owner-1"
	collection = "punks"
)

type capturingPublisher struct {
	events []*types.Event
	err    error
}

func (p *capturingPublisher) PublishEvent(ctx context.Context, event *types.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type serviceFixture struct {
	service   *services.Service
	clock     *ledger.ManualClock
	registry  *custody.InMemoryRegistry
	db        *testutil.FakeDB
	publisher *capturingPublisher
}

func testConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{
			RewardRatePerStep:       "10",
			ClaimDelaySteps:         5,
			WithdrawalCooldownSteps: 5,
			StepInterval:            time.Minute,
			VaultAddress:            vaultAddr,
			OwnerAddress:            ownerAddr,
			AllowedCollections:      []string{collection},
			RewardTreasuryBalance:   "1000000",
		},
		Poller: config.PollerConfig{
			IndexPollingInterval: time.Second,
		},
	}
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	cfg := testConfig()
	clock := ledger.NewManualClock(0)
	registry := custody.NewInMemoryRegistry()
	rewards := rewardtoken.NewInMemoryLedger(vaultAddr, cfg.Ledger.TreasuryBalance())
	auth := authgate.NewStaticGate(ownerAddr)

	stakeLedger := ledger.New(ledger.Params{
		RewardRatePerStep:       cfg.Ledger.RewardRate(),
		ClaimDelaySteps:         cfg.Ledger.ClaimDelaySteps,
		WithdrawalCooldownSteps: cfg.Ledger.WithdrawalCooldownSteps,
		VaultAddress:            cfg.Ledger.VaultAddress,
	}, cfg.Ledger.AllowedCollections, clock, registry, rewards, auth)

	fakeDB := testutil.NewFakeDB()
	publisher := &capturingPublisher{}

	return &serviceFixture{
		service:   services.NewService(cfg, fakeDB, stakeLedger, publisher, time.Now().Unix()),
		clock:     clock,
		registry:  registry,
		db:        fakeDB,
		publisher: publisher,
	}
}

func TestServiceStake(t *testing.T) {
	ctx := context.Background()

	t.Run("persists projections and commits the event", func(t *testing.T) {
		f := newServiceFixture(t)
		f.registry.Register("alice", collection, 1)

		event, err := f.service.Stake(ctx, "alice", collection, 1)
		require.NoError(t, err)
		assert.Equal(t, types.EventStaked, event.Type)

		accountDoc, err := f.db.GetStakerAccount(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), accountDoc.ActiveStakedCount)
		require.Len(t, accountDoc.Items, 1)
		assert.Equal(t, types.StateActive.String(), accountDoc.Items[0].State)

		state, err := f.db.GetLedgerState(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), state.TotalActiveStaked)

		events := f.db.Events()
		require.Len(t, events, 1)
		assert.Equal(t, types.EventStaked.String(), events[0].Type)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, types.EventStaked, f.publisher.events[0].Type)
	})

	t.Run("ledger error skips persistence", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Stake(ctx, "alice", "unknown", 1)
		assert.ErrorIs(t, err, ledger.ErrCollectionNotAllowed)
		assert.Empty(t, f.db.Events())
		assert.Empty(t, f.publisher.events)
	})

	t.Run("persistence failure propagates", func(t *testing.T) {
		f := newServiceFixture(t)
		f.registry.Register("alice", collection, 1)
		f.db.FailNext = errors.New("mongo down")

		_, err := f.service.Stake(ctx, "alice", collection, 1)
		assert.ErrorContains(t, err, "mongo down")
	})

	t.Run("publish failure is non-fatal", func(t *testing.T) {
		f := newServiceFixture(t)
		f.registry.Register("alice", collection, 1)
		f.publisher.err = errors.New("broker down")

		_, err := f.service.Stake(ctx, "alice", collection, 1)
		require.NoError(t, err)

		// the audit log still has the event
		require.Len(t, f.db.Events(), 1)
	})
}

func TestServiceClaim(t *testing.T) {
	ctx := context.Background()

	f := newServiceFixture(t)
	f.registry.Register("alice", collection, 1)

	_, err := f.service.Stake(ctx, "alice", collection, 1)
	require.NoError(t, err)

	f.clock.SetStep(100)
	event, err := f.service.Claim(ctx, "alice")
	require.NoError(t, err)

	payload, ok := event.Payload.(types.ClaimedPayload)
	require.True(t, ok)
	assert.Equal(t, "1000", payload.Amount)

	accountDoc, err := f.db.GetStakerAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "0", accountDoc.UnclaimedReward)
	assert.Equal(t, uint64(100), accountDoc.LastClaimStep)
}

func TestServiceAdminOperations(t *testing.T) {
	ctx := context.Background()

	f := newServiceFixture(t)

	_, err := f.service.SetRewardRate(ctx, ownerAddr, sdkmath.NewUint(42))
	require.NoError(t, err)

	state, err := f.db.GetLedgerState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", state.RewardRatePerStep)

	_, err = f.service.Pause(ctx, ownerAddr)
	require.NoError(t, err)
	state, err = f.db.GetLedgerState(ctx)
	require.NoError(t, err)
	assert.True(t, state.Paused)

	_, err = f.service.SetRewardRate(ctx, "mallory", sdkmath.NewUint(1))
	assert.ErrorIs(t, err, ledger.ErrNotAuthorized)
}

func TestLoadOrInitState(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	fakeDB := testutil.NewFakeDB()

	state, err := services.LoadOrInitState(ctx, cfg, fakeDB)
	require.NoError(t, err)
	assert.Equal(t, "10", state.RewardRatePerStep)
	assert.Equal(t, []string{collection}, state.AllowedCollections)
	assert.NotZero(t, state.GenesisUnix)

	// second call returns the persisted document, not a fresh one
	state.GlobalIndex = "777"
	require.NoError(t, fakeDB.SaveLedgerState(ctx, state))

	reloaded, err := services.LoadOrInitState(ctx, cfg, fakeDB)
	require.NoError(t, err)
	assert.Equal(t, "777", reloaded.GlobalIndex)
	assert.Equal(t, state.GenesisUnix, reloaded.GenesisUnix)
}

func TestRestoreLedger(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	fakeDB := testutil.NewFakeDB()
	require.NoError(t, fakeDB.SaveLedgerState(ctx, &model.LedgerStateDocument{
		RewardRatePerStep:       "10",
		ClaimDelaySteps:         5,
		WithdrawalCooldownSteps: 5,
		VaultAddress:            vaultAddr,
		GlobalIndex:             "250",
		LastUpdatedStep:         25,
		TotalActiveStaked:       2,
		AllowedCollections:      []string{collection},
		GenesisUnix:             time.Now().Unix(),
	}))
	require.NoError(t, fakeDB.UpsertStakerAccount(ctx, &model.StakerAccountDocument{
		ID:                "alice",
		LastSettledIndex:  "250",
		UnclaimedReward:   "100",
		ActiveStakedCount: 2,
		Items: []model.StakedItemDocument{
			{Collection: collection, ItemID: 1, State: types.StateActive.String()},
			{Collection: collection, ItemID: 2, State: types.StateActive.String()},
		},
	}))

	state, err := fakeDB.GetLedgerState(ctx)
	require.NoError(t, err)

	registry := custody.NewInMemoryRegistry()
	rewards := rewardtoken.NewInMemoryLedger(vaultAddr, sdkmath.NewUint(1000))
	auth := authgate.NewStaticGate(ownerAddr)

	restored, err := services.RestoreLedger(ctx, state, cfg.Ledger.StepInterval, fakeDB, registry, rewards, auth)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), restored.TotalActiveStaked())
	assert.Equal(t, sdkmath.NewUint(250), restored.GlobalIndex().Index)

	account, ok := restored.AccountSnapshot("alice")
	require.True(t, ok)
	assert.Equal(t, sdkmath.NewUint(100), account.UnclaimedReward)
	assert.Len(t, account.Items, 2)

	t.Run("corrupt state is rejected", func(t *testing.T) {
		bad := *state
		bad.GlobalIndex = "not-a-number"
		_, err := services.RestoreLedger(ctx, &bad, cfg.Ledger.StepInterval, fakeDB, registry, rewards, auth)
		assert.Error(t, err)
	})
}
