package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/internal/clients/authgate"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/ledger"
)

// LoadOrInitState fetches the persisted ledger state, seeding it from config
// on first run. The genesis timestamp is fixed at initialization and never
// changes afterwards, so step heights stay stable across restarts.
func LoadOrInitState(ctx context.Context, cfg *config.Config, dbClient db.DbInterface) (*model.LedgerStateDocument, error) {
	state, err := dbClient.GetLedgerState(ctx)
	if err == nil {
		return state, nil
	}
	if !db.IsNotFoundError(err) {
		return nil, err
	}

	log.Ctx(ctx).Info().Msg("No persisted ledger state found, initializing from config")

	state = &model.LedgerStateDocument{
		RewardRatePerStep:       cfg.Ledger.RewardRatePerStep,
		ClaimDelaySteps:         cfg.Ledger.ClaimDelaySteps,
		WithdrawalCooldownSteps: cfg.Ledger.WithdrawalCooldownSteps,
		VaultAddress:            cfg.Ledger.VaultAddress,
		Paused:                  false,
		GlobalIndex:             sdkmath.ZeroUint().String(),
		LastUpdatedStep:         0,
		TotalActiveStaked:       0,
		AllowedCollections:      cfg.Ledger.AllowedCollections,
		GenesisUnix:             time.Now().Unix(),
	}
	if err := dbClient.SaveLedgerState(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save initial ledger state: %w", err)
	}
	return state, nil
}

// RestoreLedger rebuilds the in-memory ledger from the persisted state and
// account projections.
func RestoreLedger(
	ctx context.Context,
	state *model.LedgerStateDocument,
	stepInterval time.Duration,
	dbClient db.DbInterface,
	custodyClient custody.CustodyInterface,
	rewardClient rewardtoken.RewardInterface,
	auth authgate.AuthInterface,
) (*ledger.Ledger, error) {
	rate, err := sdkmath.ParseUint(state.RewardRatePerStep)
	if err != nil {
		return nil, fmt.Errorf("invalid persisted reward rate %q: %w", state.RewardRatePerStep, err)
	}
	globalIndex, err := sdkmath.ParseUint(state.GlobalIndex)
	if err != nil {
		return nil, fmt.Errorf("invalid persisted global index %q: %w", state.GlobalIndex, err)
	}

	accountDocs, err := dbClient.GetAllStakerAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staker accounts: %w", err)
	}
	accounts := make(map[string]ledger.StakerAccount, len(accountDocs))
	for _, doc := range accountDocs {
		account, err := doc.ToStakerAccount()
		if err != nil {
			return nil, err
		}
		accounts[doc.ID] = account
	}

	snap := ledger.Snapshot{
		Params: ledger.Params{
			RewardRatePerStep:       rate,
			ClaimDelaySteps:         state.ClaimDelaySteps,
			WithdrawalCooldownSteps: state.WithdrawalCooldownSteps,
			VaultAddress:            state.VaultAddress,
		},
		Paused: state.Paused,
		GlobalIndex: ledger.RewardIndex{
			Index:           globalIndex,
			LastUpdatedStep: state.LastUpdatedStep,
		},
		TotalActiveStaked:  state.TotalActiveStaked,
		AllowedCollections: state.AllowedCollections,
		Accounts:           accounts,
	}

	clock := ledger.NewIntervalClock(time.Unix(state.GenesisUnix, 0), stepInterval)
	restored := ledger.Restore(snap, clock, custodyClient, rewardClient, auth)

	log.Ctx(ctx).Info().
		Int("accounts", len(accounts)).
		Uint64("total_active_staked", state.TotalActiveStaked).
		Uint64("last_updated_step", state.LastUpdatedStep).
		Msg("Restored ledger state")

	return restored, nil
}
