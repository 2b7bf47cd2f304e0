package services

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

func (s *Service) Stake(ctx context.Context, staker, collection string, itemID uint64) (*types.Event, error) {
	return s.runOp(ctx, "stake", staker, func() (*types.Event, error) {
		return s.ledger.Stake(ctx, staker, collection, itemID)
	})
}

func (s *Service) Unstake(ctx context.Context, staker string, itemIndex uint64) (*types.Event, error) {
	return s.runOp(ctx, "unstake", staker, func() (*types.Event, error) {
		return s.ledger.Unstake(ctx, staker, itemIndex)
	})
}

func (s *Service) Withdraw(ctx context.Context, staker string, itemIndex uint64) (*types.Event, error) {
	return s.runOp(ctx, "withdraw", staker, func() (*types.Event, error) {
		return s.ledger.Withdraw(ctx, staker, itemIndex)
	})
}

func (s *Service) Claim(ctx context.Context, staker string) (*types.Event, error) {
	return s.runOp(ctx, "claim", staker, func() (*types.Event, error) {
		return s.ledger.Claim(ctx, staker)
	})
}

func (s *Service) SetRewardRate(ctx context.Context, caller string, newRate sdkmath.Uint) (*types.Event, error) {
	return s.runOp(ctx, "set_reward_rate", "", func() (*types.Event, error) {
		return s.ledger.SetRewardRate(caller, newRate)
	})
}

func (s *Service) SetClaimDelay(ctx context.Context, caller string, newDelaySteps uint64) (*types.Event, error) {
	return s.runOp(ctx, "set_claim_delay", "", func() (*types.Event, error) {
		return s.ledger.SetClaimDelay(caller, newDelaySteps)
	})
}

func (s *Service) SetWithdrawalCooldown(ctx context.Context, caller string, newCooldownSteps uint64) (*types.Event, error) {
	return s.runOp(ctx, "set_withdrawal_cooldown", "", func() (*types.Event, error) {
		return s.ledger.SetWithdrawalCooldown(caller, newCooldownSteps)
	})
}

func (s *Service) SetCollectionAllowed(ctx context.Context, caller, collection string, allowed bool) (*types.Event, error) {
	return s.runOp(ctx, "set_collection_allowed", "", func() (*types.Event, error) {
		return s.ledger.SetCollectionAllowed(caller, collection, allowed)
	})
}

func (s *Service) Pause(ctx context.Context, caller string) (*types.Event, error) {
	return s.runOp(ctx, "pause", "", func() (*types.Event, error) {
		return s.ledger.Pause(caller)
	})
}

func (s *Service) Unpause(ctx context.Context, caller string) (*types.Event, error) {
	return s.runOp(ctx, "unpause", "", func() (*types.Event, error) {
		return s.ledger.Unpause(caller)
	})
}

// runOp executes one ledger operation and, on success, persists the touched
// projections and commits the emitted event. The staker argument names the
// account projection to refresh; admin operations pass an empty string.
func (s *Service) runOp(
	ctx context.Context,
	op string,
	staker string,
	f func() (*types.Event, error),
) (*types.Event, error) {
	startTime := time.Now()
	event, err := f()
	metrics.RecordLedgerOpDuration(time.Since(startTime), op, err != nil)
	if err != nil {
		return nil, err
	}

	if staker != "" {
		if err := s.persistAccount(ctx, staker); err != nil {
			return nil, err
		}
	}
	if err := s.persistState(ctx); err != nil {
		return nil, err
	}
	if err := s.commitEvent(ctx, event); err != nil {
		return nil, err
	}

	metrics.RecordTotalActiveStaked(s.ledger.TotalActiveStaked())
	return event, nil
}
