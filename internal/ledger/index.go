package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// RewardIndex is the global accumulator of cumulative reward per staked item.
// Both fields are monotonically non-decreasing.
type RewardIndex struct {
	Index           sdkmath.Uint
	LastUpdatedStep uint64
}

func NewRewardIndex(step uint64) RewardIndex {
	return RewardIndex{
		Index:           sdkmath.ZeroUint(),
		LastUpdatedStep: step,
	}
}

// Advance folds the interval since the last update into the index at the given
// reward rate. While nobody is staked the index still grows at full rate with
// a denominator of one; that accrual stays unattributed because settlement is
// always forward from an account's own last-settled index.
//
// Advance must run before any staked-count change so every sub-interval is
// priced with the rate and denominator that were in effect during it. Calling
// it twice at the same step is a no-op.
func (ri *RewardIndex) Advance(currentStep uint64, rewardRate sdkmath.Uint, totalActiveStaked uint64) {
	if currentStep <= ri.LastUpdatedStep {
		return
	}
	elapsed := currentStep - ri.LastUpdatedStep

	denominator := totalActiveStaked
	if denominator == 0 {
		denominator = 1
	}

	// Integer division truncates; the remainder is deterministic dust.
	increment := rewardRate.
		Mul(sdkmath.NewUint(elapsed)).
		Quo(sdkmath.NewUint(denominator))

	ri.Index = ri.Index.Add(increment)
	ri.LastUpdatedStep = currentStep
}
