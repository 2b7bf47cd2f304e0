package ledger

import (
	sdkmath "cosmossdk.io/math"
)

// StakedItem is a single collectible held in custody. UnstakedAtStep is zero
// while the item is actively staked and is set exactly once on unstake.
type StakedItem struct {
	Collection     string
	ItemID         uint64
	UnstakedAtStep uint64
}

func (it StakedItem) IsActive() bool {
	return it.UnstakedAtStep == 0
}

// StakerAccount is the per-depositor state. ActiveStakedCount always equals
// the number of entries in Items with UnstakedAtStep == 0.
type StakerAccount struct {
	LastSettledIndex  sdkmath.Uint
	UnclaimedReward   sdkmath.Uint
	LastClaimStep     uint64
	ActiveStakedCount uint64
	Items             []StakedItem
}

// newStakerAccount creates an account whose lagging index starts at the
// current global index, so a fresh account can never absorb reward accrued
// before its first stake.
func newStakerAccount(currentIndex sdkmath.Uint) *StakerAccount {
	return &StakerAccount{
		LastSettledIndex: currentIndex,
		UnclaimedReward:  sdkmath.ZeroUint(),
	}
}

// Settle credits the reward accrued since the account's last settlement and
// moves the lagging index up to the given global index. O(1) regardless of
// account history; settling twice against the same index credits nothing.
func (a *StakerAccount) Settle(globalIndex sdkmath.Uint) {
	deltaIndex := globalIndex.Sub(a.LastSettledIndex)
	if !deltaIndex.IsZero() && a.ActiveStakedCount > 0 {
		earned := deltaIndex.Mul(sdkmath.NewUint(a.ActiveStakedCount))
		a.UnclaimedReward = a.UnclaimedReward.Add(earned)
	}
	a.LastSettledIndex = globalIndex
}

// clone returns a deep copy safe to hand outside the ledger lock.
func (a *StakerAccount) clone() StakerAccount {
	cp := *a
	cp.Items = make([]StakedItem, len(a.Items))
	copy(cp.Items, a.Items)
	return cp
}
