package ledger

import (
	"context"
	"sort"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/stakewarden-io/nft-staking-engine/internal/clients/authgate"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

// Params are the tunable accrual and gating parameters.
type Params struct {
	RewardRatePerStep       sdkmath.Uint
	ClaimDelaySteps         uint64
	WithdrawalCooldownSteps uint64
	VaultAddress            string
}

// Ledger is the stake ledger plus the operations layer around it. One mutex
// serializes all operations; it is held across collaborator calls, so a
// re-entrant callback can never observe intermediate state. Operations are
// all-or-nothing: every mutation that depends on a collaborator call happens
// only after that call succeeded.
type Ledger struct {
	mu sync.Mutex

	params Params
	paused bool

	globalIndex        RewardIndex
	totalActiveStaked  uint64
	allowedCollections map[string]struct{}
	accounts           map[string]*StakerAccount

	clock   StepSource
	custody custody.CustodyInterface
	rewards rewardtoken.RewardInterface
	auth    authgate.AuthInterface
}

func New(
	params Params,
	allowedCollections []string,
	clock StepSource,
	custodyClient custody.CustodyInterface,
	rewardClient rewardtoken.RewardInterface,
	auth authgate.AuthInterface,
) *Ledger {
	allowed := make(map[string]struct{}, len(allowedCollections))
	for _, collection := range allowedCollections {
		allowed[collection] = struct{}{}
	}
	return &Ledger{
		params:             params,
		globalIndex:        NewRewardIndex(clock.CurrentStep()),
		allowedCollections: allowed,
		accounts:           make(map[string]*StakerAccount),
		clock:              clock,
		custody:            custodyClient,
		rewards:            rewardClient,
		auth:               auth,
	}
}

// Stake takes custody of an item and starts accruing reward for it. The
// custody transfer runs after settlement but before the count change commits,
// so a transfer failure leaves no count or item mutation behind.
func (l *Ledger) Stake(ctx context.Context, staker, collection string, itemID uint64) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	if collection == "" {
		return nil, ErrInvalidCollection
	}
	if _, ok := l.allowedCollections[collection]; !ok {
		return nil, ErrCollectionNotAllowed
	}

	step := l.clock.CurrentStep()
	l.globalIndex.Advance(step, l.params.RewardRatePerStep, l.totalActiveStaked)

	account, ok := l.accounts[staker]
	if !ok {
		account = newStakerAccount(l.globalIndex.Index)
		l.accounts[staker] = account
	}
	account.Settle(l.globalIndex.Index)

	if err := l.custody.Transfer(ctx, staker, l.params.VaultAddress, collection, itemID); err != nil {
		return nil, err
	}

	account.Items = append(account.Items, StakedItem{Collection: collection, ItemID: itemID})
	account.ActiveStakedCount++
	l.totalActiveStaked++

	return &types.Event{
		Type: types.EventStaked,
		Step: step,
		Payload: types.StakedPayload{
			Staker:            staker,
			Collection:        collection,
			ItemID:            itemID,
			TotalActiveStaked: l.totalActiveStaked,
		},
	}, nil
}

// Unstake stops accrual for the item at the given index and starts its
// withdrawal cooldown. The item stays in custody until Withdraw.
func (l *Ledger) Unstake(ctx context.Context, staker string, itemIndex uint64) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[staker]
	if !ok || itemIndex >= uint64(len(account.Items)) {
		return nil, ErrItemIndexOutOfRange
	}
	item := &account.Items[itemIndex]
	if !item.IsActive() {
		return nil, ErrAlreadyUnstaked
	}

	step := l.clock.CurrentStep()
	l.globalIndex.Advance(step, l.params.RewardRatePerStep, l.totalActiveStaked)
	account.Settle(l.globalIndex.Index)

	account.ActiveStakedCount--
	l.totalActiveStaked--
	item.UnstakedAtStep = step

	return &types.Event{
		Type: types.EventUnstaked,
		Step: step,
		Payload: types.UnstakedPayload{
			Staker:            staker,
			Collection:        item.Collection,
			ItemID:            item.ItemID,
			TotalActiveStaked: l.totalActiveStaked,
		},
	}, nil
}

// Withdraw releases an unstaked item from custody once its cooldown has
// elapsed. Removal is swap-with-last, so indices of remaining items are not
// stable across withdrawals. Reward settlement already happened at unstake
// time; only the global index is brought current here.
func (l *Ledger) Withdraw(ctx context.Context, staker string, itemIndex uint64) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[staker]
	if !ok || itemIndex >= uint64(len(account.Items)) {
		return nil, ErrItemIndexOutOfRange
	}
	item := account.Items[itemIndex]
	if item.IsActive() {
		return nil, ErrNotUnstaked
	}

	step := l.clock.CurrentStep()
	if step-item.UnstakedAtStep < l.params.WithdrawalCooldownSteps {
		return nil, ErrCooldownNotElapsed
	}
	l.globalIndex.Advance(step, l.params.RewardRatePerStep, l.totalActiveStaked)

	if err := l.custody.Transfer(ctx, l.params.VaultAddress, staker, item.Collection, item.ItemID); err != nil {
		return nil, err
	}

	last := len(account.Items) - 1
	account.Items[itemIndex] = account.Items[last]
	account.Items = account.Items[:last]

	return &types.Event{
		Type: types.EventWithdrawn,
		Step: step,
		Payload: types.WithdrawnPayload{
			Staker:     staker,
			Collection: item.Collection,
			ItemID:     item.ItemID,
		},
	}, nil
}

// Claim settles the caller's account and pays out the whole unclaimed
// balance. The balance is zeroed only after the reward transfer succeeded, so
// a transfer failure leaves the claim as if it never happened.
func (l *Ledger) Claim(ctx context.Context, staker string) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	step := l.clock.CurrentStep()

	account, ok := l.accounts[staker]
	if !ok {
		if step < l.params.ClaimDelaySteps {
			return nil, ErrDelayNotElapsed
		}
		return nil, ErrNothingToClaim
	}
	if step-account.LastClaimStep < l.params.ClaimDelaySteps {
		return nil, ErrDelayNotElapsed
	}

	l.globalIndex.Advance(step, l.params.RewardRatePerStep, l.totalActiveStaked)
	account.Settle(l.globalIndex.Index)

	if account.UnclaimedReward.IsZero() {
		return nil, ErrNothingToClaim
	}
	amount := account.UnclaimedReward

	if err := l.rewards.Transfer(ctx, staker, amount); err != nil {
		return nil, err
	}

	account.UnclaimedReward = sdkmath.ZeroUint()
	account.LastClaimStep = step

	return &types.Event{
		Type: types.EventClaimed,
		Step: step,
		Payload: types.ClaimedPayload{
			Staker: staker,
			Amount: amount.String(),
		},
	}, nil
}

// SetRewardRate crystallizes accrual at the old rate up to the current step,
// then applies the new rate.
func (l *Ledger) SetRewardRate(caller string, newRate sdkmath.Uint) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}

	step := l.clock.CurrentStep()
	l.globalIndex.Advance(step, l.params.RewardRatePerStep, l.totalActiveStaked)

	oldRate := l.params.RewardRatePerStep
	l.params.RewardRatePerStep = newRate

	return &types.Event{
		Type: types.EventRewardRateChanged,
		Step: step,
		Payload: types.RewardRateChangedPayload{
			OldRate: oldRate.String(),
			NewRate: newRate.String(),
		},
	}, nil
}

// SetClaimDelay updates the minimum spacing between claims. No accrual
// interaction: the delay is a gating check, not an index term.
func (l *Ledger) SetClaimDelay(caller string, newDelaySteps uint64) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}

	oldDelay := l.params.ClaimDelaySteps
	l.params.ClaimDelaySteps = newDelaySteps

	return &types.Event{
		Type: types.EventClaimDelayChanged,
		Step: l.clock.CurrentStep(),
		Payload: types.ClaimDelayChangedPayload{
			OldDelaySteps: oldDelay,
			NewDelaySteps: newDelaySteps,
		},
	}, nil
}

// SetWithdrawalCooldown updates the unstake-to-withdraw cooldown.
func (l *Ledger) SetWithdrawalCooldown(caller string, newCooldownSteps uint64) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}

	oldCooldown := l.params.WithdrawalCooldownSteps
	l.params.WithdrawalCooldownSteps = newCooldownSteps

	return &types.Event{
		Type: types.EventCooldownChanged,
		Step: l.clock.CurrentStep(),
		Payload: types.CooldownChangedPayload{
			OldCooldownSteps: oldCooldown,
			NewCooldownSteps: newCooldownSteps,
		},
	}, nil
}

// SetCollectionAllowed adds or removes a collection from the allow-list.
func (l *Ledger) SetCollectionAllowed(caller, collection string, allowed bool) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}
	if collection == "" {
		return nil, ErrInvalidCollection
	}

	if allowed {
		l.allowedCollections[collection] = struct{}{}
	} else {
		delete(l.allowedCollections, collection)
	}

	return &types.Event{
		Type: types.EventCollectionAllowlistChanged,
		Step: l.clock.CurrentStep(),
		Payload: types.CollectionAllowlistChangedPayload{
			Collection: collection,
			Allowed:    allowed,
		},
	}, nil
}

// Pause blocks new stakes. Unstake, withdraw and claim deliberately stay
// available while paused so depositors can always exit.
func (l *Ledger) Pause(caller string) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}
	if l.paused {
		return nil, ErrAlreadyPaused
	}
	l.paused = true

	return &types.Event{
		Type:    types.EventPaused,
		Step:    l.clock.CurrentStep(),
		Payload: types.PausedPayload{By: caller},
	}, nil
}

func (l *Ledger) Unpause(caller string) (*types.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.auth.IsPrivileged(caller) {
		return nil, ErrNotAuthorized
	}
	if !l.paused {
		return nil, ErrNotPaused
	}
	l.paused = false

	return &types.Event{
		Type:    types.EventUnpaused,
		Step:    l.clock.CurrentStep(),
		Payload: types.PausedPayload{By: caller},
	}, nil
}

// AdvanceIndex brings the global index current without any other effect.
// Used by the background poller so the observable index does not lag
// arbitrarily between operations.
func (l *Ledger) AdvanceIndex() RewardIndex {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.globalIndex.Advance(l.clock.CurrentStep(), l.params.RewardRatePerStep, l.totalActiveStaked)
	return l.globalIndex
}

// AccountSnapshot returns a copy of the account, or false if the staker has
// never been seen.
func (l *Ledger) AccountSnapshot(staker string) (StakerAccount, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[staker]
	if !ok {
		return StakerAccount{}, false
	}
	return account.clone(), true
}

// PendingReward computes the reward the staker could settle right now,
// including the not-yet-credited portion, without mutating any state.
func (l *Ledger) PendingReward(staker string) sdkmath.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()

	account, ok := l.accounts[staker]
	if !ok {
		return sdkmath.ZeroUint()
	}

	virtual := l.globalIndex
	virtual.Advance(l.clock.CurrentStep(), l.params.RewardRatePerStep, l.totalActiveStaked)

	pending := account.UnclaimedReward
	if account.ActiveStakedCount > 0 {
		deltaIndex := virtual.Index.Sub(account.LastSettledIndex)
		pending = pending.Add(deltaIndex.Mul(sdkmath.NewUint(account.ActiveStakedCount)))
	}
	return pending
}

func (l *Ledger) Params() Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}

func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

func (l *Ledger) TotalActiveStaked() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalActiveStaked
}

func (l *Ledger) GlobalIndex() RewardIndex {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.globalIndex
}

func (l *Ledger) AllowedCollections() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	collections := make([]string, 0, len(l.allowedCollections))
	for collection := range l.allowedCollections {
		collections = append(collections, collection)
	}
	sort.Strings(collections)
	return collections
}
