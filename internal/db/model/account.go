package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/stakewarden-io/nft-staking-engine/internal/ledger"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

const StakerAccountCollection = "staker_accounts"

type StakedItemDocument struct {
	Collection     string `bson:"collection"`
	ItemID         uint64 `bson:"item_id"`
	UnstakedAtStep uint64 `bson:"unstaked_at_step"`
	State          string `bson:"state"`
}

// StakerAccountDocument is the persisted projection of a staker account.
// Index and reward values are stored as decimal strings to keep full
// precision.
type StakerAccountDocument struct {
	ID                string               `bson:"_id"`
	LastSettledIndex  string               `bson:"last_settled_index"`
	UnclaimedReward   string               `bson:"unclaimed_reward"`
	LastClaimStep     uint64               `bson:"last_claim_step"`
	ActiveStakedCount uint64               `bson:"active_staked_count"`
	Items             []StakedItemDocument `bson:"items"`
}

func FromStakerAccount(staker string, account ledger.StakerAccount) *StakerAccountDocument {
	items := make([]StakedItemDocument, len(account.Items))
	for i, item := range account.Items {
		items[i] = StakedItemDocument{
			Collection:     item.Collection,
			ItemID:         item.ItemID,
			UnstakedAtStep: item.UnstakedAtStep,
			State:          types.ItemStateFor(item.UnstakedAtStep).String(),
		}
	}
	return &StakerAccountDocument{
		ID:                staker,
		LastSettledIndex:  account.LastSettledIndex.String(),
		UnclaimedReward:   account.UnclaimedReward.String(),
		LastClaimStep:     account.LastClaimStep,
		ActiveStakedCount: account.ActiveStakedCount,
		Items:             items,
	}
}

func (d *StakerAccountDocument) ToStakerAccount() (ledger.StakerAccount, error) {
	lastSettled, err := sdkmath.ParseUint(d.LastSettledIndex)
	if err != nil {
		return ledger.StakerAccount{}, fmt.Errorf("invalid last settled index for account %s: %w", d.ID, err)
	}
	unclaimed, err := sdkmath.ParseUint(d.UnclaimedReward)
	if err != nil {
		return ledger.StakerAccount{}, fmt.Errorf("invalid unclaimed reward for account %s: %w", d.ID, err)
	}

	items := make([]ledger.StakedItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = ledger.StakedItem{
			Collection:     item.Collection,
			ItemID:         item.ItemID,
			UnstakedAtStep: item.UnstakedAtStep,
		}
	}
	return ledger.StakerAccount{
		LastSettledIndex:  lastSettled,
		UnclaimedReward:   unclaimed,
		LastClaimStep:     d.LastClaimStep,
		ActiveStakedCount: d.ActiveStakedCount,
		Items:             items,
	}, nil
}
