package ledger

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
)

func TestStakerAccountSettle(t *testing.T) {
	t.Run("credits index delta per active item", func(t *testing.T) {
		account := newStakerAccount(sdkmath.NewUint(100))
		account.ActiveStakedCount = 3

		account.Settle(sdkmath.NewUint(110))

		assert.Equal(t, sdkmath.NewUint(30), account.UnclaimedReward)
		assert.Equal(t, sdkmath.NewUint(110), account.LastSettledIndex)
	})

	t.Run("idempotent at the same index", func(t *testing.T) {
		account := newStakerAccount(sdkmath.NewUint(100))
		account.ActiveStakedCount = 1

		account.Settle(sdkmath.NewUint(105))
		account.Settle(sdkmath.NewUint(105))

		assert.Equal(t, sdkmath.NewUint(5), account.UnclaimedReward)
	})

	t.Run("fast-forwards index with no active items", func(t *testing.T) {
		account := newStakerAccount(sdkmath.NewUint(100))

		account.Settle(sdkmath.NewUint(200))

		assert.True(t, account.UnclaimedReward.IsZero())
		assert.Equal(t, sdkmath.NewUint(200), account.LastSettledIndex)
	})

	t.Run("new account starts at current index", func(t *testing.T) {
		account := newStakerAccount(sdkmath.NewUint(500))

		// no reward for accrual that happened before the account existed
		assert.Equal(t, sdkmath.NewUint(500), account.LastSettledIndex)
		assert.True(t, account.UnclaimedReward.IsZero())
	})
}

func TestStakedItemIsActive(t *testing.T) {
	active := StakedItem{Collection: "c", ItemID: 1}
	assert.True(t, active.IsActive())

	unbonding := StakedItem{Collection: "c", ItemID: 2, UnstakedAtStep: 42}
	assert.False(t, unbonding.IsActive())
}
