package rewardtoken

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer debits the funder", func(t *testing.T) {
		l := NewInMemoryLedger("treasury", sdkmath.NewUint(100))

		err := l.Transfer(ctx, "alice", sdkmath.NewUint(40))
		require.NoError(t, err)

		aliceBalance, err := l.BalanceOf(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, sdkmath.NewUint(40), aliceBalance)

		treasuryBalance, err := l.BalanceOf(ctx, "treasury")
		require.NoError(t, err)
		assert.Equal(t, sdkmath.NewUint(60), treasuryBalance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		l := NewInMemoryLedger("treasury", sdkmath.NewUint(10))

		err := l.Transfer(ctx, "alice", sdkmath.NewUint(11))
		assert.True(t, IsInsufficientFundsError(err))

		// nothing moved
		balance, err := l.BalanceOf(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("unknown holder has zero balance", func(t *testing.T) {
		l := NewInMemoryLedger("treasury", sdkmath.NewUint(10))

		balance, err := l.BalanceOf(ctx, "nobody")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
}
