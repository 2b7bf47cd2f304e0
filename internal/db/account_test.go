//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
	"github.com/stakewarden-io/nft-staking-engine/testutil"
)

func TestStakerAccounts(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		doc, err := testDB.GetStakerAccount(ctx, testutil.RandomStakerAddress())
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, doc)
	})

	t.Run("upsert and reload", func(t *testing.T) {
		staker := testutil.RandomStakerAddress()
		doc := &model.StakerAccountDocument{
			ID:                staker,
			LastSettledIndex:  "100",
			UnclaimedReward:   "40",
			LastClaimStep:     7,
			ActiveStakedCount: 1,
			Items: []model.StakedItemDocument{
				{Collection: testutil.RandomCollection(), ItemID: 1, State: types.StateActive.String()},
			},
		}
		require.NoError(t, testDB.UpsertStakerAccount(ctx, doc))

		found, err := testDB.GetStakerAccount(ctx, staker)
		require.NoError(t, err)
		assert.Equal(t, doc, found)

		// upsert replaces the projection in place
		doc.UnclaimedReward = "0"
		doc.LastClaimStep = 20
		require.NoError(t, testDB.UpsertStakerAccount(ctx, doc))

		found, err = testDB.GetStakerAccount(ctx, staker)
		require.NoError(t, err)
		assert.Equal(t, "0", found.UnclaimedReward)
		assert.Equal(t, uint64(20), found.LastClaimStep)
	})

	t.Run("list all", func(t *testing.T) {
		stakers := []string{testutil.RandomStakerAddress(), testutil.RandomStakerAddress()}
		for _, staker := range stakers {
			require.NoError(t, testDB.UpsertStakerAccount(ctx, &model.StakerAccountDocument{
				ID:               staker,
				LastSettledIndex: "0",
				UnclaimedReward:  "0",
			}))
		}

		all, err := testDB.GetAllStakerAccounts(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(all))
		for _, accountDoc := range all {
			ids = append(ids, accountDoc.ID)
		}
		assert.Subset(t, ids, stakers)
	})

	t.Run("round-trip through the domain type", func(t *testing.T) {
		staker := testutil.RandomStakerAddress()
		doc := &model.StakerAccountDocument{
			ID:                staker,
			LastSettledIndex:  "123456789012345678901234567890",
			UnclaimedReward:   "42",
			ActiveStakedCount: 1,
			Items: []model.StakedItemDocument{
				{Collection: "punks", ItemID: 9, UnstakedAtStep: 5, State: types.StateUnbonding.String()},
			},
		}
		require.NoError(t, testDB.UpsertStakerAccount(ctx, doc))

		found, err := testDB.GetStakerAccount(ctx, staker)
		require.NoError(t, err)

		account, err := found.ToStakerAccount()
		require.NoError(t, err)
		assert.Equal(t, "123456789012345678901234567890", account.LastSettledIndex.String())
		require.Len(t, account.Items, 1)
		assert.False(t, account.Items[0].IsActive())

		back := model.FromStakerAccount(staker, account)
		assert.Equal(t, doc, back)
	})
}
