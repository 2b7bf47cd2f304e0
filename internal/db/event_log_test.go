//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

func TestEventLog(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	events := []*types.Event{
		{Type: types.EventStaked, Step: 1, Payload: types.StakedPayload{Staker: "alice", Collection: "punks", ItemID: 1, TotalActiveStaked: 1}},
		{Type: types.EventStaked, Step: 2, Payload: types.StakedPayload{Staker: "bob", Collection: "punks", ItemID: 2, TotalActiveStaked: 2}},
		{Type: types.EventClaimed, Step: 10, Payload: types.ClaimedPayload{Staker: "alice", Amount: "100"}},
	}
	for _, event := range events {
		require.NoError(t, testDB.InsertEvent(ctx, model.FromEvent(event)))
	}

	t.Run("filter by type", func(t *testing.T) {
		found, err := testDB.ListEventsByType(ctx, types.EventStaked.String(), 10)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, uint64(1), found[0].Step)
		assert.Equal(t, uint64(2), found[1].Step)
	})

	t.Run("empty type returns everything", func(t *testing.T) {
		found, err := testDB.ListEventsByType(ctx, "", 10)
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("limit", func(t *testing.T) {
		found, err := testDB.ListEventsByType(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, types.EventStaked.String(), found[0].Type)
	})
}
