package rewardtoken

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// RewardInterface is the fungible reward ledger the engine pays claims from.
// Transfer fails if the engine's funded balance cannot cover the amount; the
// engine treats any failure as claim abort.
type RewardInterface interface {
	Transfer(ctx context.Context, to string, amount sdkmath.Uint) error
	BalanceOf(ctx context.Context, holder string) (sdkmath.Uint, error)
}
