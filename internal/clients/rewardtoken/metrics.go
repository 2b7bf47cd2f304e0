package rewardtoken

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
)

type RewardWithMetrics struct {
	r RewardInterface
}

func NewRewardWithMetrics(r RewardInterface) *RewardWithMetrics {
	return &RewardWithMetrics{r: r}
}

func (rm *RewardWithMetrics) Transfer(ctx context.Context, to string, amount sdkmath.Uint) error {
	return rm.run("Transfer", func() error {
		return rm.r.Transfer(ctx, to, amount)
	})
}

func (rm *RewardWithMetrics) BalanceOf(ctx context.Context, holder string) (result sdkmath.Uint, err error) {
	//nolint:errcheck
	rm.run("BalanceOf", func() error {
		result, err = rm.r.BalanceOf(ctx, holder)
		return err
	})
	return
}

func (rm *RewardWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	metrics.RecordRewardClientLatency(time.Since(startTime), method, err != nil)
	return err
}
