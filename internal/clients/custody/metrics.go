package custody

import (
	"context"
	"time"

	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
)

type CustodyWithMetrics struct {
	c CustodyInterface
}

func NewCustodyWithMetrics(c CustodyInterface) *CustodyWithMetrics {
	return &CustodyWithMetrics{c: c}
}

func (cm *CustodyWithMetrics) Transfer(ctx context.Context, from, to, collection string, itemID uint64) error {
	return cm.run("Transfer", func() error {
		return cm.c.Transfer(ctx, from, to, collection, itemID)
	})
}

func (cm *CustodyWithMetrics) OwnerOf(ctx context.Context, collection string, itemID uint64) (result string, err error) {
	//nolint:errcheck
	cm.run("OwnerOf", func() error {
		result, err = cm.c.OwnerOf(ctx, collection, itemID)
		return err
	})
	return
}

func (cm *CustodyWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	metrics.RecordCustodyClientLatency(time.Since(startTime), method, err != nil)
	return err
}
