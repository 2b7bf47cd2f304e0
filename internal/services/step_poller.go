package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
	"github.com/stakewarden-io/nft-staking-engine/internal/utils/poller"
)

// StartIndexPoller keeps the global reward index from lagging arbitrarily
// between operations by advancing it on a fixed interval and persisting the
// result.
func (s *Service) StartIndexPoller(ctx context.Context) {
	indexPoller := poller.NewPoller(s.cfg.Poller.IndexPollingInterval, s.pollIndex)
	go indexPoller.Start(ctx)
}

func (s *Service) pollIndex(ctx context.Context) error {
	startTime := time.Now()

	index := s.ledger.AdvanceIndex()
	err := s.persistState(ctx)

	metrics.RecordPollerDuration(time.Since(startTime), "reward_index", err != nil)
	if err != nil {
		return err
	}

	metrics.RecordIndexLastStep(index.LastUpdatedStep)
	metrics.RecordTotalActiveStaked(s.ledger.TotalActiveStaked())

	log.Ctx(ctx).Debug().
		Uint64("step", index.LastUpdatedStep).
		Str("global_index", index.Index.String()).
		Msg("Advanced reward index")

	return nil
}
