package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/db/model"
	"github.com/stakewarden-io/nft-staking-engine/internal/ledger"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

// EventPublisher pushes engine events to the message broker. Publishing is
// best effort: the event log in the database is the source of truth, the
// broker is a convenience for downstream consumers.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *types.Event) error
}

// Service ties the in-memory ledger to its persistence and event fan-out.
// Every operation goes through the ledger first; on success the state
// projection, the event log entry and the broker message follow.
type Service struct {
	cfg         *config.Config
	db          db.DbInterface
	ledger      *ledger.Ledger
	publisher   EventPublisher
	genesisUnix int64
}

func NewService(
	cfg *config.Config,
	dbClient db.DbInterface,
	stakeLedger *ledger.Ledger,
	publisher EventPublisher,
	genesisUnix int64,
) *Service {
	return &Service{
		cfg:         cfg,
		db:          dbClient,
		ledger:      stakeLedger,
		publisher:   publisher,
		genesisUnix: genesisUnix,
	}
}

func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *Service) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// persistState writes the current global ledger state projection.
func (s *Service) persistState(ctx context.Context) error {
	params := s.ledger.Params()
	index := s.ledger.GlobalIndex()

	return s.db.SaveLedgerState(ctx, &model.LedgerStateDocument{
		RewardRatePerStep:       params.RewardRatePerStep.String(),
		ClaimDelaySteps:         params.ClaimDelaySteps,
		WithdrawalCooldownSteps: params.WithdrawalCooldownSteps,
		VaultAddress:            params.VaultAddress,
		Paused:                  s.ledger.Paused(),
		GlobalIndex:             index.Index.String(),
		LastUpdatedStep:         index.LastUpdatedStep,
		TotalActiveStaked:       s.ledger.TotalActiveStaked(),
		AllowedCollections:      s.ledger.AllowedCollections(),
		GenesisUnix:             s.genesisUnix,
	})
}

// persistAccount writes the projection of one staker account. A staker the
// ledger has never seen has nothing to persist.
func (s *Service) persistAccount(ctx context.Context, staker string) error {
	account, ok := s.ledger.AccountSnapshot(staker)
	if !ok {
		return nil
	}
	return s.db.UpsertStakerAccount(ctx, model.FromStakerAccount(staker, account))
}

// commitEvent appends the event to the audit log and publishes it. A failed
// log insert is returned to the caller; a failed publish is only logged since
// the database already holds the authoritative record.
func (s *Service) commitEvent(ctx context.Context, event *types.Event) error {
	if err := s.db.InsertEvent(ctx, model.FromEvent(event)); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishEvent(ctx, event); err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("event_type", event.Type.String()).
				Msg("Failed to publish event")
		}
	}
	return nil
}
