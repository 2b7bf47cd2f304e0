package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/stakewarden-io/nft-staking-engine/internal/config"
	"github.com/stakewarden-io/nft-staking-engine/internal/observability/metrics"
	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

// QueueManager publishes engine events to a topic exchange, one routing key
// per event type, so downstream consumers can bind to exactly the transitions
// they care about.
type QueueManager struct {
	cfg     *config.QueueConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &QueueManager{
		cfg:     cfg,
		conn:    conn,
		channel: channel,
		logger:  logger.With(zap.String("module", "queue")),
	}, nil
}

// PublishEvent sends one event as JSON, retrying transient failures.
func (qm *QueueManager) PublishEvent(ctx context.Context, event *types.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	err = retry.Do(
		func() error {
			return qm.channel.PublishWithContext(
				publishCtx,
				qm.cfg.Exchange,
				event.Type.String(),
				false, // mandatory
				false, // immediate
				amqp.Publishing{
					ContentType: "application/json",
					Timestamp:   time.Now().UTC(),
					Body:        body,
				},
			)
		},
		retry.Attempts(qm.cfg.MsgMaxRetryAttempts),
		retry.Delay(qm.cfg.RetryInterval),
		retry.Context(publishCtx),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		qm.logger.Error("failed to publish event",
			zap.String("event_type", event.Type.String()),
			zap.Error(err),
		)
		return err
	}

	metrics.RecordEventPublished(event.Type.String())
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all
// resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.logger.Info("shutting down queue manager")
	if err := qm.channel.Close(); err != nil {
		qm.logger.Warn("failed to close rabbitmq channel", zap.Error(err))
	}
	if err := qm.conn.Close(); err != nil {
		qm.logger.Warn("failed to close rabbitmq connection", zap.Error(err))
	}
}
