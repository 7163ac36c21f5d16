package producer

import (
	"context"
	"time"

	"go-daycare/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// ProcessOutboxEvents polls the outbox table and relays due billing events to
// Kafka until ctx is cancelled. A row that fails to publish is marked failed
// and comes back on a later poll once its backoff expires.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	// drain whatever accumulated while the worker was down
	drainOutbox(ctx, repo, writer, log)

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			drainOutbox(ctx, repo, writer, log)
		}
	}
}

func drainOutbox(ctx context.Context, repo kafka.OutboxRepository, writer *kafkago.Writer, log *zap.Logger) {
	events, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		log.Error("list pending outbox events failed", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			log.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the event is on the broker; the consumer's duplicate guard
			// absorbs the resend this will cause
			log.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		sent++
	}

	log.Info("outbox batch drained", zap.Int("listed", len(events)), zap.Int("sent", sent))
}
