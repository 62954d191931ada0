package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/domain/shared"
	"github.com/pettycash-ledger/internal/platform/messaging/producers"
)

// ErrUnpublishable marks a message that can never be published; retrying it is pointless
var ErrUnpublishable = errors.New("outbox message cannot be published")

// EventPublisher relays one outbox message to the events topic
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// KafkaEventPublisher writes outbox payloads to Kafka keyed by month, then marks the row processed
type KafkaEventPublisher struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

func NewKafkaEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &KafkaEventPublisher{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, message *outbox.Message) error {
	if !message.EventType.Valid() {
		p.logger.Error("Outbox message has unknown event type, marking as FAILED_TO_PUBLISH",
			"outbox_id", message.ID, "event_type", string(message.EventType),
		)
		if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); err != nil {
			p.logger.Error("Failed to mark outbox message as FAILED_TO_PUBLISH", "outbox_id", message.ID, "error", err)
		}
		return fmt.Errorf("%w: outbox message %d has unknown event type %q", ErrUnpublishable, message.ID, message.EventType)
	}

	logger := p.logger.With("outbox_id", message.ID, "event_id", message.EventID.String(), "month", message.MonthKey)

	header := kafka.Header{Key: producers.HeaderEventType, Value: []byte(message.EventType)}
	if err := p.producer.Publish(ctx, message.MonthKey, message.Payload, header); err != nil {
		return fmt.Errorf("failed to publish outbox message %d: %w", message.ID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		// the event is out; a retry republishes it and consumers tolerate duplicates
		logger.Error("Published event but failed to mark outbox message as PROCESSED", "error", err)
		return fmt.Errorf("event %s published, but failed to mark outbox %d as PROCESSED: %w", message.EventID, message.ID, err)
	}

	logger.Info("Published ledger event", "event_type", string(message.EventType))
	return nil
}
