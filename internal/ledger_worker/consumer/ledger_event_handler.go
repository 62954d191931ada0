package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/ledger_worker/service"
	"github.com/pettycash-ledger/internal/platform/messaging/producers"
)

// LedgerEventHandler decodes ledger events from Kafka and hands them to the archive
type LedgerEventHandler struct {
	archiveService service.ArchiveService
	dlq            producers.DeadLetterPublisher
	logger         *slog.Logger
}

func NewLedgerEventHandler(
	logger *slog.Logger,
	archiveService service.ArchiveService,
	dlq producers.DeadLetterPublisher,
) *LedgerEventHandler {
	return &LedgerEventHandler{
		archiveService: archiveService,
		dlq:            dlq,
		logger:         logger,
	}
}

// HandleMessage returns nil once the message needs no further delivery: it was
// archived, or it can never be and has been dead-lettered.
func (h *LedgerEventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event ledger.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return h.deadLetter(ctx, msg, fmt.Sprintf("undecodable ledger event: %v", err), err)
	}
	if !event.Type.Valid() {
		return h.deadLetter(ctx, msg, fmt.Sprintf("unknown event type %q", event.Type), nil)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}
	logger.Info("Received ledger event",
		"event_id", event.ID.String(),
		"event_type", string(event.Type),
		"month", event.MonthKey.String(),
	)

	if err := h.archiveService.HandleEvent(ctx, &event); err != nil {
		if errors.Is(err, service.ErrUnprocessableEvent) {
			return h.deadLetter(ctx, msg, err.Error(), err)
		}
		logger.Error("Failed to archive ledger event", "event_id", event.ID.String(), "error", err)
		return fmt.Errorf("archiving event %s failed: %w", event.ID, err)
	}
	return nil
}

// deadLetter parks msg on the DLQ. Without a DLQ the message is dropped,
// since redelivering it can never succeed.
func (h *LedgerEventHandler) deadLetter(ctx context.Context, msg kafka.Message, reason string, cause error) error {
	key := string(msg.Key)
	h.logger.Error("Ledger event cannot be processed", "message_key", key, "reason", reason)

	err := h.dlq.PublishToDLQ(ctx, key, msg.Value, reason)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, producers.ErrDLQDisabled):
		h.logger.Warn("DLQ disabled, dropping message", "message_key", key)
		return nil
	default:
		h.logger.Error("Failed to publish message to DLQ", "message_key", key, "dlq_error", err, "original_error", cause)
		return fmt.Errorf("failed to dead-letter message %s: %w", key, err)
	}
}
