package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pettycash-ledger/internal/domain/shared"
)

// Event records a snapshot lifecycle change
type Event struct {
	ID            uuid.UUID        `json:"id"`
	Type          shared.EventType `json:"type"`
	MonthKey      MonthKey         `json:"month_key"`
	SnapshotID    uuid.UUID        `json:"snapshot_id"`
	Snapshot      *Snapshot        `json:"snapshot,omitempty"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

func newEvent(id uuid.UUID, eventType shared.EventType, s Snapshot, at time.Time) Event {
	snapshot := s.Clone()
	return Event{
		ID:         id,
		Type:       eventType,
		MonthKey:   s.MonthKey,
		SnapshotID: s.ID,
		Snapshot:   &snapshot,
		OccurredAt: at,
	}
}
