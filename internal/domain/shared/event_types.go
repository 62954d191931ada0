package shared

// EventType identifies a snapshot lifecycle change published by the ledger
type EventType string

const (
	EventTypeSnapshotExported EventType = "SNAPSHOT_EXPORTED"
	EventTypeSnapshotReopened EventType = "SNAPSHOT_REOPENED"
	EventTypeSnapshotDeleted  EventType = "SNAPSHOT_DELETED"
)

// Valid reports whether t is one of the known event types
func (t EventType) Valid() bool {
	switch t {
	case EventTypeSnapshotExported, EventTypeSnapshotReopened, EventTypeSnapshotDeleted:
		return true
	}
	return false
}

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
