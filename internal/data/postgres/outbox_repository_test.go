package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outboxRowColumns = []string{"id", "event_id", "event_type", "month_key", "snapshot_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}

func newTestMessage() *outbox.Message {
	return &outbox.Message{
		EventID:    uuid.New(),
		EventType:  shared.EventTypeSnapshotExported,
		MonthKey:   "2024-03",
		SnapshotID: uuid.New(),
		Payload:    json.RawMessage(`{"type":"SNAPSHOT_EXPORTED"}`),
		Status:     shared.OutboxStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("INSERT INTO ledger_outbox (event_id, event_type, month_key, snapshot_id, payload, status, attempts, created_at)")

	t.Run("success", func(t *testing.T) {
		msg := newTestMessage()
		mock.ExpectQuery(query).
			WithArgs(msg.EventID, msg.EventType, msg.MonthKey, msg.SnapshotID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		err := repo.Create(ctx, msg)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), msg.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate event", func(t *testing.T) {
		msg := newTestMessage()
		mock.ExpectQuery(query).
			WithArgs(msg.EventID, msg.EventType, msg.MonthKey, msg.SnapshotID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, msg)

		var dup outbox.ErrDuplicateMessage
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, msg.EventID, dup.EventID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		msg := newTestMessage()
		dbErr := errors.New("db error")
		mock.ExpectQuery(query).
			WithArgs(msg.EventID, msg.EventType, msg.MonthKey, msg.SnapshotID, msg.Payload, msg.Status, msg.Attempts, msg.CreatedAt).
			WillReturnError(dbErr)

		err := repo.Create(ctx, msg)

		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to create outbox message")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_GetPending(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("FROM ledger_outbox WHERE status = $1 ORDER BY created_at ASC, id ASC LIMIT $2")

	t.Run("success", func(t *testing.T) {
		msg := newTestMessage()
		lastAttempt := time.Now().UTC()
		rows := pgxmock.NewRows(outboxRowColumns).
			AddRow(int64(1), msg.EventID, msg.EventType, msg.MonthKey, msg.SnapshotID, msg.Payload, msg.Status, 0, msg.CreatedAt, (*time.Time)(nil)).
			AddRow(int64(2), uuid.New(), shared.EventTypeSnapshotDeleted, "2024-02", uuid.New(), msg.Payload, msg.Status, 2, msg.CreatedAt, &lastAttempt)
		mock.ExpectQuery(query).WithArgs(shared.OutboxStatusPending, 10).WillReturnRows(rows)

		messages, err := repo.GetPending(ctx, 10)

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, int64(1), messages[0].ID)
		assert.Equal(t, msg.EventID, messages[0].EventID)
		assert.Nil(t, messages[0].LastAttemptAt)
		assert.Equal(t, shared.EventTypeSnapshotDeleted, messages[1].EventType)
		assert.Equal(t, 2, messages[1].Attempts)
		require.NotNil(t, messages[1].LastAttemptAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(shared.OutboxStatusPending, 10).WillReturnError(errors.New("db error"))

		messages, err := repo.GetPending(ctx, 10)

		assert.Nil(t, messages)
		assert.ErrorContains(t, err, "failed to get pending outbox messages")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("UPDATE ledger_outbox SET status = $1, last_attempt_at = $2 WHERE id = $3")

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shared.OutboxStatusProcessed, pgxmock.AnyArg(), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 1, shared.OutboxStatusProcessed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shared.OutboxStatusFailedToPublish, pgxmock.AnyArg(), int64(9)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, 9, shared.OutboxStatusFailedToPublish)

		assert.Equal(t, outbox.ErrMessageNotFound{ID: 9}, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_IncrementAttempts(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("UPDATE ledger_outbox SET attempts = attempts + 1, last_attempt_at = $1 WHERE id = $2")

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(pgxmock.AnyArg(), int64(3)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.IncrementAttempts(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		dbErr := errors.New("db error")
		mock.ExpectExec(query).WithArgs(pgxmock.AnyArg(), int64(3)).WillReturnError(dbErr)

		err := repo.IncrementAttempts(ctx, 3)

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_Delete(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("DELETE FROM ledger_outbox WHERE id = $1")

	mock.ExpectExec(query).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	assert.NoError(t, repo.Delete(ctx, 5))

	mock.ExpectExec(query).WithArgs(int64(6)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.Equal(t, outbox.ErrMessageNotFound{ID: 6}, repo.Delete(ctx, 6))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_GetByEventID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: newTestLogger()}
	query := regexp.QuoteMeta("FROM ledger_outbox WHERE event_id = $1")
	msg := newTestMessage()

	t.Run("found", func(t *testing.T) {
		rows := pgxmock.NewRows(outboxRowColumns).
			AddRow(int64(7), msg.EventID, msg.EventType, msg.MonthKey, msg.SnapshotID, msg.Payload, shared.OutboxStatusProcessed, 1, msg.CreatedAt, (*time.Time)(nil))
		mock.ExpectQuery(query).WithArgs(msg.EventID).WillReturnRows(rows)

		found, err := repo.GetByEventID(ctx, msg.EventID)

		require.NoError(t, err)
		assert.Equal(t, int64(7), found.ID)
		assert.Equal(t, shared.OutboxStatusProcessed, found.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(msg.EventID).WillReturnError(pgx.ErrNoRows)

		found, err := repo.GetByEventID(ctx, msg.EventID)

		assert.Nil(t, found)
		assert.ErrorAs(t, err, &outbox.ErrMessageNotFound{})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
