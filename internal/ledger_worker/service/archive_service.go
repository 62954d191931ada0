package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/report"
	"github.com/pettycash-ledger/internal/domain/shared"
)

type ArchiveServiceImpl struct {
	reports report.Repository
	opts    report.Options
	now     func() time.Time
	logger  *slog.Logger
}

func NewArchiveService(reports report.Repository, opts report.Options, logger *slog.Logger) ArchiveService {
	return &ArchiveServiceImpl{
		reports: reports,
		opts:    opts,
		now:     time.Now,
		logger:  logger,
	}
}

// HandleEvent renders exported snapshots into the archive and drops reports of
// reopened or deleted ones. Redelivered events leave the archive unchanged.
func (s *ArchiveServiceImpl) HandleEvent(ctx context.Context, event *ledger.Event) error {
	logger := s.logger.With("event_id", event.ID.String(), "month", event.MonthKey.String(), "snapshot_id", event.SnapshotID.String())
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	switch event.Type {
	case shared.EventTypeSnapshotExported:
		return s.archive(ctx, logger, event)
	case shared.EventTypeSnapshotReopened, shared.EventTypeSnapshotDeleted:
		if err := s.reports.DeleteBySnapshotID(ctx, event.SnapshotID.String()); err != nil {
			return fmt.Errorf("failed to remove report of snapshot %s: %w", event.SnapshotID, err)
		}
		logger.Info("Removed archived report", "event_type", string(event.Type))
		return nil
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrUnprocessableEvent, event.Type)
	}
}

func (s *ArchiveServiceImpl) archive(ctx context.Context, logger *slog.Logger, event *ledger.Event) error {
	if event.Snapshot == nil {
		return fmt.Errorf("%w: export event %s carries no snapshot", ErrUnprocessableEvent, event.ID)
	}
	snapshot := *event.Snapshot

	existing, err := s.reports.GetByMonth(ctx, snapshot.MonthKey.String())
	switch {
	case err == nil && existing.ExportedAt.After(snapshot.ExportedAt):
		logger.Info("Skipping export event older than the archived report", "archived_snapshot_id", existing.SnapshotID)
		return nil
	case err != nil && !errors.Is(err, report.ErrReportNotFound{}):
		return fmt.Errorf("failed to look up archived report for %s: %w", snapshot.MonthKey, err)
	}

	doc := report.Render(snapshot, s.opts, s.now())
	if err := s.reports.Upsert(ctx, &doc); err != nil {
		return fmt.Errorf("failed to archive report for %s: %w", snapshot.MonthKey, err)
	}

	logger.Info("Archived ledger report", "closing_balance", doc.ClosingBalance, "lines", len(doc.Lines))
	return nil
}
