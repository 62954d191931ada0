package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

// SnapshotServiceImpl implements the SnapshotService interface
type SnapshotServiceImpl struct {
	store  *bookStore
	logger *slog.Logger
}

func NewSnapshotService(
	logger *slog.Logger,
	db persistence.TxExecutor,
	bookRepo ledger.BookRepository,
	outboxRepo outbox.Repository,
) SnapshotService {
	return &SnapshotServiceImpl{
		store: &bookStore{
			db:         db,
			bookRepo:   bookRepo,
			outboxRepo: outboxRepo,
			logger:     logger,
		},
		logger: logger,
	}
}

func (s *SnapshotServiceImpl) ListSnapshots(ctx context.Context, page, perPage int) ([]ledger.Snapshot, int, error) {
	engine, err := s.store.read(ctx)
	if err != nil {
		s.logger.Error("Failed to load ledger book", "error", err)
		return nil, 0, err
	}

	all := engine.Snapshots()
	total := len(all)
	_, perPage, start := normalizePage(page, perPage)
	if start >= total {
		return []ledger.Snapshot{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *SnapshotServiceImpl) GetSnapshot(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error) {
	engine, err := s.store.read(ctx)
	if err != nil {
		s.logger.Error("Failed to load ledger book", "snapshot_id", id.String(), "error", err)
		return ledger.Snapshot{}, err
	}
	return engine.Snapshot(id)
}

func (s *SnapshotServiceImpl) ReopenForEdit(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error) {
	var reopened ledger.Snapshot
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		var err error
		reopened, err = engine.ReopenForEdit(ctx, id)
		return err
	})
	if err != nil {
		return ledger.Snapshot{}, err
	}

	s.logger.Info("Snapshot reopened for edit",
		"snapshot_id", id.String(),
		"month", reopened.MonthKey.String(),
		"transactions", len(reopened.Transactions),
	)
	return reopened, nil
}

func (s *SnapshotServiceImpl) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		return engine.DeleteSnapshot(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Snapshot deleted", "snapshot_id", id.String())
	return nil
}
