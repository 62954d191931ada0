package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/pettycash-ledger/internal/domain/ledger"
)

// WorkerPoolArchiveService bounds archive work with an ants pool.
// HandleEvent still blocks until its event is done so offsets are committed in order.
type WorkerPoolArchiveService struct {
	baseService ArchiveService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolArchiveService(baseService ArchiveService, config WorkerPoolConfig, logger *slog.Logger) (*WorkerPoolArchiveService, error) {
	// ants treats a non-positive size as unbounded
	if config.Size <= 0 {
		return nil, fmt.Errorf("worker pool size must be positive, got %d", config.Size)
	}
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &WorkerPoolArchiveService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

func (s *WorkerPoolArchiveService) HandleEvent(ctx context.Context, event *ledger.Event) error {
	result := make(chan error, 1)
	eventCopy := *event

	if err := s.pool.Submit(func() {
		result <- s.baseService.HandleEvent(ctx, &eventCopy)
	}); err != nil {
		s.logger.Error("Failed to submit event to worker pool", "event_id", event.ID.String(), "error", err)
		return fmt.Errorf("failed to submit event %s to worker pool: %w", event.ID, err)
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown waits for running tasks and releases the pool
func (s *WorkerPoolArchiveService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolArchiveService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolArchiveService) Capacity() int {
	return s.pool.Cap()
}
