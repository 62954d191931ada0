package components

import (
	"log/slog"

	"github.com/pettycash-ledger/internal/config"
	"github.com/pettycash-ledger/internal/domain/report"
	"github.com/pettycash-ledger/internal/ledger_worker/service"
)

// CreateArchiveService builds the archive service behind a worker pool.
// It falls back to the plain service when the pool cannot be created.
func CreateArchiveService(reports report.Repository, logger *slog.Logger, cfg *config.Config) service.ArchiveService {
	opts := report.Options{
		Title:       cfg.Ledger.ReportTitle,
		Institution: cfg.Ledger.Institution,
		Currency:    cfg.Ledger.Currency,
	}
	baseService := service.NewArchiveService(reports, opts, logger.With("component", "archive"))

	pooled, err := service.NewWorkerPoolArchiveService(
		baseService,
		service.WorkerPoolConfig{Size: cfg.WorkerPool.Size},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool, falling back to base archive service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool archive service", "pool_size", cfg.WorkerPool.Size)
	return pooled
}
