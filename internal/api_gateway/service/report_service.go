package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/report"
)

// ReportServiceImpl implements the ReportService interface over the report archive
type ReportServiceImpl struct {
	reports report.Repository
	logger  *slog.Logger
}

func NewReportService(logger *slog.Logger, reports report.Repository) ReportService {
	return &ReportServiceImpl{
		reports: reports,
		logger:  logger,
	}
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, snapshotID uuid.UUID) (*report.Document, error) {
	return s.reports.GetBySnapshotID(ctx, snapshotID.String())
}

func (s *ReportServiceImpl) GetReportByMonth(ctx context.Context, month ledger.MonthKey) (*report.Document, error) {
	return s.reports.GetByMonth(ctx, month.String())
}

func (s *ReportServiceImpl) ListReports(ctx context.Context, page, perPage int) ([]*report.Document, int64, error) {
	page, perPage, offset := normalizePage(page, perPage)

	docs, err := s.reports.List(ctx, perPage, offset)
	if err != nil {
		s.logger.Error("Failed to list reports", "page", page, "error", err)
		return nil, 0, err
	}

	total, err := s.reports.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count reports", "error", err)
		return nil, 0, err
	}

	return docs, total, nil
}
