package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-ledger/internal/domain/report"
)

func TestReportService(t *testing.T) {
	ctx := context.Background()

	t.Run("GetReport looks up by snapshot id", func(t *testing.T) {
		repo := &MockReportRepository{}
		id := uuid.New()
		doc := &report.Document{SnapshotID: id.String(), MonthKey: "2024-03"}
		repo.On("GetBySnapshotID", ctx, id.String()).Return(doc, nil).Once()

		got, err := NewReportService(slog.Default(), repo).GetReport(ctx, id)

		require.NoError(t, err)
		assert.Same(t, doc, got)
	})

	t.Run("GetReportByMonth not found", func(t *testing.T) {
		repo := &MockReportRepository{}
		repo.On("GetByMonth", ctx, "2024-03").Return(nil, report.ErrReportNotFound{Key: "2024-03"}).Once()

		_, err := NewReportService(slog.Default(), repo).GetReportByMonth(ctx, march)

		assert.ErrorIs(t, err, report.ErrReportNotFound{})
	})

	t.Run("ListReports pages with an offset", func(t *testing.T) {
		repo := &MockReportRepository{}
		docs := []*report.Document{{MonthKey: "2024-01"}}
		repo.On("List", ctx, 10, 20).Return(docs, nil).Once()
		repo.On("Count", ctx).Return(int64(21), nil).Once()

		got, total, err := NewReportService(slog.Default(), repo).ListReports(ctx, 3, 10)

		require.NoError(t, err)
		assert.Equal(t, docs, got)
		assert.Equal(t, int64(21), total)
		repo.AssertExpectations(t)
	})

	t.Run("ListReports clamps paging input", func(t *testing.T) {
		repo := &MockReportRepository{}
		repo.On("List", ctx, 100, 0).Return([]*report.Document{}, nil).Once()
		repo.On("Count", ctx).Return(int64(0), nil).Once()

		_, _, err := NewReportService(slog.Default(), repo).ListReports(ctx, -1, 5000)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ListReports count failure", func(t *testing.T) {
		repo := &MockReportRepository{}
		repo.On("List", ctx, 10, 0).Return([]*report.Document{}, nil).Once()
		repo.On("Count", ctx).Return(int64(0), errors.New("timeout")).Once()

		_, _, err := NewReportService(slog.Default(), repo).ListReports(ctx, 1, 10)

		assert.ErrorContains(t, err, "timeout")
	})
}
