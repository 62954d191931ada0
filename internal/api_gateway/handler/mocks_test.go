package handler

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pettycash-ledger/internal/api_gateway/middleware"
	"github.com/pettycash-ledger/internal/api_gateway/service"
	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/report"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetLedger(ctx context.Context, month ledger.MonthKey) (ledger.Statement, error) {
	args := m.Called(ctx, month)
	return args.Get(0).(ledger.Statement), args.Error(1)
}

func (m *MockLedgerService) AddTransaction(ctx context.Context, month ledger.MonthKey, in ledger.TransactionInput) (ledger.Transaction, error) {
	args := m.Called(ctx, month, in)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, month ledger.MonthKey, id int64, in ledger.TransactionInput) (ledger.Transaction, error) {
	args := m.Called(ctx, month, id, in)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerService) SetOpeningBalance(ctx context.Context, month ledger.MonthKey, amount int64) error {
	args := m.Called(ctx, month, amount)
	return args.Error(0)
}

func (m *MockLedgerService) GetOpeningBalance(ctx context.Context, month ledger.MonthKey) (service.OpeningBalance, error) {
	args := m.Called(ctx, month)
	return args.Get(0).(service.OpeningBalance), args.Error(1)
}

func (m *MockLedgerService) ExportLedger(ctx context.Context, month ledger.MonthKey) (ledger.Snapshot, error) {
	args := m.Called(ctx, month)
	return args.Get(0).(ledger.Snapshot), args.Error(1)
}

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) ListSnapshots(ctx context.Context, page, perPage int) ([]ledger.Snapshot, int, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]ledger.Snapshot), args.Int(1), args.Error(2)
}

func (m *MockSnapshotService) GetSnapshot(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) ReopenForEdit(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetReport(ctx context.Context, snapshotID uuid.UUID) (*report.Document, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportService) GetReportByMonth(ctx context.Context, month ledger.MonthKey) (*report.Document, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportService) ListReports(ctx context.Context, page, perPage int) ([]*report.Document, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*report.Document), args.Get(1).(int64), args.Error(2)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CorrelationID())
	return r
}
