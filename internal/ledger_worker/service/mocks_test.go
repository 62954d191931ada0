package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/report"
)

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Upsert(ctx context.Context, doc *report.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReportRepo) GetBySnapshotID(ctx context.Context, snapshotID string) (*report.Document, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportRepo) GetByMonth(ctx context.Context, monthKey string) (*report.Document, error) {
	args := m.Called(ctx, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportRepo) DeleteBySnapshotID(ctx context.Context, snapshotID string) error {
	args := m.Called(ctx, snapshotID)
	return args.Error(0)
}

func (m *MockReportRepo) List(ctx context.Context, limit, offset int) ([]*report.Document, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*report.Document), args.Error(1)
}

func (m *MockReportRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) HandleEvent(ctx context.Context, event *ledger.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
