package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/domain/report"
	"github.com/pettycash-ledger/internal/domain/shared"
)

// fakeTxExecutor runs the unit of work directly and records its outcome
type fakeTxExecutor struct {
	calls     int
	committed int
}

func (f *fakeTxExecutor) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	if err := fn(nil); err != nil {
		return err
	}
	f.committed++
	return nil
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Load(ctx context.Context) (*ledger.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Book), args.Error(1)
}

func (m *MockBookRepository) LockForUpdate(ctx context.Context) (*ledger.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *ledger.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) WithTx(tx pgx.Tx) ledger.BookRepository {
	args := m.Called(tx)
	return args.Get(0).(ledger.BookRepository)
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) WithTx(tx pgx.Tx) outbox.Repository {
	args := m.Called(tx)
	return args.Get(0).(outbox.Repository)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Upsert(ctx context.Context, doc *report.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReportRepository) GetBySnapshotID(ctx context.Context, snapshotID string) (*report.Document, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportRepository) GetByMonth(ctx context.Context, monthKey string) (*report.Document, error) {
	args := m.Called(ctx, monthKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

func (m *MockReportRepository) DeleteBySnapshotID(ctx context.Context, snapshotID string) error {
	args := m.Called(ctx, snapshotID)
	return args.Error(0)
}

func (m *MockReportRepository) List(ctx context.Context, limit, offset int) ([]*report.Document, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*report.Document), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// newRepos wires repository mocks whose WithTx returns themselves
func newRepos() (*MockBookRepository, *MockOutboxRepository) {
	books, messages := &MockBookRepository{}, &MockOutboxRepository{}
	books.On("WithTx", mock.Anything).Return(books).Maybe()
	messages.On("WithTx", mock.Anything).Return(messages).Maybe()
	return books, messages
}
