package service

import (
	"context"
	"log/slog"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

// LedgerServiceImpl implements the LedgerService interface
type LedgerServiceImpl struct {
	store  *bookStore
	logger *slog.Logger
}

func NewLedgerService(
	logger *slog.Logger,
	db persistence.TxExecutor,
	bookRepo ledger.BookRepository,
	outboxRepo outbox.Repository,
) LedgerService {
	return &LedgerServiceImpl{
		store: &bookStore{
			db:         db,
			bookRepo:   bookRepo,
			outboxRepo: outboxRepo,
			logger:     logger,
		},
		logger: logger,
	}
}

func (s *LedgerServiceImpl) GetLedger(ctx context.Context, month ledger.MonthKey) (ledger.Statement, error) {
	engine, err := s.store.read(ctx)
	if err != nil {
		s.logger.Error("Failed to load ledger book", "month", month.String(), "error", err)
		return ledger.Statement{}, err
	}
	return engine.Statement(month), nil
}

func (s *LedgerServiceImpl) AddTransaction(ctx context.Context, month ledger.MonthKey, in ledger.TransactionInput) (ledger.Transaction, error) {
	var created ledger.Transaction
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		var err error
		created, err = engine.AddTransaction(ctx, month, in)
		return err
	})
	if err != nil {
		return ledger.Transaction{}, err
	}

	s.logger.Info("Transaction added", "month", month.String(), "transaction_id", created.ID)
	return created, nil
}

func (s *LedgerServiceImpl) UpdateTransaction(ctx context.Context, month ledger.MonthKey, id int64, in ledger.TransactionInput) (ledger.Transaction, error) {
	var updated ledger.Transaction
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		var err error
		updated, err = engine.UpdateTransaction(ctx, month, id, in)
		return err
	})
	if err != nil {
		return ledger.Transaction{}, err
	}

	s.logger.Info("Transaction updated", "month", month.String(), "transaction_id", id)
	return updated, nil
}

func (s *LedgerServiceImpl) DeleteTransaction(ctx context.Context, id int64) error {
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		return engine.DeleteTransaction(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", "transaction_id", id)
	return nil
}

func (s *LedgerServiceImpl) SetOpeningBalance(ctx context.Context, month ledger.MonthKey, amount int64) error {
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		return engine.SetOpeningBalance(ctx, month, amount)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Opening balance set", "month", month.String(), "amount", amount)
	return nil
}

func (s *LedgerServiceImpl) GetOpeningBalance(ctx context.Context, month ledger.MonthKey) (OpeningBalance, error) {
	engine, err := s.store.read(ctx)
	if err != nil {
		s.logger.Error("Failed to load ledger book", "month", month.String(), "error", err)
		return OpeningBalance{}, err
	}

	_, overridden := engine.OpeningBalanceOverride(month)
	return OpeningBalance{
		Month:      month,
		Amount:     engine.OpeningBalance(month),
		Overridden: overridden,
	}, nil
}

func (s *LedgerServiceImpl) ExportLedger(ctx context.Context, month ledger.MonthKey) (ledger.Snapshot, error) {
	var snapshot ledger.Snapshot
	err := s.store.mutate(ctx, func(engine *ledger.Engine) error {
		var err error
		snapshot, err = engine.ExportLedger(ctx, month)
		return err
	})
	if err != nil {
		return ledger.Snapshot{}, err
	}

	s.logger.Info("Ledger exported",
		"month", month.String(),
		"snapshot_id", snapshot.ID.String(),
		"closing_balance", snapshot.ClosingBalance,
	)
	return snapshot, nil
}
