package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/report"
)

// LedgerService defines the month-level ledger operations
type LedgerService interface {
	// GetLedger builds the statement of month with running balances
	GetLedger(ctx context.Context, month ledger.MonthKey) (ledger.Statement, error)

	// AddTransaction files a transaction into month.
	// Returns ErrValidation when the input is rejected.
	AddTransaction(ctx context.Context, month ledger.MonthKey, in ledger.TransactionInput) (ledger.Transaction, error)

	// UpdateTransaction replaces the fields of transaction id, validated against month.
	// Returns ErrTransactionNotFound or ErrValidation.
	UpdateTransaction(ctx context.Context, month ledger.MonthKey, id int64, in ledger.TransactionInput) (ledger.Transaction, error)

	// DeleteTransaction removes transaction id. Returns ErrTransactionNotFound.
	DeleteTransaction(ctx context.Context, id int64) error

	SetOpeningBalance(ctx context.Context, month ledger.MonthKey, amount int64) error

	// GetOpeningBalance resolves the opening balance of month
	GetOpeningBalance(ctx context.Context, month ledger.MonthKey) (OpeningBalance, error)

	// ExportLedger snapshots month, replacing any earlier snapshot of it.
	// Returns ErrEmptyExport when the month has no transactions.
	ExportLedger(ctx context.Context, month ledger.MonthKey) (ledger.Snapshot, error)
}

// SnapshotService defines operations on exported snapshots
type SnapshotService interface {
	// ListSnapshots returns a page of snapshots, newest export first, and the total count
	ListSnapshots(ctx context.Context, page, perPage int) ([]ledger.Snapshot, int, error)

	// GetSnapshot returns ErrSnapshotNotFound if id is unknown
	GetSnapshot(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error)

	// ReopenForEdit restores the snapshot's month for editing and removes the snapshot
	ReopenForEdit(ctx context.Context, id uuid.UUID) (ledger.Snapshot, error)

	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
}

// ReportService reads rendered reports from the archive
type ReportService interface {
	GetReport(ctx context.Context, snapshotID uuid.UUID) (*report.Document, error)
	GetReportByMonth(ctx context.Context, month ledger.MonthKey) (*report.Document, error)

	// ListReports returns a page of reports, newest month first, and the total count
	ListReports(ctx context.Context, page, perPage int) ([]*report.Document, int64, error)
}

// OpeningBalance is the resolved opening balance of a month
type OpeningBalance struct {
	Month      ledger.MonthKey
	Amount     int64
	Overridden bool // set explicitly rather than carried forward
}
