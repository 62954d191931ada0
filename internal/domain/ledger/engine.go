package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pettycash-ledger/internal/domain/shared"
)

// SaveFunc persists the book produced by a mutation together with the events it raised.
// A returned error discards the mutation.
type SaveFunc func(ctx context.Context, next *Book, events []Event) error

// Engine applies ledger operations to a Book. Every mutation runs against a
// clone and is swapped in only after save succeeds. Calls are serialised.
type Engine struct {
	mu    sync.Mutex
	book  *Book
	save  SaveFunc
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

func NewEngine(book *Book, save SaveFunc, opts ...Option) *Engine {
	if book == nil {
		book = NewBook()
	}
	if save == nil {
		save = func(context.Context, *Book, []Event) error { return nil }
	}
	e := &Engine{
		book:  book,
		save:  save,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) commit(ctx context.Context, mutate func(next *Book) ([]Event, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.book.Clone()
	events, err := mutate(next)
	if err != nil {
		return err
	}
	if err := e.save(ctx, next, events); err != nil {
		return fmt.Errorf("failed to save ledger book: %w", err)
	}
	e.book = next
	return nil
}

// AddTransaction files a new transaction into month
func (e *Engine) AddTransaction(ctx context.Context, month MonthKey, in TransactionInput) (Transaction, error) {
	var created Transaction
	err := e.commit(ctx, func(next *Book) ([]Event, error) {
		tx, err := NewTransaction(next.NextID, month, in)
		if err != nil {
			return nil, err
		}
		next.Transactions = append(next.Transactions, tx)
		next.NextID++
		created = tx
		return nil, nil
	})
	if err != nil {
		return Transaction{}, err
	}
	return created, nil
}

// UpdateTransaction replaces the fields of an existing transaction, keeping its id and position
func (e *Engine) UpdateTransaction(ctx context.Context, month MonthKey, id int64, in TransactionInput) (Transaction, error) {
	var updated Transaction
	err := e.commit(ctx, func(next *Book) ([]Event, error) {
		idx := next.transactionIndex(id)
		if idx < 0 {
			return nil, ErrTransactionNotFound{ID: id}
		}
		// An edit may not move a transaction into another month's ledger
		if filed := next.Transactions[idx].MonthKey(); filed != month {
			return nil, ErrValidation{Reason: fmt.Sprintf("transaction %d belongs to ledger month %s, not %s", id, filed, month)}
		}
		tx, err := NewTransaction(id, month, in)
		if err != nil {
			return nil, err
		}
		next.Transactions[idx] = tx
		updated = tx
		return nil, nil
	})
	if err != nil {
		return Transaction{}, err
	}
	return updated, nil
}

func (e *Engine) DeleteTransaction(ctx context.Context, id int64) error {
	return e.commit(ctx, func(next *Book) ([]Event, error) {
		idx := next.transactionIndex(id)
		if idx < 0 {
			return nil, ErrTransactionNotFound{ID: id}
		}
		next.Transactions = append(next.Transactions[:idx], next.Transactions[idx+1:]...)
		return nil, nil
	})
}

// SetOpeningBalance records an explicit opening balance override for month
func (e *Engine) SetOpeningBalance(ctx context.Context, month MonthKey, amount int64) error {
	return e.commit(ctx, func(next *Book) ([]Event, error) {
		if !shared.AmountInRange(amount) {
			return nil, ErrValidation{Reason: "opening balance exceeds the maximum of " + shared.FormatAmount(shared.MaxAmount)}
		}
		next.OpeningBalances[month] = amount
		return nil, nil
	})
}

// ExportLedger freezes month's ledger into a snapshot, replacing any previous
// snapshot of that month. Live transactions are kept.
func (e *Engine) ExportLedger(ctx context.Context, month MonthKey) (Snapshot, error) {
	var exported Snapshot
	err := e.commit(ctx, func(next *Book) ([]Event, error) {
		txs := TransactionsInMonth(next.Transactions, month)
		if len(txs) == 0 {
			return nil, ErrEmptyExport{Month: month}
		}

		opening := ResolveOpeningBalance(month, next.OpeningBalances, next.Snapshots, next.Transactions)
		now := e.now()
		snapshot := NewSnapshot(e.newID(), month, BuildLedger(opening, txs), now)

		next.removeSnapshotsForMonth(month)
		next.Snapshots = append([]Snapshot{snapshot}, next.Snapshots...)
		exported = snapshot.Clone()

		return []Event{newEvent(e.newID(), shared.EventTypeSnapshotExported, snapshot, now)}, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return exported, nil
}

// ReopenForEdit removes a snapshot and restores its transactions and opening
// balance as the month's live state. Other months are left untouched.
func (e *Engine) ReopenForEdit(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	var reopened Snapshot
	err := e.commit(ctx, func(next *Book) ([]Event, error) {
		idx := next.snapshotIndex(id)
		if idx < 0 {
			return nil, ErrSnapshotNotFound{ID: id}
		}
		snapshot := next.Snapshots[idx]
		next.Snapshots = append(next.Snapshots[:idx], next.Snapshots[idx+1:]...)

		next.removeTransactionsInMonth(snapshot.MonthKey)
		for _, tx := range snapshot.Transactions {
			next.Transactions = append(next.Transactions, tx)
			if tx.ID >= next.NextID {
				next.NextID = tx.ID + 1
			}
		}
		next.OpeningBalances[snapshot.MonthKey] = snapshot.OpeningBalance
		reopened = snapshot.Clone()

		return []Event{newEvent(e.newID(), shared.EventTypeSnapshotReopened, snapshot, e.now())}, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return reopened, nil
}

// DeleteSnapshot permanently removes a snapshot without restoring its transactions
func (e *Engine) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	return e.commit(ctx, func(next *Book) ([]Event, error) {
		idx := next.snapshotIndex(id)
		if idx < 0 {
			return nil, ErrSnapshotNotFound{ID: id}
		}
		snapshot := next.Snapshots[idx]
		next.Snapshots = append(next.Snapshots[:idx], next.Snapshots[idx+1:]...)

		return []Event{newEvent(e.newID(), shared.EventTypeSnapshotDeleted, snapshot, e.now())}, nil
	})
}

// Statement builds month's ledger from its resolved opening balance and live transactions
func (e *Engine) Statement(month MonthKey) Statement {
	e.mu.Lock()
	defer e.mu.Unlock()

	opening := ResolveOpeningBalance(month, e.book.OpeningBalances, e.book.Snapshots, e.book.Transactions)
	return BuildLedger(opening, TransactionsInMonth(e.book.Transactions, month))
}

// OpeningBalance resolves month's opening balance
func (e *Engine) OpeningBalance(month MonthKey) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return ResolveOpeningBalance(month, e.book.OpeningBalances, e.book.Snapshots, e.book.Transactions)
}

// OpeningBalanceOverride returns the explicit override for month, if one is set
func (e *Engine) OpeningBalanceOverride(month MonthKey) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	amount, ok := e.book.OpeningBalances[month]
	return amount, ok
}

// Snapshots returns the archive, most recent first
func (e *Engine) Snapshots() []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Snapshot, len(e.book.Snapshots))
	for i, s := range e.book.Snapshots {
		out[i] = s.Clone()
	}
	return out
}

func (e *Engine) Snapshot(id uuid.UUID) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.book.snapshotIndex(id)
	if idx < 0 {
		return Snapshot{}, ErrSnapshotNotFound{ID: id}
	}
	return e.book.Snapshots[idx].Clone(), nil
}

// Transaction returns a live transaction by id
func (e *Engine) Transaction(id int64) (Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.book.transactionIndex(id)
	if idx < 0 {
		return Transaction{}, ErrTransactionNotFound{ID: id}
	}
	return e.book.Transactions[idx], nil
}

// Book returns a copy of the current state
func (e *Engine) Book() *Book {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.Clone()
}
