package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/outbox"
	"github.com/pettycash-ledger/internal/domain/shared"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

// bookStore runs ledger engine operations against the stored book.
// Mutations lock the book rows, so concurrent API instances apply them one at a time.
type bookStore struct {
	db         persistence.TxExecutor
	bookRepo   ledger.BookRepository
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

// read returns an engine over the current book for read-only views
func (s *bookStore) read(ctx context.Context) (*ledger.Engine, error) {
	book, err := s.bookRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.NewEngine(book, nil), nil
}

// mutate runs fn in a transaction. The engine's save writes the new book and
// queues its events in the outbox, both committed with the transaction.
func (s *bookStore) mutate(ctx context.Context, fn func(engine *ledger.Engine) error) error {
	correlationID := shared.CorrelationIDFromContext(ctx)

	return s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		books := s.bookRepo.WithTx(tx)
		messages := s.outboxRepo.WithTx(tx)

		book, err := books.LockForUpdate(ctx)
		if err != nil {
			return err
		}

		engine := ledger.NewEngine(book, func(ctx context.Context, next *ledger.Book, events []ledger.Event) error {
			if err := books.Save(ctx, next); err != nil {
				return err
			}
			for i := range events {
				events[i].CorrelationID = correlationID
				msg, err := outbox.NewMessage(&events[i])
				if err != nil {
					return fmt.Errorf("failed to encode %s event: %w", events[i].Type, err)
				}
				if err := messages.Create(ctx, msg); err != nil {
					return err
				}
				s.logger.Debug("Queued ledger event",
					"event_id", events[i].ID.String(),
					"event_type", string(events[i].Type),
					"month", events[i].MonthKey.String(),
				)
			}
			return nil
		})

		return fn(engine)
	})
}
