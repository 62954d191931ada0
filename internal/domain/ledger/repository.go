package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// BookRepository persists the ledger book as key/value state blobs
type BookRepository interface {
	Load(ctx context.Context) (*Book, error)

	// LockForUpdate loads the book holding row locks until the transaction ends
	LockForUpdate(ctx context.Context) (*Book, error)
	Save(ctx context.Context, book *Book) error
	WithTx(tx pgx.Tx) BookRepository
}
