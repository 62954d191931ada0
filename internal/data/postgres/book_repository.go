// Package postgres provides PostgreSQL implementations of the ledger repositories.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/platform/persistence"
)

// State blob keys in ledger_state
const (
	KeyAllTransactions  = "allTransactions"
	KeyOpeningBalances  = "openingBalances"
	KeyNextID           = "nextId"
	KeyGeneratedLedgers = "generatedLedgers"
)

var stateKeys = []string{KeyAllTransactions, KeyOpeningBalances, KeyNextID, KeyGeneratedLedgers}

// BookRepository stores the ledger book as one JSONB row per state blob
type BookRepository struct {
	querier persistence.Querier // *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

func NewBookRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.BookRepository {
	return &BookRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to tx
func (r *BookRepository) WithTx(tx pgx.Tx) ledger.BookRepository {
	return &BookRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *BookRepository) Load(ctx context.Context) (*ledger.Book, error) {
	query := `
		SELECT key, value
		FROM ledger_state
		WHERE key = ANY($1)
	`
	return r.load(ctx, query, "failed to load ledger book")
}

// LockForUpdate loads the book and holds row locks on every blob until the
// surrounding transaction ends. Must be called on a repository from WithTx.
func (r *BookRepository) LockForUpdate(ctx context.Context) (*ledger.Book, error) {
	query := `
		SELECT key, value
		FROM ledger_state
		WHERE key = ANY($1)
		ORDER BY key
		FOR UPDATE
	`
	return r.load(ctx, query, "failed to lock ledger book for update")
}

func (r *BookRepository) load(ctx context.Context, query, failure string) (*ledger.Book, error) {
	rows, err := r.querier.Query(ctx, query, stateKeys)
	if err != nil {
		r.logger.Error("Failed to query ledger state", "error", err)
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	defer rows.Close()

	book := ledger.NewBook()
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			r.logger.Error("Failed to scan ledger state row", "error", err)
			return nil, fmt.Errorf("%s: %w", failure, err)
		}
		if err := decodeBlob(book, key, value); err != nil {
			r.logger.Error("Failed to decode ledger state blob", "key", key, "error", err)
			return nil, fmt.Errorf("%s: %w", failure, err)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over ledger state", "error", err)
		return nil, fmt.Errorf("%s: %w", failure, err)
	}

	return book, nil
}

func decodeBlob(book *ledger.Book, key string, value []byte) error {
	var target any
	switch key {
	case KeyAllTransactions:
		target = &book.Transactions
	case KeyOpeningBalances:
		target = &book.OpeningBalances
	case KeyNextID:
		target = &book.NextID
	case KeyGeneratedLedgers:
		target = &book.Snapshots
	default:
		return nil
	}
	if err := json.Unmarshal(value, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save upserts all four state blobs in a single statement
func (r *BookRepository) Save(ctx context.Context, book *ledger.Book) error {
	blobs, err := encodeBlobs(book)
	if err != nil {
		return fmt.Errorf("failed to encode ledger book: %w", err)
	}

	query := `
		INSERT INTO ledger_state (key, value, updated_at)
		VALUES ($1, $2, NOW()), ($3, $4, NOW()), ($5, $6, NOW()), ($7, $8, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	args := make([]interface{}, 0, 2*len(stateKeys))
	for _, key := range stateKeys {
		args = append(args, key, blobs[key])
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save ledger book",
			"transactions", len(book.Transactions),
			"snapshots", len(book.Snapshots),
			"error", err,
		)
		return fmt.Errorf("failed to save ledger book: %w", err)
	}

	return nil
}

func encodeBlobs(book *ledger.Book) (map[string]string, error) {
	txs := book.Transactions
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	overrides := book.OpeningBalances
	if overrides == nil {
		overrides = map[ledger.MonthKey]int64{}
	}
	snapshots := book.Snapshots
	if snapshots == nil {
		snapshots = []ledger.Snapshot{}
	}

	values := map[string]any{
		KeyAllTransactions:  txs,
		KeyOpeningBalances:  overrides,
		KeyNextID:           book.NextID,
		KeyGeneratedLedgers: snapshots,
	}

	blobs := make(map[string]string, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		blobs[key] = string(raw)
	}
	return blobs, nil
}
