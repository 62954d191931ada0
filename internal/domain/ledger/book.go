package ledger

import "github.com/google/uuid"

// Book is the explicit ledger store: live transactions, opening balance
// overrides, the transaction id counter and the snapshot archive
// (most recent first).
type Book struct {
	Transactions    []Transaction      `json:"transactions"`
	OpeningBalances map[MonthKey]int64 `json:"opening_balances"`
	NextID          int64              `json:"next_id"`
	Snapshots       []Snapshot         `json:"snapshots"`
}

// NewBook returns an empty book whose first transaction id is 1
func NewBook() *Book {
	return &Book{
		Transactions:    []Transaction{},
		OpeningBalances: map[MonthKey]int64{},
		NextID:          1,
		Snapshots:       []Snapshot{},
	}
}

// Clone deep-copies the book
func (b *Book) Clone() *Book {
	c := &Book{
		Transactions:    append([]Transaction{}, b.Transactions...),
		OpeningBalances: make(map[MonthKey]int64, len(b.OpeningBalances)),
		NextID:          b.NextID,
		Snapshots:       make([]Snapshot, len(b.Snapshots)),
	}
	for k, v := range b.OpeningBalances {
		c.OpeningBalances[k] = v
	}
	for i, s := range b.Snapshots {
		c.Snapshots[i] = s.Clone()
	}
	return c
}

func (b *Book) transactionIndex(id int64) int {
	for i, tx := range b.Transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (b *Book) snapshotIndex(id uuid.UUID) int {
	for i, s := range b.Snapshots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SnapshotForMonth returns the current snapshot of month, if any
func (b *Book) SnapshotForMonth(month MonthKey) (Snapshot, bool) {
	for _, s := range b.Snapshots {
		if s.MonthKey == month {
			return s, true
		}
	}
	return Snapshot{}, false
}

func (b *Book) removeSnapshotsForMonth(month MonthKey) {
	kept := b.Snapshots[:0]
	for _, s := range b.Snapshots {
		if s.MonthKey != month {
			kept = append(kept, s)
		}
	}
	b.Snapshots = kept
}

func (b *Book) removeTransactionsInMonth(month MonthKey) {
	kept := b.Transactions[:0]
	for _, tx := range b.Transactions {
		if !month.Contains(tx.Date) {
			kept = append(kept, tx)
		}
	}
	b.Transactions = kept
}
