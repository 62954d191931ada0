package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is an exported, immutable record of a finalized month's ledger.
// Transactions are held by value so later edits never alter it.
type Snapshot struct {
	ID             uuid.UUID     `json:"id"`
	MonthKey       MonthKey      `json:"month_key"`
	OpeningBalance int64         `json:"opening_balance"`
	ClosingBalance int64         `json:"closing_balance"`
	TotalDebit     int64         `json:"total_debit"`
	TotalCredit    int64         `json:"total_credit"`
	Transactions   []Transaction `json:"transactions"`
	ExportedAt     time.Time     `json:"exported_at"`
}

// NewSnapshot freezes a built statement for the given month
func NewSnapshot(id uuid.UUID, month MonthKey, st Statement, exportedAt time.Time) Snapshot {
	return Snapshot{
		ID:             id,
		MonthKey:       month,
		OpeningBalance: st.OpeningBalance,
		ClosingBalance: st.ClosingBalance,
		TotalDebit:     st.TotalDebit,
		TotalCredit:    st.TotalCredit,
		Transactions:   st.Transactions(),
		ExportedAt:     exportedAt,
	}
}

// Statement rebuilds the running-balance view of the frozen transactions
func (s Snapshot) Statement() Statement {
	return BuildLedger(s.OpeningBalance, s.Transactions)
}

// Clone returns a copy that shares no slice storage with s
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Transactions = append([]Transaction(nil), s.Transactions...)
	return c
}
