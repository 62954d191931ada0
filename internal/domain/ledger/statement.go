package ledger

import "sort"

// Entry is a transaction with the running balance after applying it
type Entry struct {
	Transaction
	Balance int64 `json:"balance"`
}

// Statement is a month's ledger built from an opening balance
type Statement struct {
	OpeningBalance int64   `json:"opening_balance"`
	Entries        []Entry `json:"entries"`
	TotalDebit     int64   `json:"total_debit"`
	TotalCredit    int64   `json:"total_credit"`
	ClosingBalance int64   `json:"closing_balance"`
}

// BuildLedger orders transactions by date (ties keep input order) and
// accumulates the running balance. The input slice is not modified.
func BuildLedger(openingBalance int64, txs []Transaction) Statement {
	ordered := make([]Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	st := Statement{
		OpeningBalance: openingBalance,
		Entries:        make([]Entry, 0, len(ordered)),
	}
	balance := openingBalance
	for _, tx := range ordered {
		balance = balance - tx.Debit + tx.Credit
		st.TotalDebit += tx.Debit
		st.TotalCredit += tx.Credit
		st.Entries = append(st.Entries, Entry{Transaction: tx, Balance: balance})
	}
	st.ClosingBalance = balance
	return st
}

// Transactions returns the ordered transactions without balances
func (s Statement) Transactions() []Transaction {
	txs := make([]Transaction, len(s.Entries))
	for i, e := range s.Entries {
		txs[i] = e.Transaction
	}
	return txs
}
