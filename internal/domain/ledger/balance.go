package ledger

// ResolveOpeningBalance determines a month's opening balance. First match wins:
//  1. an explicit override for the month
//  2. the closing balance of the previous month's snapshot
//  3. the previous month's live transactions applied to that month's override (or 0)
//  4. zero
//
// Step 3 looks back a single month only. A gap of two or more months without
// snapshots resolves to 0 for the later month.
func ResolveOpeningBalance(month MonthKey, overrides map[MonthKey]int64, snapshots []Snapshot, txs []Transaction) int64 {
	if amount, ok := overrides[month]; ok {
		return amount
	}

	prev := month.Previous()
	for _, s := range snapshots {
		if s.MonthKey == prev {
			return s.ClosingBalance
		}
	}

	prevTxs := TransactionsInMonth(txs, prev)
	if len(prevTxs) == 0 {
		return 0
	}
	balance := overrides[prev]
	for _, tx := range prevTxs {
		balance = balance - tx.Debit + tx.Credit
	}
	return balance
}

// TransactionsInMonth returns the transactions dated in month, preserving order
func TransactionsInMonth(txs []Transaction, month MonthKey) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if month.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
