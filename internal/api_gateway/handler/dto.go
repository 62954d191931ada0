package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/pettycash-ledger/internal/api_gateway/service"
	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/shared"
)

// TransactionRequest is the body of add and update transaction calls.
// Amounts are decimal strings; an omitted amount is zero. Description is
// checked by the ledger so every content rule reports a validation error.
type TransactionRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

func (r TransactionRequest) toInput() (ledger.TransactionInput, error) {
	date, err := time.Parse(ledger.DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return ledger.TransactionInput{}, fmt.Errorf("date must use the YYYY-MM-DD format")
	}
	debit, err := parseOptionalAmount(r.Debit)
	if err != nil {
		return ledger.TransactionInput{}, fmt.Errorf("debit: %w", err)
	}
	credit, err := parseOptionalAmount(r.Credit)
	if err != nil {
		return ledger.TransactionInput{}, fmt.Errorf("credit: %w", err)
	}
	return ledger.TransactionInput{
		Date:        date,
		Description: r.Description,
		Debit:       debit,
		Credit:      credit,
	}, nil
}

func parseOptionalAmount(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return shared.ParseAmount(s)
}

type OpeningBalanceRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type OpeningBalanceResponse struct {
	Month      string `json:"month"`
	Amount     string `json:"amount"`
	Overridden bool   `json:"overridden"`
}

type TransactionResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// EntryResponse is a transaction with the running balance after it
type EntryResponse struct {
	TransactionResponse
	Balance string `json:"balance"`
}

type LedgerResponse struct {
	Month          string          `json:"month"`
	OpeningBalance string          `json:"opening_balance"`
	Entries        []EntryResponse `json:"entries"`
	TotalDebit     string          `json:"total_debit"`
	TotalCredit    string          `json:"total_credit"`
	ClosingBalance string          `json:"closing_balance"`
}

type SnapshotResponse struct {
	ID             string          `json:"id"`
	Month          string          `json:"month"`
	OpeningBalance string          `json:"opening_balance"`
	TotalDebit     string          `json:"total_debit"`
	TotalCredit    string          `json:"total_credit"`
	ClosingBalance string          `json:"closing_balance"`
	Entries        []EntryResponse `json:"entries"`
	ExportedAt     string          `json:"exported_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

func mapTransactionToResponse(tx ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.Format(ledger.DateLayout),
		Description: tx.Description,
		Debit:       shared.FormatAmount(tx.Debit),
		Credit:      shared.FormatAmount(tx.Credit),
	}
}

func mapEntries(entries []ledger.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse{
			TransactionResponse: mapTransactionToResponse(e.Transaction),
			Balance:             shared.FormatAmount(e.Balance),
		})
	}
	return out
}

func mapStatementToResponse(month ledger.MonthKey, st ledger.Statement) LedgerResponse {
	return LedgerResponse{
		Month:          month.String(),
		OpeningBalance: shared.FormatAmount(st.OpeningBalance),
		Entries:        mapEntries(st.Entries),
		TotalDebit:     shared.FormatAmount(st.TotalDebit),
		TotalCredit:    shared.FormatAmount(st.TotalCredit),
		ClosingBalance: shared.FormatAmount(st.ClosingBalance),
	}
}

func mapSnapshotToResponse(s ledger.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:             s.ID.String(),
		Month:          s.MonthKey.String(),
		OpeningBalance: shared.FormatAmount(s.OpeningBalance),
		TotalDebit:     shared.FormatAmount(s.TotalDebit),
		TotalCredit:    shared.FormatAmount(s.TotalCredit),
		ClosingBalance: shared.FormatAmount(s.ClosingBalance),
		Entries:        mapEntries(s.Statement().Entries),
		ExportedAt:     s.ExportedAt.UTC().Format(time.RFC3339),
	}
}

func mapOpeningBalanceToResponse(ob service.OpeningBalance) OpeningBalanceResponse {
	return OpeningBalanceResponse{
		Month:      ob.Month.String(),
		Amount:     shared.FormatAmount(ob.Amount),
		Overridden: ob.Overridden,
	}
}
