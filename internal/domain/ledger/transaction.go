package ledger

import (
	"strings"
	"time"

	"github.com/pettycash-ledger/internal/domain/shared"
)

const DateLayout = "2006-01-02"

// Transaction is a dated petty-cash movement. Exactly one of Debit or Credit is positive.
type Transaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Debit       int64     `json:"debit"`  // Stored in cents/minor units
	Credit      int64     `json:"credit"` // Stored in cents/minor units
}

// TransactionInput carries user-entered fields for create and edit
type TransactionInput struct {
	Date        time.Time
	Description string
	Debit       int64
	Credit      int64
}

// Validate checks the input against the ledger month it is being filed into
func (in TransactionInput) Validate(month MonthKey) error {
	if strings.TrimSpace(in.Description) == "" {
		return ErrValidation{Reason: "description cannot be empty"}
	}
	if in.Debit < 0 || in.Credit < 0 {
		return ErrValidation{Reason: "debit and credit cannot be negative"}
	}
	if in.Debit <= 0 && in.Credit <= 0 {
		return ErrValidation{Reason: "either debit or credit must be positive"}
	}
	if in.Debit > 0 && in.Credit > 0 {
		return ErrValidation{Reason: "a transaction cannot have both debit and credit"}
	}
	if !shared.AmountInRange(in.Debit) || !shared.AmountInRange(in.Credit) {
		return ErrValidation{Reason: "amount exceeds the maximum of " + shared.FormatAmount(shared.MaxAmount)}
	}
	if in.Date.IsZero() {
		return ErrValidation{Reason: "date is required"}
	}
	if !month.Contains(in.Date) {
		return ErrValidation{Reason: "transaction date " + in.Date.Format(DateLayout) + " is outside the ledger month " + month.String()}
	}
	return nil
}

// NewTransaction validates the input and builds a transaction with the given id
func NewTransaction(id int64, month MonthKey, in TransactionInput) (Transaction, error) {
	if err := in.Validate(month); err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          id,
		Date:        normalizeDate(in.Date),
		Description: strings.TrimSpace(in.Description),
		Debit:       in.Debit,
		Credit:      in.Credit,
	}, nil
}

// MonthKey returns the ledger period the transaction is filed in
func (t Transaction) MonthKey() MonthKey {
	return MonthKeyOf(t.Date)
}

// Net is the signed effect on the running balance
func (t Transaction) Net() int64 {
	return t.Credit - t.Debit
}

func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
