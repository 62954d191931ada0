package ledger

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// ErrValidation indicates rejected transaction input
type ErrValidation struct {
	Reason string
}

func (e ErrValidation) Error() string {
	return "validation failed: " + e.Reason
}

// Is matches any ErrValidation when the target carries no reason
func (e ErrValidation) Is(target error) bool {
	t, ok := target.(ErrValidation)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// ErrEmptyExport indicates an export of a month with no transactions
type ErrEmptyExport struct {
	Month MonthKey
}

func (e ErrEmptyExport) Error() string {
	return "no transactions to export for " + e.Month.String()
}

func (e ErrEmptyExport) Is(target error) bool {
	t, ok := target.(ErrEmptyExport)
	if !ok {
		return false
	}
	return t.Month.IsZero() || t.Month == e.Month
}

// ErrTransactionNotFound indicates missing live transaction
type ErrTransactionNotFound struct {
	ID int64
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + strconv.FormatInt(e.ID, 10)
}

func (e ErrTransactionNotFound) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	return t.ID == 0 || t.ID == e.ID
}

// ErrSnapshotNotFound indicates missing archived snapshot
type ErrSnapshotNotFound struct {
	ID uuid.UUID
}

func (e ErrSnapshotNotFound) Error() string {
	return "snapshot not found: " + e.ID.String()
}

func (e ErrSnapshotNotFound) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(ErrSnapshotNotFound)
	if !ok {
		return false
	}
	return t.ID == uuid.Nil || t.ID == e.ID
}

// ErrNotFound is the sentinel both not-found errors match
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err refers to a missing transaction or snapshot
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a rejected transaction input
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation{})
}

// IsEmptyExport reports whether err is an export of an empty month
func IsEmptyExport(err error) bool {
	return errors.Is(err, ErrEmptyExport{})
}
