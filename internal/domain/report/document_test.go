package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func march2024Snapshot() ledger.Snapshot {
	d := func(n int) time.Time { return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC) }
	return ledger.Snapshot{
		ID:             uuid.MustParse("7b0f6c8e-4a51-4c0e-9a7a-3f1f7a8c2d10"),
		MonthKey:       ledger.MonthKey{Year: 2024, Month: time.March},
		OpeningBalance: 100000,
		ClosingBalance: 125000,
		TotalDebit:     25000,
		TotalCredit:    50000,
		Transactions: []ledger.Transaction{
			{ID: 1, Date: d(1), Description: "Supplies", Debit: 20000},
			{ID: 2, Date: d(5), Description: "Replenish", Credit: 50000},
			{ID: 3, Date: d(10), Description: "Courier", Debit: 5000},
		},
		ExportedAt: time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2024, time.April, 2, 9, 30, 0, 0, time.UTC)

	t.Run("StructuredFields", func(t *testing.T) {
		doc := Render(march2024Snapshot(), Options{Institution: "Institute of Marine Research", Currency: "EUR"}, now)

		assert.Equal(t, "7b0f6c8e-4a51-4c0e-9a7a-3f1f7a8c2d10", doc.SnapshotID)
		assert.Equal(t, "2024-03", doc.MonthKey)
		assert.Equal(t, DefaultTitle, doc.Title)
		assert.Equal(t, "March 2024", doc.Period)
		assert.Equal(t, "1,000.00", doc.OpeningBalance)
		assert.Equal(t, "250.00", doc.TotalDebit)
		assert.Equal(t, "500.00", doc.TotalCredit)
		assert.Equal(t, "1,250.00", doc.ClosingBalance)
		assert.Equal(t, now, doc.GeneratedAt)

		require.Len(t, doc.Lines, 3)
		assert.Equal(t, Line{Date: "01 Mar 2024", Description: "Supplies", Debit: "200.00", Credit: "", Balance: "800.00"}, doc.Lines[0])
		assert.Equal(t, Line{Date: "05 Mar 2024", Description: "Replenish", Debit: "", Credit: "500.00", Balance: "1,300.00"}, doc.Lines[1])
		assert.Equal(t, "1,250.00", doc.Lines[2].Balance)
	})

	t.Run("Text", func(t *testing.T) {
		doc := Render(march2024Snapshot(), Options{Title: "Cash Book", Institution: "Institute of Marine Research", Currency: "EUR"}, now)

		lines := strings.Split(doc.Text, "\n")
		assert.Equal(t, "Cash Book", lines[0])
		assert.Equal(t, "Institute of Marine Research", lines[1])
		assert.Contains(t, doc.Text, "Period: March 2024")
		assert.Contains(t, doc.Text, "Currency: EUR")
		assert.Contains(t, doc.Text, "Opening balance: 1,000.00")
		assert.Contains(t, doc.Text, "Closing balance: 1,250.00")
		assert.Contains(t, doc.Text, "Generated 2024-04-02 09:30 UTC")

		var header, courier string
		for _, l := range lines {
			if strings.HasPrefix(l, "Date") {
				header = l
			}
			if strings.Contains(l, "Courier") {
				courier = l
			}
		}
		require.NotEmpty(t, header)
		require.NotEmpty(t, courier)
		assert.Equal(t, strings.Index(header, "Description"), strings.Index(courier, "Courier"), "columns are aligned")
	})

	t.Run("OmitsEmptyInstitution", func(t *testing.T) {
		doc := Render(march2024Snapshot(), Options{}, now)

		assert.True(t, strings.HasPrefix(doc.Text, DefaultTitle+"\nPeriod: March 2024\n"))
		assert.NotContains(t, doc.Text, "Currency:")
	})
}

func TestErrReportNotFound_Is(t *testing.T) {
	err := ErrReportNotFound{Key: "2024-03"}

	assert.True(t, errors.Is(err, ErrReportNotFound{}))
	assert.True(t, errors.Is(err, ErrReportNotFound{Key: "2024-03"}))
	assert.False(t, errors.Is(err, ErrReportNotFound{Key: "2024-04"}))
}
