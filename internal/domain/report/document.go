package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pettycash-ledger/internal/domain/ledger"
	"github.com/pettycash-ledger/internal/domain/shared"
)

const (
	DefaultTitle   = "Petty Cash Ledger"
	lineDateLayout = "02 Jan 2006"
	periodLayout   = "January 2006"
)

// Options controls the heading of a rendered report
type Options struct {
	Title       string
	Institution string
	Currency    string
}

// Line is one printable ledger row
type Line struct {
	Date        string `json:"date" bson:"date"`
	Description string `json:"description" bson:"description"`
	Debit       string `json:"debit" bson:"debit"`
	Credit      string `json:"credit" bson:"credit"`
	Balance     string `json:"balance" bson:"balance"`
}

// Document is the printable report of an exported snapshot
type Document struct {
	SnapshotID     string    `json:"snapshot_id" bson:"snapshot_id"`
	MonthKey       string    `json:"month_key" bson:"month_key"`
	Title          string    `json:"title" bson:"title"`
	Institution    string    `json:"institution,omitempty" bson:"institution,omitempty"`
	Currency       string    `json:"currency" bson:"currency"`
	Period         string    `json:"period" bson:"period"`
	OpeningBalance string    `json:"opening_balance" bson:"opening_balance"`
	TotalDebit     string    `json:"total_debit" bson:"total_debit"`
	TotalCredit    string    `json:"total_credit" bson:"total_credit"`
	ClosingBalance string    `json:"closing_balance" bson:"closing_balance"`
	Lines          []Line    `json:"lines" bson:"lines"`
	Text           string    `json:"text" bson:"text"`
	ExportedAt     time.Time `json:"exported_at" bson:"exported_at"`
	GeneratedAt    time.Time `json:"generated_at" bson:"generated_at"`
}

// Render builds the printable document for a snapshot
func Render(s ledger.Snapshot, opts Options, now time.Time) Document {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = DefaultTitle
	}

	st := s.Statement()
	doc := Document{
		SnapshotID:     s.ID.String(),
		MonthKey:       s.MonthKey.String(),
		Title:          opts.Title,
		Institution:    opts.Institution,
		Currency:       opts.Currency,
		Period:         s.MonthKey.Start().Format(periodLayout),
		OpeningBalance: shared.FormatAmountGrouped(st.OpeningBalance),
		TotalDebit:     shared.FormatAmountGrouped(st.TotalDebit),
		TotalCredit:    shared.FormatAmountGrouped(st.TotalCredit),
		ClosingBalance: shared.FormatAmountGrouped(st.ClosingBalance),
		Lines:          make([]Line, 0, len(st.Entries)),
		ExportedAt:     s.ExportedAt,
		GeneratedAt:    now,
	}
	for _, e := range st.Entries {
		doc.Lines = append(doc.Lines, Line{
			Date:        e.Date.Format(lineDateLayout),
			Description: e.Description,
			Debit:       formatOptional(e.Debit),
			Credit:      formatOptional(e.Credit),
			Balance:     shared.FormatAmountGrouped(e.Balance),
		})
	}
	doc.Text = renderText(doc)
	return doc
}

func formatOptional(amount int64) string {
	if amount == 0 {
		return ""
	}
	return shared.FormatAmountGrouped(amount)
}

func renderText(doc Document) string {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, doc.Title)
	if doc.Institution != "" {
		fmt.Fprintln(&buf, doc.Institution)
	}
	fmt.Fprintf(&buf, "Period: %s\n", doc.Period)
	if doc.Currency != "" {
		fmt.Fprintf(&buf, "Currency: %s\n", doc.Currency)
	}
	fmt.Fprintf(&buf, "\nOpening balance: %s\n\n", doc.OpeningBalance)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tDescription\tDebit\tCredit\tBalance\t")
	for _, l := range doc.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", l.Date, l.Description, l.Debit, l.Credit, l.Balance)
	}
	fmt.Fprintf(tw, "\tTotals\t%s\t%s\t%s\t\n", doc.TotalDebit, doc.TotalCredit, doc.ClosingBalance)
	_ = tw.Flush()

	fmt.Fprintf(&buf, "\nClosing balance: %s\n", doc.ClosingBalance)
	fmt.Fprintf(&buf, "Generated %s\n", doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	return buf.String()
}
