package ledger

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey identifies a calendar month's ledger period
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey builds a month key, rejecting months outside 1..12
func NewMonthKey(year int, month time.Month) (MonthKey, error) {
	if month < time.January || month > time.December {
		return MonthKey{}, fmt.Errorf("invalid month %d", month)
	}
	if year < 1 || year > 9999 {
		return MonthKey{}, fmt.Errorf("invalid year %d", year)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// ParseMonthKey parses the YYYY-MM text form
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: expected YYYY-MM", s)
	}
	return NewMonthKey(t.Year(), t.Month())
}

// MonthKeyOf returns the month key a date falls in
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Previous returns the immediately preceding calendar month
func (k MonthKey) Previous() MonthKey {
	if k.Month == time.January {
		return MonthKey{Year: k.Year - 1, Month: time.December}
	}
	return MonthKey{Year: k.Year, Month: k.Month - 1}
}

// Next returns the immediately following calendar month
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// Start is midnight UTC on the first day of the month
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the date's year and month match the key
func (k MonthKey) Contains(t time.Time) bool {
	return t.Year() == k.Year && t.Month() == k.Month
}

// Before orders month keys chronologically
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MonthKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
