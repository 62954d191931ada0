package shared

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of fractional digits carried by stored amounts
const MinorUnitExponent = 2

// MaxAmount bounds a single amount in minor units (100 billion). Ledger totals
// are int64 sums, so the bound keeps them far from overflow.
const MaxAmount int64 = 10_000_000_000_000

var (
	ErrInvalidAmountFormat = errors.New("amount must be a decimal number with at most two fractional digits")
	ErrAmountOutOfRange    = errors.New("amount is out of range")
)

// ParseAmount converts a decimal string such as "12.50" into minor units.
// Both "." and "," are accepted as the decimal separator.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, ErrInvalidAmountFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmountFormat
	}
	return ToMinorUnits(d)
}

// ToMinorUnits converts a decimal amount into minor units, rejecting sub-cent
// precision and magnitudes above MaxAmount
func ToMinorUnits(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(MinorUnitExponent)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrInvalidAmountFormat
	}
	if shifted.Abs().GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return 0, ErrAmountOutOfRange
	}
	return shifted.IntPart(), nil
}

// AmountInRange reports whether amount lies within ±MaxAmount
func AmountInRange(amount int64) bool {
	return amount >= -MaxAmount && amount <= MaxAmount
}

// FromMinorUnits converts stored minor units back into a decimal amount
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -MinorUnitExponent)
}

// FormatAmount renders minor units with a fixed two-digit fraction, e.g. "-12.50"
func FormatAmount(amount int64) string {
	return FromMinorUnits(amount).StringFixed(MinorUnitExponent)
}

// FormatAmountGrouped renders minor units with thousands separators, e.g. "1,250.00"
func FormatAmountGrouped(amount int64) string {
	plain := FormatAmount(amount)
	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign, plain = "-", plain[1:]
	}
	intPart, fracPart, _ := strings.Cut(plain, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + "." + fracPart
}
