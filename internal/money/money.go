// Package money holds the decimal helpers shared by the order form and the
// API payloads. Amounts are rupiah in whole currency units; quantities are
// weights or counts depending on the service package.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinQuantity is the smallest quantity a line item may carry. Anything
// below it is coerced to zero so a priced line cannot contribute a
// near-zero subtotal by accident.
var MinQuantity = decimal.NewFromFloat(0.01)

// FromRupiah builds an amount from whole currency units.
func FromRupiah(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FormatRupiah renders an amount the way the cashier expects it:
// "Rp 36.000", with a dot as the thousands separator and no decimals.
func FormatRupiah(d decimal.Decimal) string {
	neg := d.Sign() < 0
	s := d.Round(0).Abs().String()

	var b strings.Builder
	b.WriteString("Rp ")
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
