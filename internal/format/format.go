// =============================================================================
// Freight Docs - Display Formatters
// =============================================================================
//
// Print-ready strings for billing reports, receipts and BL documents.
//
// FORMATS:
//   BRL          : "R$ 1234,56"          billing sheets (comma decimal, no grouping)
//   Currency     : "1,234.56"            English documents and run summaries
//   Weight       : "1,234.567"           three decimals, truncated, never rounded up
//   OrdinalDate  : "JANUARY 1ST, 2025"   English documents
//
// =============================================================================

package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is printed before billing amounts.
const CurrencyPrefix = "R$ "

// BRL renders a billing amount with two decimals, a comma decimal separator
// and the currency prefix.
func BRL(v decimal.Decimal) string {
	return CurrencyPrefix + strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// Currency renders an amount with two decimals and "," thousands grouping.
func Currency(v decimal.Decimal) string {
	return group(v.StringFixed(2))
}

// Weight renders a tonnage with exactly three decimals. Extra digits are
// truncated, so a displayed weight never exceeds the real one.
func Weight(v decimal.Decimal) string {
	return group(v.Truncate(3).StringFixed(3))
}

// WeightMT renders a tonnage followed by the metric-ton unit.
func WeightMT(v decimal.Decimal) string {
	return Weight(v) + " MT"
}

// OrdinalDate renders t as "JANUARY 1ST, 2025".
func OrdinalDate(t time.Time) string {
	day := t.Day()
	return strings.ToUpper(t.Month().String()) + " " +
		strconv.Itoa(day) + strings.ToUpper(OrdinalSuffix(day)) + ", " +
		strconv.Itoa(t.Year())
}

// OrdinalSuffix returns the English ordinal suffix for n: 11, 12 and 13 take
// "th"; otherwise 1 -> "st", 2 -> "nd", 3 -> "rd", anything else "th".
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// group inserts "," thousands separators into a plain fixed-point string.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
