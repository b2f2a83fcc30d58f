// =============================================================================
// Freight Docs - Locale-Aware Number Parser
// =============================================================================
//
// Quantity cells arrive in whatever notation the person who filled the sheet
// used: Brazilian ("1.234,56"), US ("1,234.56") or plain ("1234.56"). This
// package turns them into numbers without any locale configuration.
//
// SEPARATOR RULES:
//   - Both "." and "," present: the one appearing LATER is the decimal
//     separator, the other is a thousands separator and is removed.
//   - Only "," present: it is the decimal separator.
//   - Only "." or no separator: parsed as-is.
//
// A cell that cannot be parsed degrades to zero. A single bad cell must never
// abort a whole batch.
//
// =============================================================================

package numparse

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Parse converts a free-form numeric token into a finite, non-negative float.
// Unparsable, negative or non-finite input yields 0.
func Parse(s string) float64 {
	normalized, ok := normalize(s)
	if !ok {
		return 0
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseDecimal applies the same separator rules as Parse but keeps the value
// as an arbitrary-precision decimal, so sums of many quantities do not drift.
// Unparsable or negative input yields decimal.Zero.
func ParseDecimal(s string) decimal.Decimal {
	normalized, ok := normalize(s)
	if !ok {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// normalize rewrites the token into Go's float syntax ("." decimal, no
// grouping). The boolean is false when nothing numeric is left.
func normalize(s string) (string, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	// strconv accepts spellings like "Inf" and "NaN" and hex floats; a
	// quantity cell never legitimately contains letters.
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			return "", false
		}
	}
	return s, true
}
