package pdfextract

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/numparse"
	"github.com/shopspring/decimal"
)

// dotThousandsRe matches integers grouped with "." only, e.g. "25.000" or
// "1.234.567".
var dotThousandsRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)

// parseKilograms reads a kilogram figure printed on a customs document.
// Documents group thousands with "." and never print a kilogram weight with
// exactly three "." decimals, so a token made only of 3-digit dot groups is
// an integer. Everything else follows numparse.
func parseKilograms(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if dotThousandsRe.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	return numparse.ParseDecimal(s)
}
