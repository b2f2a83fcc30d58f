package tabular

import (
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/numparse"
	"github.com/ginjaninja78/freight-docs/internal/types"
)

// Normalize derives an Entry from a RawRow. Shipper and broker are trimmed
// and uppercased; quantities go through the locale-aware number parser and
// degrade to zero when malformed.
func Normalize(row types.RawRow, lineNumber int) types.Entry {
	qty := row[types.ColQtyPerBL]

	e := types.Entry{
		RowNumber:           lineNumber,
		BLNumber:            strings.TrimSpace(row[types.ColBLNumber]),
		Shipper:             NormalizeName(row[types.ColShipper]),
		Quantity:            numparse.ParseDecimal(qty),
		Broker:              NormalizeName(row[types.ColBroker]),
		CNPJ:                strings.TrimSpace(row[types.ColCNPJ]),
		Declaration:         strings.TrimSpace(row[types.ColDeclaration]),
		DeclarationQuantity: numparse.ParseDecimal(row[types.ColQtyPerDUE]),
	}
	e.QuantityMalformed = strings.TrimSpace(qty) != "" && e.Quantity.IsZero() && !isZeroLiteral(qty)
	return e
}

// Entries normalizes every row of the table, in order.
func (t *Table) Entries() []types.Entry {
	out := make([]types.Entry, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 1
		if i < len(t.LineNumbers) {
			line = t.LineNumbers[i]
		}
		out[i] = Normalize(row, line)
	}
	return out
}

// NormalizeName trims and uppercases a company name.
func NormalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// isZeroLiteral reports whether s spells a zero quantity ("0", "0,000", ...).
func isZeroLiteral(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
