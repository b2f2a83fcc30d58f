// =============================================================================
// Freight Docs - Shared Types
// =============================================================================
//
// This package contains the record types that flow between the ingestion,
// grouping, billing and output packages. Keeping them here avoids import
// cycles between those packages.
//
// DATA FLOW:
//   RawRow -> Entry -> AggregatedGroup -> (billing decision) -> report rows
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Recognized freight-sheet column names. These are matched case-sensitively
// after synonym normalization (see tabular.NormalizeHeader).
const (
	ColShipper     = "Name of shipper"
	ColQtyPerBL    = "Qtd per BL"
	ColBLNumber    = "BL nbr"
	ColQtyPerDUE   = "Qtd per DU-E"
	ColCNPJ        = "CNPJ/VAT"
	ColDeclaration = "DU-E"
	ColBroker      = "Customs broker"
)

// FallbackColumns is the positional column order assumed when the first line
// of the input is not a header.
var FallbackColumns = []string{
	ColShipper,
	ColQtyPerBL,
	ColBLNumber,
	ColQtyPerDUE,
	ColCNPJ,
	ColDeclaration,
	ColBroker,
}

// =============================================================================
// ROW TYPES
// =============================================================================

// RawRow maps a recognized column name to its trimmed cell value.
// Every recognized column is present; absent cells are "".
type RawRow map[string]string

// Entry is a normalized freight line derived 1:1 from a RawRow.
type Entry struct {
	// RowNumber is the 1-based line number in the original input.
	RowNumber int

	// BLNumber is the trimmed Bill-of-Lading number.
	BLNumber string

	// Shipper is the trimmed, uppercased shipper name.
	Shipper string

	// Quantity is the "Qtd per BL" value in metric tons, as entered.
	Quantity decimal.Decimal

	// Broker is the trimmed, uppercased customs broker name.
	Broker string

	// CNPJ is the trimmed shipper tax id.
	CNPJ string

	// Declaration is the DU-E export declaration number.
	Declaration string

	// DeclarationQuantity is the "Qtd per DU-E" value in metric tons.
	DeclarationQuantity decimal.Decimal

	// QuantityMalformed is set when the quantity cell was non-empty but
	// could not be parsed and was degraded to zero.
	QuantityMalformed bool
}

// =============================================================================
// GROUP TYPES
// =============================================================================

// AggregatedGroup is the result of folding every Entry that shares a group key.
// It is built during a single aggregation pass and not modified afterwards.
type AggregatedGroup struct {
	// GroupKey is the composite key all members share.
	GroupKey string

	// Shipper, Broker and CNPJ are the values of the first member seen.
	Shipper string
	Broker  string
	CNPJ    string

	// BLNumbers lists distinct BL numbers in order of first occurrence.
	BLNumbers []string

	// Entries holds every member entry in input order.
	Entries []Entry

	// TotalQuantity is the exact sum of member quantities when the grouping
	// was asked to sum; zero otherwise.
	TotalQuantity decimal.Decimal
}

// BLCount returns the number of distinct BL numbers in the group.
func (g *AggregatedGroup) BLCount() int {
	return len(g.BLNumbers)
}
