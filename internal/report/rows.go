// =============================================================================
// Freight Docs - Billing Report Rows
// =============================================================================
//
// Turns aggregated (shipper, broker) groups into printable billing rows.
//
// ROW COMPUTATION:
//   1. Apply the billing rule table to the group's shipper, CNPJ and BL count.
//   2. Contact = rule contact, or the broker directory entry when the rule
//      has none (or no rule matched).
//   3. Total = unit price x valor multiplier. Rows that must not be billed
//      are valued at zero and flagged ZeroValue.
//
// The finalized list is split with Partition into billable rows and
// do-not-bill rows; Sum only ever counts the billable subset.
//
// =============================================================================

package report

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/billing"
	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/format"
	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultUnitPrice is the agency fee per BL.
var DefaultUnitPrice = decimal.NewFromInt(350)

// BLSeparator joins the BL numbers of a row.
const BLSeparator = "/"

// Header is the fixed column order of every billing sheet.
var Header = []string{
	"BL nbr",
	"Name of shipper",
	"CNPJ/VAT",
	"Qtd BLs",
	"Valor unitário",
	"Valor total",
	"Customs Broker",
	"Contato",
}

// Pricing carries the per-invocation price constants.
type Pricing struct {
	UnitPrice decimal.Decimal
}

// DefaultPricing returns the standard agency pricing.
func DefaultPricing() Pricing {
	return Pricing{UnitPrice: DefaultUnitPrice}
}

// =============================================================================
// OUTPUT ROW
// =============================================================================

// OutputRow is one line of the billing report.
type OutputRow struct {
	BLNumbers string
	Shipper   string
	CNPJ      string
	BLCount   int
	UnitValue decimal.Decimal

	// TotalValue is UnitValue x ValorMultiplier, or zero when ZeroValue.
	TotalValue decimal.Decimal

	Broker  string
	Contact string
	Remarks string

	ValorMultiplier int
	SkipBilling     bool
	CNPJOverridden  bool
	Highlight       bool
	ZeroValue       bool
}

// Cells returns the row in Header order with money already formatted.
func (r OutputRow) Cells() []string {
	return []string{
		r.BLNumbers,
		r.Shipper,
		r.CNPJ,
		strconv.Itoa(r.BLCount),
		format.BRL(r.UnitValue),
		format.BRL(r.TotalValue),
		r.Broker,
		r.Contact,
	}
}

// Totals sums a billable subset.
type Totals struct {
	BLCount int
	Value   decimal.Decimal
}

// =============================================================================
// ROW BUILDING
// =============================================================================

// BuildRows computes one OutputRow per group, in group order.
//
// PARAMETERS:
//   - groups: billing groups keyed by (shipper, broker).
//   - pricing: unit price per BL.
//   - rules: billing rule table (nil means no rules).
//   - dir: broker directory used when a rule carries no contact (may be nil).
func BuildRows(groups []*types.AggregatedGroup, pricing Pricing, rules *billing.Table, dir *directory.Directory) []OutputRow {
	if rules == nil {
		rules = billing.NewTable(nil, "")
	}

	rows := make([]OutputRow, 0, len(groups))
	for _, g := range groups {
		decision := rules.Apply(g.Shipper, g.CNPJ, g.BLCount())

		row := OutputRow{
			BLNumbers:       strings.Join(g.BLNumbers, BLSeparator),
			Shipper:         g.Shipper,
			CNPJ:            decision.CNPJ,
			BLCount:         g.BLCount(),
			UnitValue:       pricing.UnitPrice,
			Broker:          g.Broker,
			Contact:         decision.Contact,
			Remarks:         decision.Remarks,
			ValorMultiplier: decision.ValorMultiplier,
			SkipBilling:     decision.SkipBilling,
			CNPJOverridden:  decision.CNPJOverridden,
			Highlight:       decision.Highlight,
		}
		if decision.CompanyName != "" {
			row.Shipper = decision.CompanyName
		}
		if row.Contact == "" && dir != nil {
			row.Contact = dir.Lookup(g.Broker)
		}

		if decision.SkipBilling {
			row.TotalValue = decimal.Zero
		} else {
			row.TotalValue = pricing.UnitPrice.Mul(decimal.NewFromInt(int64(decision.ValorMultiplier)))
		}
		row.ZeroValue = row.TotalValue.IsZero()

		rows = append(rows, row)
	}
	return rows
}

// Partition splits rows into billable and do-not-bill subsets, keeping the
// relative order of each.
func Partition(rows []OutputRow) (billable, skipped []OutputRow) {
	for _, r := range rows {
		if r.SkipBilling {
			skipped = append(skipped, r)
		} else {
			billable = append(billable, r)
		}
	}
	return billable, skipped
}

// Sum totals BL count and value over rows. Callers pass the billable subset.
func Sum(rows []OutputRow) Totals {
	t := Totals{Value: decimal.Zero}
	for _, r := range rows {
		if r.SkipBilling {
			continue
		}
		t.BLCount += r.BLCount
		t.Value = t.Value.Add(r.TotalValue)
	}
	return t
}

// SkippedShippers lists the distinct shipper names of do-not-bill rows.
func SkippedShippers(rows []OutputRow) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !r.SkipBilling || seen[r.Shipper] {
			continue
		}
		seen[r.Shipper] = true
		names = append(names, r.Shipper)
	}
	return names
}
