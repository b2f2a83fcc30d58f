// =============================================================================
// Freight Docs - Cargo Receipts
// =============================================================================
//
// Receipts ("Recibos") acknowledge the cargo shipped per party.
//
// GRAIN:
//   One receipt per shipper. Quantities are summed exactly; a BL listed on
//   several DU-E lines counts once.
//
// SUGAR:
//   One receipt per customs broker. Each BL line is kept as its own line,
//   nothing is summed, and the broker's contact comes from the directory.
//
// Tonnage is the "Qtd per BL" value as entered in metric tons; no unit
// conversion happens here.
//
// =============================================================================

package receipts

import (
	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/format"
	"github.com/ginjaninja78/freight-docs/internal/grouping"
	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/shopspring/decimal"
)

// Kind selects the receipt flavor.
type Kind string

const (
	KindGrain Kind = "grain"
	KindSugar Kind = "sugar"
)

// =============================================================================
// GRAIN RECEIPTS
// =============================================================================

// GrainReceipt is the per-shipper grain receipt.
type GrainReceipt struct {
	Shipper   string
	CNPJ      string
	BLNumbers []string
	Total     decimal.Decimal
}

// DisplayTotal renders the total as "150.750 MT".
func (r GrainReceipt) DisplayTotal() string {
	return format.WeightMT(r.Total)
}

// Grain builds one receipt per shipper, in order of first appearance.
func Grain(entries []types.Entry) []GrainReceipt {
	groups := grouping.Aggregate(entries, grouping.ByShipper, grouping.Options{Sum: true})

	out := make([]GrainReceipt, 0, groups.Len())
	for _, g := range groups.List() {
		out = append(out, GrainReceipt{
			Shipper:   g.Shipper,
			CNPJ:      g.CNPJ,
			BLNumbers: g.BLNumbers,
			Total:     g.TotalQuantity,
		})
	}
	return out
}

// =============================================================================
// SUGAR RECEIPTS
// =============================================================================

// SugarLine is one BL line on a sugar receipt.
type SugarLine struct {
	BLNumber    string
	Shipper     string
	CNPJ        string
	Declaration string
	Quantity    decimal.Decimal
}

// DisplayQuantity renders the line quantity as "1,234.567 MT".
func (l SugarLine) DisplayQuantity() string {
	return format.WeightMT(l.Quantity)
}

// SugarReceipt is the per-broker sugar receipt.
type SugarReceipt struct {
	Broker  string
	Contact string
	Lines   []SugarLine
}

// Sugar builds one receipt per customs broker, in order of first appearance.
// dir may be nil, in which case contacts are left empty.
func Sugar(entries []types.Entry, dir *directory.Directory) []SugarReceipt {
	groups := grouping.Aggregate(entries, grouping.ByBroker, grouping.Options{})

	out := make([]SugarReceipt, 0, groups.Len())
	for _, g := range groups.List() {
		r := SugarReceipt{Broker: g.Broker}
		if dir != nil {
			r.Contact = dir.Lookup(g.Broker)
		}
		for _, e := range g.Entries {
			r.Lines = append(r.Lines, SugarLine{
				BLNumber:    e.BLNumber,
				Shipper:     e.Shipper,
				CNPJ:        e.CNPJ,
				Declaration: e.Declaration,
				Quantity:    e.Quantity,
			})
		}
		out = append(out, r)
	}
	return out
}
