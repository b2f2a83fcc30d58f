// Package grouping folds normalized freight entries into groups keyed by a
// composite of their normalized fields.
//
// Group order and BL order are the order of first occurrence in the input,
// so for a fixed input the output is fully reproducible.
package grouping

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/shopspring/decimal"
)

// KeyFunc extracts the group key of an entry.
type KeyFunc func(types.Entry) string

// Options tunes an aggregation pass.
type Options struct {
	// Sum accumulates quantities into TotalQuantity. Each distinct BL number
	// contributes once; entries with no BL number always contribute.
	Sum bool
}

// Groups is the ordered result of an aggregation pass.
type Groups struct {
	order []string
	byKey map[string]*types.AggregatedGroup
}

// Keys returns the group keys in order of first occurrence.
func (g *Groups) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Get returns the group for key.
func (g *Groups) Get(key string) (*types.AggregatedGroup, bool) {
	grp, ok := g.byKey[key]
	return grp, ok
}

// List returns the groups in order of first occurrence.
func (g *Groups) List() []*types.AggregatedGroup {
	out := make([]*types.AggregatedGroup, len(g.order))
	for i, k := range g.order {
		out[i] = g.byKey[k]
	}
	return out
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// Aggregate groups entries by key in a single pass.
func Aggregate(entries []types.Entry, key KeyFunc, opts Options) *Groups {
	groups := &Groups{byKey: make(map[string]*types.AggregatedGroup)}
	seenBL := make(map[string]map[string]bool)

	for _, e := range entries {
		k := key(e)
		grp, exists := groups.byKey[k]
		if !exists {
			grp = &types.AggregatedGroup{
				GroupKey:      k,
				Shipper:       e.Shipper,
				Broker:        e.Broker,
				CNPJ:          e.CNPJ,
				TotalQuantity: decimal.Zero,
			}
			groups.byKey[k] = grp
			groups.order = append(groups.order, k)
			seenBL[k] = make(map[string]bool)
		}

		// First-seen values win, but fill a blank CNPJ from later members.
		if grp.CNPJ == "" {
			grp.CNPJ = e.CNPJ
		}

		grp.Entries = append(grp.Entries, e)

		firstOfBL := false
		if e.BLNumber != "" && !seenBL[k][e.BLNumber] {
			seenBL[k][e.BLNumber] = true
			grp.BLNumbers = append(grp.BLNumbers, e.BLNumber)
			firstOfBL = true
		}

		if opts.Sum && (firstOfBL || e.BLNumber == "") {
			grp.TotalQuantity = grp.TotalQuantity.Add(e.Quantity)
		}
	}

	return groups
}

// =============================================================================
// KEY FUNCTIONS
// =============================================================================

// ByShipperBroker keys billing groups: one group per (shipper, broker) pair.
func ByShipperBroker(e types.Entry) string {
	return joinKey(e.Shipper, e.Broker)
}

// ByShipper keys grain receipts.
func ByShipper(e types.Entry) string {
	return joinKey(e.Shipper)
}

// ByBroker keys sugar receipts.
func ByBroker(e types.Entry) string {
	return joinKey(e.Broker)
}

// joinKey builds a composite key from trim+uppercased parts. Each part is
// length-prefixed, so no choice of part contents can make two distinct
// tuples produce the same key.
func joinKey(parts ...string) string {
	var b strings.Builder
	for i, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}
