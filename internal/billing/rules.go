// =============================================================================
// Freight Docs - Billing Rule Table
// =============================================================================
//
// Per-shipper billing overrides: alternate CNPJ and company name, contact
// emails, "do not bill", "single BL fee" and highlight flags.
//
// MATCHING:
//   1. The shipper name is trimmed and uppercased.
//   2. Rules are scanned in declaration order. A rule matches when the name
//      contains the rule's canonical shipper string or the other way round,
//      or when any alias satisfies either containment test.
//   3. The FIRST matching rule wins. Table order is the tie-break, so the
//      table is an ordered slice and never a map.
//
// The table is read-only after construction and safe for concurrent reads.
//
// =============================================================================

package billing

import (
	"strings"
)

// DefaultHighlightMarker flags a rule's SpecialNote for visual highlighting.
const DefaultHighlightMarker = "DESTACAR"

// =============================================================================
// RULE STRUCTURE
// =============================================================================

// Instruction is one billing override rule.
type Instruction struct {
	// Shipper is the canonical shipper name.
	Shipper string `yaml:"shipper"`

	// Aliases are alternate spellings that also select this rule.
	Aliases []string `yaml:"aliases,omitempty"`

	// Email is the primary billing contact.
	Email string `yaml:"email,omitempty"`

	// AdditionalEmails are copied on every invoice.
	AdditionalEmails []string `yaml:"additional_emails,omitempty"`

	// Remarks is free text for the person preparing the invoice.
	Remarks string `yaml:"remarks,omitempty"`

	// SkipBilling moves the shipper to the "do not bill" list.
	SkipBilling bool `yaml:"skip_billing,omitempty"`

	// SingleBLFee charges one unit fee regardless of the BL count.
	SingleBLFee bool `yaml:"single_bl_fee,omitempty"`

	// OverrideCNPJ replaces the CNPJ from the sheet.
	OverrideCNPJ string `yaml:"override_cnpj,omitempty"`

	// OverrideCompanyName is the legal name to invoice instead.
	OverrideCompanyName string `yaml:"override_company_name,omitempty"`

	// SpecialNote may carry the highlight marker.
	SpecialNote string `yaml:"special_note,omitempty"`
}

// Decision is the resolved billing outcome for one group.
type Decision struct {
	CNPJ            string
	CompanyName     string
	Contact         string
	Remarks         string
	SkipBilling     bool
	ValorMultiplier int
	CNPJOverridden  bool
	Highlight       bool

	// Matched reports whether any rule applied.
	Matched bool
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an ordered, immutable list of billing rules.
type Table struct {
	rules  []Instruction
	marker string
}

// NewTable copies rules into a table. An empty marker selects
// DefaultHighlightMarker.
func NewTable(rules []Instruction, highlightMarker string) *Table {
	if highlightMarker == "" {
		highlightMarker = DefaultHighlightMarker
	}
	copied := make([]Instruction, len(rules))
	copy(copied, rules)
	return &Table{rules: copied, marker: highlightMarker}
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Resolve returns the first rule matching shipperName.
func (t *Table) Resolve(shipperName string) (Instruction, bool) {
	name := normalize(shipperName)
	if name == "" {
		return Instruction{}, false
	}

	for _, rule := range t.rules {
		if matches(name, rule.Shipper) {
			return rule, true
		}
		for _, alias := range rule.Aliases {
			if matches(name, alias) {
				return rule, true
			}
		}
	}
	return Instruction{}, false
}

// Apply computes the billing decision for a group of blCount BLs shipped by
// shipper under originalCNPJ.
func (t *Table) Apply(shipper, originalCNPJ string, blCount int) Decision {
	d := Decision{
		CNPJ:            originalCNPJ,
		ValorMultiplier: blCount,
	}

	rule, ok := t.Resolve(shipper)
	if !ok {
		return d
	}

	d.Matched = true
	d.Contact = joinContacts(rule.Email, rule.AdditionalEmails)
	d.CompanyName = rule.OverrideCompanyName
	d.Remarks = rule.Remarks
	d.SkipBilling = rule.SkipBilling
	d.Highlight = rule.SpecialNote != "" && strings.Contains(strings.ToUpper(rule.SpecialNote), strings.ToUpper(t.marker))

	if rule.OverrideCNPJ != "" {
		d.CNPJ = rule.OverrideCNPJ
		d.CNPJOverridden = true
	}
	if rule.SingleBLFee {
		d.ValorMultiplier = 1
	}

	return d
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// matches applies the two-way containment test. Empty patterns never match.
func matches(name, pattern string) bool {
	pattern = normalize(pattern)
	if pattern == "" {
		return false
	}
	return strings.Contains(name, pattern) || strings.Contains(pattern, name)
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// joinContacts joins the primary and additional emails with ";".
func joinContacts(primary string, additional []string) string {
	var parts []string
	if p := strings.TrimSpace(primary); p != "" {
		parts = append(parts, p)
	}
	for _, a := range additional {
		if a = strings.TrimSpace(a); a != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, ";")
}
