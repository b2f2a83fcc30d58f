package pdfextract

import (
	"github.com/shopspring/decimal"
)

var kilosPerTon = decimal.NewFromInt(1000)

// Declaration holds the fields read from a DU-E export declaration.
type Declaration struct {
	Number      string          `yaml:"number,omitempty"`
	CNPJ        string          `yaml:"cnpj,omitempty"`
	CompanyName string          `yaml:"company_name,omitempty"`
	NetWeightKG decimal.Decimal `yaml:"net_weight_kg"`

	// NetWeightMT is NetWeightKG / 1000.
	NetWeightMT decimal.Decimal `yaml:"net_weight_mt"`
}

// Empty reports whether nothing was extracted.
func (d Declaration) Empty() bool {
	return d.Number == "" && d.CNPJ == "" && d.CompanyName == "" && d.NetWeightKG.IsZero()
}

// ExtractDeclaration applies the default DU-E rules to text.
func ExtractDeclaration(text string) (Declaration, error) {
	return ExtractDeclarationWith(text, DefaultDeclarationRules())
}

// ExtractDeclarationWith applies rules to text. Fields whose rule is nil or
// does not match are left empty. ErrNoData is returned only when every field
// is empty.
func ExtractDeclarationWith(text string, rules DeclarationRules) (Declaration, error) {
	var d Declaration
	d.Number = apply(rules.Number, text)
	d.CNPJ = apply(rules.CNPJ, text)
	d.CompanyName = apply(rules.CompanyName, text)

	d.NetWeightKG = parseKilograms(apply(rules.NetWeight, text))
	d.NetWeightMT = d.NetWeightKG.Div(kilosPerTon)

	if d.Empty() {
		return d, ErrNoData
	}
	return d, nil
}

func apply(rule FieldRule, text string) string {
	if rule == nil {
		return ""
	}
	v, _ := rule.Extract(text)
	return v
}
