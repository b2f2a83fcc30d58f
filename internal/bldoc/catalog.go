package bldoc

import "strings"

// CargoDescription maps a cargo code to the text printed on the BL.
type CargoDescription struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// Catalog is an ordered list of cargo descriptions.
type Catalog []CargoDescription

// Lookup returns the description for code, compared case-insensitively.
func (c Catalog) Lookup(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}
	for _, d := range c {
		if strings.ToUpper(d.Code) == code {
			return d.Description, true
		}
	}
	return "", false
}

// DefaultCatalog lists the cargoes the agency handles.
func DefaultCatalog() Catalog {
	return Catalog{
		{Code: "SBS", Description: "BRAZILIAN SOYBEANS IN BULK"},
		{Code: "YCM", Description: "BRAZILIAN YELLOW CORN IN BULK"},
		{Code: "SBM", Description: "BRAZILIAN SOYBEAN MEAL IN BULK"},
		{Code: "WHT", Description: "BRAZILIAN WHEAT IN BULK"},
		{Code: "VHP", Description: "BRAZILIAN RAW CANE SUGAR VHP IN BULK"},
		{Code: "IC45", Description: "BRAZILIAN REFINED WHITE SUGAR ICUMSA 45 IN BAGS"},
	}
}
