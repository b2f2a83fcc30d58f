package billing

// DefaultInstructions returns the agency's standing billing rules. Earlier
// entries take precedence; keep the specific names above the generic ones.
func DefaultInstructions() []Instruction {
	return []Instruction{
		{
			Shipper:     "ENGELHART",
			Aliases:     []string{"ENGELHART CTP"},
			Remarks:     "Billed directly by the principal. Do not invoice.",
			SkipBilling: true,
		},
		{
			Shipper:             "LOUIS DREYFUS",
			Aliases:             []string{"LDC"},
			Email:               "faturamento.ldc@example.com",
			AdditionalEmails:    []string{"ops.santos@example.com"},
			OverrideCNPJ:        "47.067.525/0001-08",
			OverrideCompanyName: "LOUIS DREYFUS COMPANY BRASIL S.A.",
		},
		{
			Shipper:          "CARGILL",
			Email:            "cargill.ap@example.com",
			AdditionalEmails: []string{"cargill.freight@example.com"},
		},
		{
			Shipper:     "ALVEAN",
			Email:       "alvean.docs@example.com",
			SingleBLFee: true,
			Remarks:     "One fee per vessel regardless of BL count.",
		},
		{
			Shipper:     "COFCO",
			Aliases:     []string{"COFCO INTERNATIONAL"},
			Email:       "cofco.billing@example.com",
			SpecialNote: "DESTACAR - confirm PO number before sending",
		},
		{
			Shipper:      "BUNGE",
			Email:        "bunge.invoices@example.com",
			OverrideCNPJ: "84.046.101/0001-93",
		},
		{
			Shipper:     "AMAGGI",
			Email:       "amaggi.exportacao@example.com",
			SingleBLFee: true,
		},
		{
			Shipper:     "SUCDEN",
			Remarks:     "Sugar account settled by the charterer.",
			SkipBilling: true,
		},
	}
}

// Default returns a table over DefaultInstructions.
func Default() *Table {
	return NewTable(DefaultInstructions(), DefaultHighlightMarker)
}
