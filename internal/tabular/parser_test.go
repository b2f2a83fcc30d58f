package tabular

import (
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/freight-docs/internal/types"
)

func TestParseTextWithHeader(t *testing.T) {
	text := strings.Join([]string{
		"BL nbr\tCustoms broker\tName of shipper\tCNPJ/VAT\tQtd per BL",
		"BL1\tBrokerX\tSoyco\t12.345.678/0001-90\t1.234,5",
		"",
		"BL2\t\tSoyco",
	}, "\r\n")

	table, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if !table.HasHeader {
		t.Fatal("expected header to be detected")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	r := table.Rows[0]
	if r[types.ColBLNumber] != "BL1" || r[types.ColBroker] != "BrokerX" || r[types.ColShipper] != "Soyco" {
		t.Errorf("row bound to wrong columns: %v", r)
	}
	if r[types.ColDeclaration] != "" {
		t.Errorf("unbound column should read empty, got %q", r[types.ColDeclaration])
	}

	// Short row: out-of-range cells read as "".
	if got := table.Rows[1][types.ColCNPJ]; got != "" {
		t.Errorf("out-of-range CNPJ = %q, want empty", got)
	}
	if table.LineNumbers[1] != 4 {
		t.Errorf("line number = %d, want 4", table.LineNumbers[1])
	}
}

func TestHeaderSynonyms(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"three canonical", []string{"BL nbr", "DU-E", "CNPJ/VAT"}, true},
		{"synonyms", []string{"DUE", "Qtd per DUE", "BL nbr"}, true},
		{"padded", []string{"  BL nbr ", " DUE", "Customs broker  "}, true},
		{"two only", []string{"BL nbr", "DU-E", "something"}, false},
		{"case sensitive", []string{"bl nbr", "du-e", "cnpj/vat"}, false},
		{"data line", []string{"SOYCO", "100", "BL1", "50", "123", "24BR1", "BROKER"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeader(tt.cells); got != tt.want {
				t.Errorf("IsHeader(%q) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestParseRowsFallbackKeepsFirstLine(t *testing.T) {
	rows := [][]string{
		{"SOYCO", "100,5", "BL1", "100,5", "11.111.111/0001-11", "24BR0000000001", "BROKERX"},
		{"GRAINCO", "50", "BL2"},
	}

	table, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if table.HasHeader {
		t.Fatal("data line must not be taken as header")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (first line is data)", len(table.Rows))
	}
	if got := table.Rows[0][types.ColBroker]; got != "BROKERX" {
		t.Errorf("positional broker = %q", got)
	}
	if got := table.Rows[1][types.ColBroker]; got != "" {
		t.Errorf("missing broker = %q, want empty", got)
	}
	if err := table.Require(types.ColShipper, types.ColBroker); err != nil {
		t.Errorf("fallback table should satisfy Require: %v", err)
	}
}

func TestInsufficientData(t *testing.T) {
	tests := []struct {
		in         string
		headerOnly bool
	}{
		{"", false},
		{"\n\n  \t \n", false},
		{"Name of shipper\tBL nbr\tCustoms broker", true},
	}

	for _, tt := range tests {
		_, err := ParseText(tt.in)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Errorf("ParseText(%q) error = %v, want InsufficientDataError", tt.in, err)
			continue
		}
		if insufficient.HeaderOnly != tt.headerOnly {
			t.Errorf("ParseText(%q) HeaderOnly = %t, want %t", tt.in, insufficient.HeaderOnly, tt.headerOnly)
		}
	}
}

func TestSuggestColumnsIgnoresCase(t *testing.T) {
	tests := []struct {
		missing    string
		candidates []string
		want       string
	}{
		{types.ColBroker, []string{"Customs Broker"}, "Customs Broker"},
		{types.ColBroker, []string{"CUSTOMS BROKER", "Remarks"}, "CUSTOMS BROKER"},
		{types.ColShipper, []string{"name of shipper"}, "name of shipper"},
	}

	for _, tt := range tests {
		got := suggestColumns([]string{tt.missing}, tt.candidates)
		if got[tt.missing] != tt.want {
			t.Errorf("suggestColumns(%q, %v) = %q, want %q", tt.missing, tt.candidates, got[tt.missing], tt.want)
		}
	}

	if got := suggestColumns([]string{types.ColBroker}, nil); len(got) != 0 {
		t.Errorf("no candidates should give no suggestions, got %v", got)
	}
}

func TestRequireReportsMissingColumns(t *testing.T) {
	text := "Name of shipper\tBL nbr\tCNPJ/VAT\tCustoms Broker\nSOYCO\tBL1\t1\tX"

	table, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}

	err = table.Require(types.ColShipper, types.ColBLNumber, types.ColBroker)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("Require error = %v, want MissingColumnsError", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != types.ColBroker {
		t.Errorf("Missing = %v, want [%s]", missing.Missing, types.ColBroker)
	}
	if got := missing.Suggestions[types.ColBroker]; got != "Customs Broker" {
		t.Errorf("suggestion = %q, want %q", got, "Customs Broker")
	}
}

func TestNormalize(t *testing.T) {
	row := types.RawRow{
		types.ColShipper:   "  Soyco Ltda ",
		types.ColBroker:    "brokerx",
		types.ColBLNumber:  " BL1 ",
		types.ColQtyPerBL:  "1.234,567",
		types.ColCNPJ:      " 12.345.678/0001-90",
		types.ColQtyPerDUE: "abc",
	}

	e := Normalize(row, 7)
	if e.Shipper != "SOYCO LTDA" || e.Broker != "BROKERX" || e.BLNumber != "BL1" {
		t.Errorf("unexpected normalization: %+v", e)
	}
	if e.Quantity.String() != "1234.567" {
		t.Errorf("Quantity = %s, want 1234.567", e.Quantity)
	}
	if !e.DeclarationQuantity.IsZero() {
		t.Errorf("malformed DU-E quantity should degrade to zero, got %s", e.DeclarationQuantity)
	}
	if e.RowNumber != 7 || e.QuantityMalformed {
		t.Errorf("RowNumber=%d QuantityMalformed=%v", e.RowNumber, e.QuantityMalformed)
	}

	bad := Normalize(types.RawRow{types.ColQtyPerBL: "n/a"}, 1)
	if !bad.QuantityMalformed || !bad.Quantity.IsZero() {
		t.Errorf("expected malformed zero quantity, got %+v", bad)
	}
	zero := Normalize(types.RawRow{types.ColQtyPerBL: "0,000"}, 1)
	if zero.QuantityMalformed {
		t.Error("literal zero is not malformed")
	}
}

func TestDecodeText(t *testing.T) {
	// "Não" in Windows-1252.
	raw := []byte{'N', 0xE3, 'o'}
	if got := DecodeText(raw); got != "Não" {
		t.Errorf("DecodeText = %q, want %q", got, "Não")
	}
	if got := DecodeText([]byte("\ufeffBL nbr")); got != "BL nbr" {
		t.Errorf("BOM not stripped: %q", got)
	}
}
