package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/shopspring/decimal"
)

func TestValidateAll(t *testing.T) {
	entries := []types.Entry{
		{RowNumber: 2, Shipper: "SOYCO", BLNumber: "BL1", Quantity: decimal.NewFromInt(10)},
		{RowNumber: 3, Shipper: "", BLNumber: "BL2"},
		{RowNumber: 4, Shipper: "GRAINCO", BLNumber: "", QuantityMalformed: true},
		{RowNumber: 5, Shipper: "GRAINCO", BLNumber: "BL1"},
	}
	raws := []types.RawRow{
		nil,
		nil,
		{types.ColQtyPerBL: "12 tons"},
		nil,
	}

	result := NewValidatorWithOptions(ValidationOptions{}).ValidateAll(entries, raws)
	if !result.IsValid {
		t.Error("warnings alone must not invalidate the batch")
	}
	if result.WarningCount != 4 || result.ErrorCount != 0 {
		t.Fatalf("counts = %d warnings / %d errors, want 4/0: %s", result.WarningCount, result.ErrorCount, FormatErrors(result.Errors))
	}

	want := []struct {
		row   int
		field string
		value string
	}{
		{3, types.ColShipper, ""},
		{4, types.ColBLNumber, ""},
		{4, types.ColQtyPerBL, "12 tons"},
		{5, types.ColBLNumber, "BL1"},
	}
	for i, w := range want {
		got := result.Errors[i]
		if got.RowNumber != w.row || got.Field != w.field || got.Value != w.value {
			t.Errorf("finding %d = row %d %q %q, want row %d %q %q", i, got.RowNumber, got.Field, got.Value, w.row, w.field, w.value)
		}
	}
}

func TestTreatWarningsAsErrors(t *testing.T) {
	v := NewValidatorWithOptions(ValidationOptions{TreatWarningsAsErrors: true})
	result := v.ValidateAll([]types.Entry{{RowNumber: 1, Shipper: "SOYCO"}}, nil)
	if result.IsValid {
		t.Error("expected invalid result")
	}
}

func TestCustomChecks(t *testing.T) {
	v := NewValidatorWithOptions(ValidationOptions{CustomChecks: []CheckFunc{RequireCNPJ}})

	result := v.ValidateAll([]types.Entry{
		{RowNumber: 7, Shipper: "SOYCO", BLNumber: "BL1"},
		{RowNumber: 8, Shipper: "SOYCO", BLNumber: "BL2", CNPJ: "11.111.111/0001-11"},
	}, nil)
	if result.IsValid || result.ErrorCount != 1 {
		t.Fatalf("custom error not counted: %+v", result)
	}
	if result.Errors[0].RowNumber != 7 {
		t.Errorf("row number not filled: %d", result.Errors[0].RowNumber)
	}
}

func TestFormatAndWriteErrorLog(t *testing.T) {
	if FormatErrors(nil) != "No validation errors." {
		t.Error("unexpected empty format")
	}

	errs := NewValidatorWithOptions(ValidationOptions{}).ValidateAll([]types.Entry{{RowNumber: 9, BLNumber: "BL9"}}, nil).Errors
	text := FormatErrors(errs)
	if !strings.Contains(text, "[WARNING] Row 9, Field 'Name of shipper'") {
		t.Errorf("unexpected format:\n%s", text)
	}

	path := filepath.Join(t.TempDir(), "errors.log")
	if err := WriteErrorLog(errs, "sheet.xlsx", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Source: sheet.xlsx") || !strings.Contains(string(data), text) {
		t.Errorf("unexpected log:\n%s", data)
	}
}
