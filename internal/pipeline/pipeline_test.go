package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/billing"
	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/receipts"
	"github.com/ginjaninja78/freight-docs/internal/report"
	"github.com/ginjaninja78/freight-docs/internal/tabular"
	"github.com/ginjaninja78/freight-docs/internal/validation"
	"github.com/ginjaninja78/freight-docs/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheet = "Name of shipper\tQtd per BL\tBL nbr\tQtd per DU-E\tCNPJ/VAT\tDU-E\tCustoms broker\n" +
	"SoyCo\t100,5\tBL1\t100,5\t11.111.111/0001-11\t25BR0000000001\tBroker X\n" +
	"SOYCO\t50,25\tBL2\t50,25\t11.111.111/0001-11\t25BR0000000001\tBROKER X\n" +
	"Engelhart CTP\t10\tBL3\t10\t22.222.222/0001-22\t25BR0000000002\tBroker Y\n" +
	"GrainCo\tabc\tBL4\t0\t33.333.333/0001-33\t25BR0000000003\tBroker Y\n"

func testBilling(files *utils.FileManager) *Billing {
	return &Billing{
		Pricing:   report.DefaultPricing(),
		Rules:     billing.NewTable([]billing.Instruction{{Shipper: "ENGELHART", SkipBilling: true}}, ""),
		Directory: directory.New([]directory.Contact{{Broker: "BROKER Y", Emails: []string{"ops@brokery.com"}}}),
		Files:     files,
	}
}

func TestBillingRun(t *testing.T) {
	result := testBilling(nil).Run(context.Background(), Source{Text: sheet})
	if !result.Success {
		t.Fatalf("run failed: %v", result.Error)
	}

	if len(result.Rows) != 3 || len(result.Billable) != 2 || len(result.Skipped) != 1 {
		t.Fatalf("rows=%d billable=%d skipped=%d", len(result.Rows), len(result.Billable), len(result.Skipped))
	}
	if got := result.Billable[0]; got.BLNumbers != "BL1/BL2" || got.BLCount != 2 {
		t.Errorf("first row = %+v", got)
	}
	if result.Totals.BLCount != 3 || !result.Totals.Value.Equal(report.DefaultUnitPrice.Mul(decimal.NewFromInt(3))) {
		t.Errorf("totals = %+v", result.Totals)
	}
	if result.Billable[1].Contact != "ops@brokery.com" {
		t.Errorf("directory contact = %q", result.Billable[1].Contact)
	}
	if !strings.Contains(result.Clipboard.Text, report.DoNotBillLabel+" ENGELHART CTP") {
		t.Errorf("clipboard text missing warning:\n%s", result.Clipboard.Text)
	}
	if len(result.Warnings) != 1 || result.Stats.ValidationWarnings != 1 {
		t.Errorf("warnings = %v", result.Warnings)
	}
	if result.Stats.EntriesProcessed != 4 || result.Stats.GroupsCreated != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.OutputFile != "" {
		t.Errorf("nothing should be written without a FileManager, got %q", result.OutputFile)
	}
}

func TestBillingRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sheet.txt")
	if err := os.WriteFile(input, []byte(sheet), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	result := testBilling(utils.NewFileManager(out, "{kind}_{uuid}.xlsx")).Run(context.Background(), Source{Path: input})
	if !result.Success {
		t.Fatalf("run failed: %v", result.Error)
	}

	for _, path := range []string{result.OutputFile, result.ErrorLogFile, result.SummaryFile} {
		if path == "" || !utils.FileExists(path) {
			t.Errorf("expected output file, got %q", path)
		}
	}

	summary, err := os.ReadFile(result.SummaryFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"R$ 350.00", "R$ 1,050.00"} {
		if !strings.Contains(string(summary), want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	f, err := excelize.OpenFile(result.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[1] != report.SheetSkipped {
		t.Errorf("sheets = %v", sheets)
	}
}

func TestBillingRunStrictValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    validation.ValidationOptions
		text    string
		success bool
	}{
		{"warnings allowed by default", validation.ValidationOptions{}, sheet, true},
		{"warnings rejected", validation.ValidationOptions{TreatWarningsAsErrors: true}, sheet, false},
		{
			"missing CNPJ rejected",
			validation.ValidationOptions{CustomChecks: []validation.CheckFunc{validation.RequireCNPJ}},
			"Name of shipper\tQtd per BL\tBL nbr\tQtd per DU-E\tCNPJ/VAT\tDU-E\tCustoms broker\n" +
				"SOYCO\t10\tBL1\t10\t\t25BR0000000001\tBroker X\n",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBilling(utils.NewFileManager(t.TempDir(), "{kind}_{uuid}.xlsx"))
			b.Validation = tt.opts
			result := b.Run(context.Background(), Source{Text: tt.text})
			if result.Success != tt.success {
				t.Fatalf("success = %t, error = %v", result.Success, result.Error)
			}
			if !tt.success && (result.OutputFile != "" || len(result.Rows) != 0) {
				t.Errorf("rejected input still produced output: %q, %d rows", result.OutputFile, len(result.Rows))
			}
			if !tt.success && len(result.Warnings) == 0 {
				t.Error("rejection should keep the findings")
			}
		})
	}
}

func TestBillingRunMissingColumns(t *testing.T) {
	text := "Name of shipper\tQtd per BL\tBL nbr\tCNPJ/VAT\nSOYCO\t1\tBL1\tX\n"
	result := testBilling(nil).Run(context.Background(), Source{Text: text})
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Missing) != 1 || result.Missing[0] != "Customs broker" {
		t.Errorf("missing = %v", result.Missing)
	}
	var mc *tabular.MissingColumnsError
	if !errors.As(result.Error, &mc) {
		t.Errorf("error = %v", result.Error)
	}
}

func TestBillingRunInsufficientData(t *testing.T) {
	result := testBilling(nil).Run(context.Background(), Source{Text: "\n\n"})
	var ide *tabular.InsufficientDataError
	if result.Success || !errors.As(result.Error, &ide) {
		t.Errorf("error = %v", result.Error)
	}
}

func TestBillingRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := testBilling(nil).Run(ctx, Source{Text: sheet})
	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("error = %v", result.Error)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), Source{Path: path}, validation.ValidationOptions{}); err == nil {
		t.Error("expected error")
	}
}

func TestReceiptsRun(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &Receipts{
		Directory: directory.New([]directory.Contact{{Broker: "BROKER X", Emails: []string{"x@broker.com"}}}),
		Files:     utils.NewFileManager(t.TempDir(), "{kind}_{uuid}.xlsx"),
		Now:       func() time.Time { return issued },
	}

	grain := r.Run(context.Background(), Source{Text: sheet}, receipts.KindGrain)
	if !grain.Success {
		t.Fatalf("grain failed: %v", grain.Error)
	}
	if len(grain.Grain) != 3 || grain.Grain[0].DisplayTotal() != "150.750 MT" {
		t.Errorf("grain = %+v", grain.Grain)
	}
	if !strings.Contains(grain.Text, "JANUARY 1ST, 2025") || !strings.HasSuffix(grain.OutputFile, ".txt") {
		t.Errorf("grain output %q:\n%s", grain.OutputFile, grain.Text)
	}

	sugar := r.Run(context.Background(), Source{Text: sheet}, receipts.KindSugar)
	if !sugar.Success {
		t.Fatalf("sugar failed: %v", sugar.Error)
	}
	if len(sugar.Sugar) != 2 || len(sugar.Sugar[0].Lines) != 2 || sugar.Sugar[0].Contact != "x@broker.com" {
		t.Errorf("sugar = %+v", sugar.Sugar)
	}

	if bad := r.Run(context.Background(), Source{Text: sheet}, receipts.Kind("coffee")); bad.Error == nil {
		t.Error("expected unknown kind error")
	}
}
