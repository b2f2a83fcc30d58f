// =============================================================================
// Freight Docs - Processing Pipeline
// =============================================================================
//
// This module orchestrates a run from sheet input to finished outputs.
//
// BILLING PIPELINE:
//   1. Read the source (pasted text, text file or workbook)
//   2. Check the required columns and normalize every row
//   3. Validate rows (warnings only, unless Validation makes them fatal)
//   4. Group entries by (shipper, customs broker)
//   5. Apply billing rules and build output rows
//   6. Build the clipboard payload
//   7. Write the workbook, error log and summary (when a FileManager is set)
//
// ERRORS:
//   A run never panics. Failures are reported on Result.Error; a header that
//   lacks required columns also fills Result.Missing with the exact names.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/billing"
	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/format"
	"github.com/ginjaninja78/freight-docs/internal/grouping"
	"github.com/ginjaninja78/freight-docs/internal/logging"
	"github.com/ginjaninja78/freight-docs/internal/report"
	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/ginjaninja78/freight-docs/internal/validation"
	"github.com/ginjaninja78/freight-docs/pkg/utils"
)

// BillingColumns are the columns a billing run cannot do without.
var BillingColumns = []string{types.ColShipper, types.ColBLNumber, types.ColBroker}

// Output file kinds, used in generated file names.
const (
	KindBilling = "faturamento"
	KindErrors  = "faturamento_erros"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a billing run.
type Result struct {
	// Source names the input that was processed.
	Source string

	// OutputFile is the path to the generated workbook.
	// This is empty if no FileManager was configured or the run failed.
	OutputFile string

	// ErrorLogFile is the path to the validation log, when one was written.
	ErrorLogFile string

	// SummaryFile is the path to the run summary, when one was written.
	SummaryFile string

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Missing lists required columns absent from the header.
	Missing []string

	// Rows holds every output row; Billable and Skipped partition it.
	Rows     []report.OutputRow
	Billable []report.OutputRow
	Skipped  []report.OutputRow

	// Totals sums the billable rows.
	Totals report.Totals

	// Clipboard is the paste-ready rendering of the rows.
	Clipboard report.Payload

	// Warnings are the row-level validation findings.
	Warnings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about a run.
type ProcessingStats struct {
	// EntriesProcessed is the number of data lines ingested.
	EntriesProcessed int

	// GroupsCreated is the number of (shipper, broker) groups.
	GroupsCreated int

	// ValidationWarnings is the number of validation findings.
	ValidationWarnings int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// BILLING PIPELINE
// =============================================================================

// Billing runs billing reports.
type Billing struct {
	Pricing   report.Pricing
	Rules     *billing.Table
	Directory *directory.Directory

	// Files places generated files. Nil means nothing is written to disk.
	Files *utils.FileManager

	// Validation adds checks and can make findings stop the run before any
	// output is built.
	Validation validation.ValidationOptions

	Logger logging.Logger
}

// Run executes the billing pipeline for src.
//
// RETURNS:
//   - A Result describing the outcome. Failures are captured on
//     Result.Error.
func (b *Billing) Run(ctx context.Context, src Source) (result Result) {
	startTime := time.Now()
	log := b.Logger
	if log == nil {
		log = logging.Nop()
	}

	result = Result{Source: src.Name()}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1-3: READ, NORMALIZE, VALIDATE
	// =========================================================================

	log.Infof("Processing billing input: %s", src.Name())

	batch, err := Load(ctx, src, b.Validation, BillingColumns...)
	if err != nil {
		result.Missing = missingColumns(err)
		result.Error = fmt.Errorf("failed to load input: %w", err)
		log.Errorf("%v", result.Error)
		return result
	}

	result.Warnings = batch.Warnings
	result.Stats.EntriesProcessed = len(batch.Entries)
	result.Stats.ValidationWarnings = len(batch.Warnings)
	for _, w := range batch.Warnings {
		log.Warnf("%s", w.Error())
	}
	log.Debugf("Ingested %d entries (header detected: %t)", len(batch.Entries), batch.Table.HasHeader)

	if !batch.Valid {
		result.Error = fmt.Errorf("input rejected by strict validation: %d finding(s)", len(batch.Warnings))
		log.Errorf("%v", result.Error)
		return result
	}

	// =========================================================================
	// STEP 4: GROUP ENTRIES
	// =========================================================================

	groups := grouping.Aggregate(batch.Entries, grouping.ByShipperBroker, grouping.Options{})
	result.Stats.GroupsCreated = groups.Len()
	log.Debugf("Created %d shipper/broker groups", groups.Len())

	// =========================================================================
	// STEP 5: APPLY RULES AND BUILD ROWS
	// =========================================================================

	result.Rows = report.BuildRows(groups.List(), b.Pricing, b.Rules, b.Directory)
	result.Billable, result.Skipped = report.Partition(result.Rows)
	result.Totals = report.Sum(result.Billable)

	// =========================================================================
	// STEP 6: CLIPBOARD PAYLOAD
	// =========================================================================

	result.Clipboard, err = report.Clipboard(result.Rows)
	if err != nil {
		result.Error = fmt.Errorf("failed to render clipboard: %w", err)
		log.Errorf("%v", result.Error)
		return result
	}

	// =========================================================================
	// STEP 7: WRITE OUTPUTS
	// =========================================================================

	if b.Files != nil {
		if err := b.writeOutputs(&result, startTime); err != nil {
			result.Error = err
			log.Errorf("%v", err)
			return result
		}
		log.Infof("Wrote %s", result.OutputFile)
	}

	result.Success = true
	log.Infof("Billed %d group(s), %d BL(s), total %s", len(result.Billable), result.Totals.BLCount, format.BRL(result.Totals.Value))
	if len(result.Skipped) > 0 {
		log.Warnf("%s %s", report.DoNotBillLabel, strings.Join(report.SkippedShippers(result.Rows), ", "))
	}
	return result
}

// writeOutputs writes the workbook, the validation log (when there are
// findings) and the run summary.
func (b *Billing) writeOutputs(result *Result, startTime time.Time) error {
	if err := b.Files.EnsureOutputDir(); err != nil {
		return err
	}

	outputPath := b.Files.NewOutputPath(KindBilling, ".xlsx")
	if err := report.WriteWorkbook(outputPath, result.Rows); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	result.OutputFile = outputPath

	if len(result.Warnings) > 0 {
		logPath := b.Files.NewOutputPath(KindErrors, ".log")
		if err := validation.WriteErrorLog(result.Warnings, result.Source, logPath); err != nil {
			return err
		}
		result.ErrorLogFile = logPath
	}

	summary := utils.RunSummary{
		Command:    KindBilling,
		Source:     result.Source,
		OutputFile: outputPath,
		StartTime:  startTime,
		EndTime:    time.Now(),
		Counters: []utils.Counter{
			{Label: "Entries", Value: strconv.Itoa(result.Stats.EntriesProcessed)},
			{Label: "Groups", Value: strconv.Itoa(result.Stats.GroupsCreated)},
			{Label: "Billable rows", Value: strconv.Itoa(len(result.Billable))},
			{Label: "Skipped rows", Value: strconv.Itoa(len(result.Skipped))},
			{Label: "BLs billed", Value: strconv.Itoa(result.Totals.BLCount)},
			{Label: "Unit price", Value: format.CurrencyPrefix + format.Currency(b.Pricing.UnitPrice)},
			{Label: "Total", Value: format.CurrencyPrefix + format.Currency(result.Totals.Value)},
			{Label: "Warnings", Value: strconv.Itoa(len(result.Warnings))},
		},
	}
	if skipped := report.SkippedShippers(result.Rows); len(skipped) > 0 {
		summary.Notes = append(summary.Notes, report.DoNotBillLabel+" "+strings.Join(skipped, ", "))
	}

	summaryPath, err := b.Files.WriteSummaryLog(summary)
	if err != nil {
		return err
	}
	result.SummaryFile = summaryPath
	return nil
}
