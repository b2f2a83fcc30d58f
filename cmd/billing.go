// =============================================================================
// Freight Docs - Billing Command
// =============================================================================
//
// This file defines the 'billing' command, which turns freight sheets into
// billing reports ("Faturamento").
//
// COMMAND USAGE:
//   freightdocs billing [file...] [flags]
//
// INPUT:
//   Each argument is a workbook (.xlsx, .xlsm, .xls) or a tab-separated text
//   file. With no argument, or with "-", the sheet is read from stdin as
//   pasted text.
//
// FLAGS:
//   --sheet      : Worksheet to read from workbooks (default: first sheet)
//   --clipboard  : Print the clipboard payload to stdout ("text" or "html")
//   --dry-run    : Build the report without writing any file
//
// PROCESSING:
//   Files are processed concurrently, one pipeline run per file. A failure
//   in one file does not affect the others.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/format"
	"github.com/ginjaninja78/freight-docs/internal/pipeline"
	"github.com/ginjaninja78/freight-docs/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// sheetName selects a worksheet in workbook inputs.
var sheetName string

// clipboardFormat prints the clipboard payload: "", "text" or "html".
var clipboardFormat string

// dryRun builds outputs in memory only.
var dryRun bool

// =============================================================================
// BILLING COMMAND DEFINITION
// =============================================================================

var billingCmd = &cobra.Command{
	Use:   "billing [file...]",
	Short: "Build billing reports from freight sheets",
	Long: `The billing command groups freight lines by shipper and customs broker,
applies the billing rule table and writes a workbook with a "Faturamento"
sheet (plus "Não Faturar" when some shipper must not be billed).

With --clipboard the same rows are printed as paste-ready text or HTML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBilling(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(billingCmd)

	billingCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to read from workbook inputs")
	billingCmd.Flags().StringVar(&clipboardFormat, "clipboard", "", `Print the clipboard payload ("text" or "html")`)
	billingCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the report without writing output files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runBilling(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string) error {
	startTime := time.Now()

	switch clipboardFormat {
	case "", "text", "html":
	default:
		return fmt.Errorf("unknown clipboard format %q", clipboardFormat)
	}

	// =========================================================================
	// STEP 1: BUILD THE PIPELINE FROM CONFIGURATION
	// =========================================================================

	pricing, err := appConfig.Pricing()
	if err != nil {
		return err
	}
	rules, err := appConfig.BillingTable()
	if err != nil {
		return err
	}
	dir, err := appConfig.Directory()
	if err != nil {
		return err
	}

	billing := &pipeline.Billing{
		Pricing:    pricing,
		Rules:      rules,
		Directory:  dir,
		Validation: appConfig.Validation(),
		Logger:     logger,
	}
	if !dryRun {
		billing.Files = newFileManager()
	}

	// =========================================================================
	// STEP 2: COLLECT SOURCES
	// =========================================================================

	sources, err := collectSources(stdin, args)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: RUN EACH SOURCE CONCURRENTLY
	// =========================================================================

	var wg sync.WaitGroup
	results := make([]pipeline.Result, len(sources))
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src pipeline.Source) {
			defer wg.Done()
			results[i] = billing.Run(ctx, src)
		}(i, src)
	}
	wg.Wait()

	// =========================================================================
	// STEP 4: REPORT RESULTS
	// =========================================================================

	var failed int
	for _, result := range results {
		name := filepath.Base(result.Source)
		if !result.Success {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", name, result.Error)
			if len(result.Missing) > 0 {
				fmt.Fprintf(os.Stderr, "    missing columns: %s\n", strings.Join(result.Missing, ", "))
			}
			continue
		}

		switch clipboardFormat {
		case "text":
			fmt.Fprintln(stdout, result.Clipboard.Text)
		case "html":
			fmt.Fprintln(stdout, result.Clipboard.HTML)
		default:
			fmt.Fprintf(stdout, "  ✓ %s -> %s (%d BL, %s)\n", name, outputLabel(result.OutputFile),
				result.Totals.BLCount, format.BRL(result.Totals.Value))
		}
	}

	logger.Infof("Processed %d source(s) in %s", len(sources), time.Since(startTime))
	if failed > 0 {
		return fmt.Errorf("%d of %d source(s) failed", failed, len(sources))
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// collectSources maps arguments to pipeline sources. No argument or "-"
// reads pasted text from stdin; stdin can be named only once.
func collectSources(stdin io.Reader, args []string) ([]pipeline.Source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]pipeline.Source, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		if arg == "-" {
			if stdinUsed {
				return nil, fmt.Errorf(`stdin ("-") given more than once`)
			}
			stdinUsed = true

			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			sources = append(sources, pipeline.PastedSource(data))
			continue
		}
		if !utils.FileExists(arg) {
			return nil, fmt.Errorf("input file not found: %s", arg)
		}
		sources = append(sources, pipeline.Source{Path: arg, Sheet: sheetName})
	}
	return sources, nil
}

// newFileManager places outputs according to the configuration.
func newFileManager() *utils.FileManager {
	return utils.NewFileManager(appConfig.OutputDir, appConfig.OutputNameFormat)
}

func outputLabel(path string) string {
	if path == "" {
		return "(not written)"
	}
	return path
}
