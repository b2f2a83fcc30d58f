// =============================================================================
// Freight Docs - Receipts Command
// =============================================================================
//
// COMMAND USAGE:
//   freightdocs receipts grain [file]   # one receipt per shipper, summed
//   freightdocs receipts sugar [file]   # one receipt per customs broker
//
// The input is read like the billing command's (workbook, text file or
// stdin). The rendered receipts are printed and written to the output
// directory unless --dry-run is set.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/pipeline"
	"github.com/ginjaninja78/freight-docs/internal/receipts"
	"github.com/spf13/cobra"
)

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "Generate grain or sugar cargo receipts",
}

func init() {
	rootCmd.AddCommand(receiptsCmd)
	receiptsCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Worksheet to read from workbook inputs")
	receiptsCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print receipts without writing output files")

	receiptsCmd.AddCommand(
		newReceiptsCmd(receipts.KindGrain, "Grain receipts grouped by shipper with summed quantities"),
		newReceiptsCmd(receipts.KindSugar, "Sugar receipts grouped by customs broker, one line per BL"),
	)
}

func newReceiptsCmd(kind receipts.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := appConfig.Directory()
			if err != nil {
				return err
			}

			sources, err := collectSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			run := &pipeline.Receipts{Directory: dir, Logger: logger}
			if !dryRun {
				run.Files = newFileManager()
			}

			result := run.Run(cmd.Context(), sources[0], kind)
			if !result.Success {
				if len(result.Missing) > 0 {
					return fmt.Errorf("%w (missing columns: %s)", result.Error, strings.Join(result.Missing, ", "))
				}
				return result.Error
			}

			fmt.Fprint(cmd.OutOrStdout(), result.Text)
			if result.OutputFile != "" {
				logger.Infof("Receipts written to %s", result.OutputFile)
			}
			return nil
		},
	}
}
