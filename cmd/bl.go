// =============================================================================
// Freight Docs - BL Command
// =============================================================================
//
// COMMAND USAGE:
//   freightdocs bl <cards.yaml> [--manifest manifest.pdf]
//
// Loads BL cards, fills empty fields from each card's declaration document
// and missing weights from the manifest, then prints the cards ready for
// the BL form.
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/freight-docs/internal/bldoc"
	"github.com/ginjaninja78/freight-docs/internal/pipeline"
	"github.com/spf13/cobra"
)

// manifestPath is the optional cargo manifest for the bl command.
var manifestPath string

var blCmd = &cobra.Command{
	Use:   "bl <cards.yaml>",
	Short: "Prepare BL document data from a card file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := appConfig.Catalog()
		if err != nil {
			return err
		}

		docs := &pipeline.BLDocs{Catalog: catalog, Logger: logger}
		result, err := docs.Run(cmd.Context(), args[0], manifestPath)
		if err != nil {
			return err
		}
		if len(result.Problems) > 0 {
			logger.Warnf("%d card(s) need attention", len(result.Problems))
		}
		return bldoc.Render(cmd.OutOrStdout(), result.Views)
	},
}

func init() {
	rootCmd.AddCommand(blCmd)
	blCmd.Flags().StringVar(&manifestPath, "manifest", "", "Cargo manifest (PDF or text) to take weights from")
}
