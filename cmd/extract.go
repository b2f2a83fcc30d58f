// =============================================================================
// Freight Docs - Extract Command
// =============================================================================
//
// COMMAND USAGE:
//   freightdocs extract declaration <file>   # DU-E number, exporter, weight
//   freightdocs extract manifest <file>      # BL numbers and weights
//
// Files may be PDFs or already-extracted .txt files. The fields are printed
// as YAML so they can be pasted into a BL card file.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/freight-docs/internal/pdfextract"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract fields from customs declarations and cargo manifests",
}

var extractDeclarationCmd = &cobra.Command{
	Use:   "declaration <file>",
	Short: "Extract DU-E number, exporter CNPJ and name, and net weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := pdfextract.ReadText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		decl, err := pdfextract.ExtractDeclaration(text)
		if err != nil {
			return noDataHint(args[0], err)
		}
		return writeYAML(cmd, decl)
	},
}

var extractManifestCmd = &cobra.Command{
	Use:   "manifest <file>",
	Short: "Extract BL numbers and weights from a cargo manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := pdfextract.ReadText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		manifest, err := pdfextract.ExtractManifest(text)
		if err != nil {
			return noDataHint(args[0], err)
		}
		logger.Debugf("Manifest %s: %d BL entries", args[0], len(manifest.Entries))
		return writeYAML(cmd, manifest)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.AddCommand(extractDeclarationCmd, extractManifestCmd)
}

func writeYAML(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func noDataHint(path string, err error) error {
	if errors.Is(err, pdfextract.ErrNoData) {
		return fmt.Errorf("%s: %w (scanned PDFs have no text layer)", path, err)
	}
	return err
}
