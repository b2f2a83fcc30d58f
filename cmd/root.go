// =============================================================================
// Freight Docs - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (freightdocs)
//   ├── billingCmd  (freightdocs billing)
//   ├── receiptsCmd (freightdocs receipts grain|sugar)
//   ├── extractCmd  (freightdocs extract declaration|manifest)
//   ├── blCmd       (freightdocs bl)
//   └── versionCmd  (freightdocs version)
//
// CONFIGURATION:
//   Before any command runs, the root command:
//   1. Loads a .env file from the working directory, when present
//   2. Resolves the main configuration (--config, $FREIGHTDOCS_CONFIG,
//      ./freightdocs.yaml, built-in defaults)
//   3. Builds the zap logger at the configured level (--verbose forces debug)
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ginjaninja78/freight-docs/internal/config"
	"github.com/ginjaninja78/freight-docs/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// Empty means the default resolution order.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are set up by the root command before any
// subcommand runs.
var (
	appConfig *config.MainConfig
	zapLogger *zap.Logger
	logger    *zap.SugaredLogger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "freightdocs",
	Short: "Freight Docs - billing, receipts and BL data for shipping agencies",
	Long: `Freight Docs turns freight spreadsheets into the documents a shipping
agency back office produces after each vessel call.

Key Features:
  - Billing reports grouped by shipper and customs broker
  - Grain receipts by shipper and sugar receipts by customs broker
  - Field extraction from customs declarations (DU-E) and cargo manifests
  - BL document data with defaults taken from those documents

Example Usage:
  freightdocs billing sheet.xlsx            # Write the billing workbook
  pbpaste | freightdocs billing --clipboard text
  freightdocs receipts grain sheet.xlsx
  freightdocs extract declaration due.pdf
  freightdocs bl cards.yaml --manifest manifest.pdf`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			_ = zapLogger.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Interrupts cancel the command context.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the main configuration file (default is ./"+config.DefaultConfigFile+" when present)",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initApp loads the environment, the configuration and the logger.
func initApp() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	zl, err := logging.New(level, cfg.LogFile)
	if err != nil {
		return err
	}

	appConfig = cfg
	zapLogger = zl
	logger = zl.Sugar()
	logger.Debugf("Configuration loaded (output dir %s)", cfg.OutputDir)
	return nil
}
