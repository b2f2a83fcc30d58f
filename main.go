// =============================================================================
// Freight Docs - Main Entry Point
// =============================================================================
//
// This is the main entry point for the freightdocs CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   freightdocs billing     - Build billing reports from freight sheets
//   freightdocs receipts    - Generate grain or sugar receipts
//   freightdocs extract     - Extract fields from declarations and manifests
//   freightdocs bl          - Prepare BL document data
//   freightdocs version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/freight-docs/cmd"
)

func main() {
	cmd.Execute()
}
