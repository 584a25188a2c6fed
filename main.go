// =============================================================================
// Taplist Builder - Main Entry Point
// =============================================================================
//
// This is the main entry point for the taplist CLI. It builds the static
// taplist page from the CSV (or XLSX) taplist and the HTML template
// fragments in the assets directory.
//
// USAGE:
//   taplist            - Build docs/index.html (same as "taplist build")
//   taplist build      - Build the page
//   taplist validate   - Check the taplist and templates without writing
//   taplist version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, validation, rendering and the build pipeline
//   - pkg/       : Shared file utilities
//   - assets/    : Templates and the taplist
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/taplist/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
