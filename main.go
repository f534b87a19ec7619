// =============================================================================
// NFSe Importer - Main Entry Point
// =============================================================================
//
// Converts municipal electronic-invoice (NFSe/ABRASF) XML documents into
// canonical, currency- and date-normalized rows for display, export and
// accounting reconciliation.
//
// USAGE:
//   nfse-importer process <input>   - Import XMLs from a dir, .zip or .xml
//   nfse-importer list <input>      - Enumerate documents without parsing
//   nfse-importer version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core engine (loader, parser, parcelas, batch, export)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/gfcontab/nfse-importer/cmd"
)

func main() {
	cmd.Execute()
}
