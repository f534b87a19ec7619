// =============================================================================
// NFSe Importer - List Command
// =============================================================================
//
// Enumerates the XML documents discoverable under an input path without
// reading or parsing any payload. The listing matches the order the process
// command would use, so it doubles as a dry-run and a progress estimate.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gfcontab/nfse-importer/internal/loader"
)

// countOnly suppresses the per-entry listing.
var countOnly bool

var listCmd = &cobra.Command{
	Use:   "list <input>",
	Short: "List the XML documents discoverable under an input path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loader.ListEntries(args[0])
		if err != nil {
			return err
		}
		if !countOnly {
			for _, e := range entries {
				fmt.Println(e)
			}
		}
		fmt.Printf("%d document(s)\n", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&countOnly, "count", false,
		"Print only the document count")
}
