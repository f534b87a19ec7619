// =============================================================================
// NFSe Importer - Process Command
// =============================================================================
//
// The main command: runs a batch over the input path, optionally applies a
// due date (installments + accumulator transitions) to the selected rows,
// and writes the requested export files.
//
// COMMAND USAGE:
//   nfse-importer process <input> [flags]
//
// FLAGS:
//   --venc        : Due date (dd/mm/yyyy) to apply to the selection
//   --venc-padrao : Apply the default due date (last day of previous month)
//   --filter      : Case-insensitive any-column filter for the selection
//   --csv         : Write the CSV export
//   --xlsx        : Write the XLSX export
//   --dominio     : Write the Domínio batch file
//   --export-dir  : Override the configured export directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gfcontab/nfse-importer/internal/batch"
	"github.com/gfcontab/nfse-importer/internal/export"
	"github.com/gfcontab/nfse-importer/internal/normalize"
	"github.com/gfcontab/nfse-importer/internal/parcelas"
	"github.com/gfcontab/nfse-importer/pkg/utils"
)

var (
	vencFlag       string
	vencPadraoFlag bool
	filterFlag     string
	csvFlag        bool
	xlsxFlag       bool
	dominioFlag    bool
	exportDirFlag  string
)

var processCmd = &cobra.Command{
	Use:   "process <input>",
	Short: "Import NFSe XMLs and convert them into canonical rows",
	Long: `The process command enumerates every XML document under the input path
(a directory scanned recursively for *.xml and *.zip, a .zip archive, or a
single .xml file), converts each document into one canonical row, and prints
a summary.

Errors in one document do not affect the processing of others: failed
documents are counted, listed, and written to an error log in the export
directory.

With --venc (or --venc-padrao) the due date is applied to the selected rows:
each non-cancelled row gains a single installment and its accumulator code
advances (410 to 411, 424 to 425). Use --filter to restrict the selection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(args[0])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&vencFlag, "venc", "",
		"Due date (dd/mm/yyyy) to apply to the selected rows")
	processCmd.Flags().BoolVar(&vencPadraoFlag, "venc-padrao", false,
		"Apply the default due date (last day of the previous month)")
	processCmd.Flags().StringVar(&filterFlag, "filter", "",
		"Case-insensitive any-column filter for the selection")
	processCmd.Flags().BoolVar(&csvFlag, "csv", false,
		"Write the CSV export")
	processCmd.Flags().BoolVar(&xlsxFlag, "xlsx", false,
		"Write the XLSX export")
	processCmd.Flags().BoolVar(&dominioFlag, "dominio", false,
		"Write the Domínio batch file")
	processCmd.Flags().StringVar(&exportDirFlag, "export-dir", "",
		"Override the configured export directory")
}

func runProcess(input string) error {
	startTime := time.Now()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	exportDir := settings.ExportDir
	if exportDirFlag != "" {
		exportDir = exportDirFlag
	}

	// =========================================================================
	// STEP 1: RUN THE BATCH
	// =========================================================================

	result, err := batch.Run(input)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: APPLY DUE DATE TO THE SELECTION
	// =========================================================================

	selection := batch.Filter(result.Rows, filterFlag)

	venc := vencFlag
	if venc == "" && vencPadraoFlag {
		venc = normalize.FormatDate(normalize.DefaultDueDate(time.Now()))
	}
	if venc != "" {
		changed, err := parcelas.Apply(selection, venc)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"vencimento": venc,
			"linhas":     changed,
		}).Info("installments applied")
	}

	// =========================================================================
	// STEP 3: EXPORTS
	// =========================================================================

	name := func(kind, ext string) string {
		return filepath.Join(exportDir,
			utils.GenerateOutputFileName(settings.OutputNameFormat, kind)+ext)
	}
	if csvFlag {
		out := name("csv", ".csv")
		if err := export.WriteCSV(result.Rows, out); err != nil {
			return err
		}
		fmt.Printf("CSV:      %s\n", out)
	}
	if xlsxFlag {
		out := name("xlsx", ".xlsx")
		if err := export.WriteXLSX(result.Rows, out); err != nil {
			return err
		}
		fmt.Printf("XLSX:     %s\n", out)
	}
	if dominioFlag {
		out := name("dominio", ".txt")
		lines, err := export.WriteDominio(result.Rows, out)
		if err != nil {
			return err
		}
		fmt.Printf("Domínio:  %s (%d lines)\n", out, lines)
	}

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total documents: %d\n", result.Counts.Total)
	fmt.Printf("Successful:      %d\n", result.Counts.OK)
	fmt.Printf("Errors:          %d\n", result.Counts.Fail)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	if len(result.Errors) > 0 {
		shown := result.Errors
		if len(shown) > settings.MaxDisplayedErrors {
			shown = shown[:settings.MaxDisplayedErrors]
		}
		fmt.Println()
		for _, e := range shown {
			fmt.Printf("  ✗ %s\n", e)
		}
		if suppressed := len(result.Errors) - len(shown); suppressed > 0 {
			fmt.Printf("  … %d more error(s) suppressed\n", suppressed)
		}
		logPath, err := utils.WriteErrorLog(result.Errors, exportDir)
		if err != nil {
			log.WithError(err).Warn("could not write error log")
		} else {
			fmt.Printf("\nFull error list: %s\n", logPath)
		}
	}

	return nil
}
