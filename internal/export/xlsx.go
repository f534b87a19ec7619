// =============================================================================
// NFSe Importer - XLSX Export
// =============================================================================

package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/gfcontab/nfse-importer/internal/types"
	"github.com/gfcontab/nfse-importer/pkg/utils"
)

const sheetName = "NFSe"

// WriteXLSX writes the rows to an Excel workbook at path, one sheet, header
// row in bold, cancelled rows tinted the way the original panel showed them.
func WriteXLSX(rows []*types.Nota, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	cancelStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFCCCC"}},
	})
	if err != nil {
		return fmt.Errorf("creating cancel style: %w", err)
	}

	header := make([]interface{}, len(types.Columns))
	for i, c := range types.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(types.Columns))
	if err != nil {
		return fmt.Errorf("resolving last column: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		cells := make([]interface{}, 0, len(types.Columns))
		for _, v := range r.Values() {
			cells = append(cells, v)
		}
		anchor, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("resolving row %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(sheetName, anchor, &cells); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Fonte, err)
		}
		if r.Cancelada() {
			end := fmt.Sprintf("%s%d", lastCol, rowNum)
			if err := f.SetCellStyle(sheetName, anchor, end, cancelStyle); err != nil {
				return fmt.Errorf("styling row %s: %w", r.Fonte, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
