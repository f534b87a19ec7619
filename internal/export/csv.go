// =============================================================================
// NFSe Importer - CSV Export
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gfcontab/nfse-importer/internal/types"
	"github.com/gfcontab/nfse-importer/pkg/utils"
)

// utf8BOM makes Excel open the file with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the rows to path in the canonical column order, preceded
// by a header line and a UTF-8 BOM.
func WriteCSV(rows []*types.Nota, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(types.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Fonte, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
