// =============================================================================
// NFSe Importer - Domínio Batch Export
// =============================================================================
//
// Writes the pipe-delimited batch file consumed by the Domínio bookkeeping
// system. Record layout, one record per line, every line wrapped in the
// field separator:
//
//	0000  header: generator tag, timestamp, row count
//	3000  invoice: number, recipient, emission, amount, rate, description
//	3020  taxes: INSS, IR, PIS, COFINS, CSLL, ISS retained/normal
//	3300  accumulator code
//	3500  one record per installment: number, due date, amount
//	9999  trailer: total line count
//
// Cancelled rows are exported with zeroed amounts and their status flag;
// rows with no accumulator receive the installment-recorded default (425
// when ISS was retained, 411 otherwise), matching the upstream exporter.
//
// =============================================================================

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gfcontab/nfse-importer/internal/types"
	"github.com/gfcontab/nfse-importer/pkg/utils"
)

const dominioSep = "|"

// WriteDominio writes the batch file to path and returns the number of
// lines written, trailer included.
func WriteDominio(rows []*types.Nota, path string) (int, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return 0, err
	}

	var b strings.Builder
	lines := 0
	write := func(parts ...string) {
		b.WriteString(dominioSep)
		b.WriteString(strings.Join(parts, dominioSep))
		b.WriteString(dominioSep)
		b.WriteByte('\n')
		lines++
	}

	write("0000", "GERADO_NFSE_IMPORTER",
		time.Now().Format("2006-01-02T15:04:05"),
		fmt.Sprintf("QTD=%d", len(rows)))

	for _, r := range rows {
		status := r.Status
		if status == "" {
			status = types.StatusNormal
		}
		write("3000", r.NFe, r.Tomador, r.Emissao, r.Valor, r.Aliq,
			r.Discriminacao, "STATUS="+string(status))
		write("3020", r.NFe, r.Inss, r.Ir, r.Pis, r.Cofins, r.Csll,
			r.IssRet, r.IssNormal)
		write("3300", r.NFe, "ACC="+string(exportAcumulador(r)))
		for _, p := range installments(r) {
			write("3500", r.NFe, p.N, p.Venc, p.Valor)
		}
	}

	write("9999", fmt.Sprintf("LINHAS=%d", lines+1))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return lines, nil
}

// exportAcumulador fills in the default for rows the Deriver never touched.
func exportAcumulador(r *types.Nota) types.Acumulador {
	if r.Acumulador != types.AcumuladorNone {
		return r.Acumulador
	}
	if r.IssRet != types.ZeroBRL {
		return types.AcumuladorRetidoParcela
	}
	return types.AcumuladorNormalParcela
}

// installments returns the row's schedule, falling back to the implicit
// single at-sight installment due on the emission date.
func installments(r *types.Nota) []types.Parcela {
	if len(r.Parcelas) > 0 {
		return r.Parcelas
	}
	return []types.Parcela{{N: "1", Venc: r.Emissao, Valor: r.Valor}}
}
