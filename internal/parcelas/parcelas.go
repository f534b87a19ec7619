// =============================================================================
// NFSe Importer - Installment & Accumulator Deriver
// =============================================================================
//
// Applies or clears the installment schedule and accounting accumulator for
// a selection of rows under the 410/411/424/425 state machine:
//
//	record installment:  410 -> 411, 424 -> 425
//	clear installment:   411 -> 410, 425 -> 424
//
// Rows are mutated in place. Cancelled rows are never touched. Each
// invocation is all-or-nothing: an unparsable due date fails before any row
// is modified. Callers own the serialization of concurrent invocations over
// overlapping selections.
//
// =============================================================================

package parcelas

import (
	"errors"
	"fmt"

	"github.com/gfcontab/nfse-importer/internal/normalize"
	"github.com/gfcontab/nfse-importer/internal/types"
)

// ErrInvalidDate is returned when the target due date does not parse as
// dd/mm/yyyy (dd-mm-yyyy is accepted too).
var ErrInvalidDate = errors.New("invalid due date (expected dd/mm/yyyy)")

// Apply records one installment per selected row with the given due date.
//
// For every non-cancelled row:
//   - the accumulator advances 410 -> 411 / 424 -> 425; when no code is set
//     it is derived fresh from the retained-tax amount (> 0 means 425,
//     otherwise 411);
//   - Vencimento is set to the canonical form of venc;
//   - a single synthetic installment {n:"1", venc, valor} is written,
//     except that a pre-existing multi-installment list this package did
//     not build is preserved as-is.
//
// Returns the number of rows changed. On ErrInvalidDate no row is touched.
func Apply(rows []*types.Nota, venc string) (int, error) {
	d, ok := normalize.ParseDisplayDate(venc)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, venc)
	}
	canonical := normalize.FormatDate(d)

	changed := 0
	for _, r := range rows {
		if r.Cancelada() {
			continue
		}

		switch r.Acumulador {
		case types.AcumuladorNone:
			if r.IssRet != types.ZeroBRL {
				r.Acumulador = types.AcumuladorRetidoParcela
			} else {
				r.Acumulador = types.AcumuladorNormalParcela
			}
		default:
			r.Acumulador = r.Acumulador.ComParcela()
		}

		r.Vencimento = canonical
		if len(r.Parcelas) <= 1 {
			r.Parcelas = []types.Parcela{{N: "1", Venc: canonical, Valor: r.Valor}}
		}
		changed++
	}
	return changed, nil
}

// Clear reverses Apply for the selected rows: 411 -> 410, 425 -> 424, the
// due date and the synthetic single installment are removed. A row with no
// code set falls back to the parse-time default rule (retained amount > 0
// means 424, otherwise 410). Multi-installment lists are preserved.
//
// Returns the number of rows changed.
func Clear(rows []*types.Nota) int {
	changed := 0
	for _, r := range rows {
		if r.Cancelada() {
			continue
		}

		switch r.Acumulador {
		case types.AcumuladorNone:
			if r.IssRet != types.ZeroBRL {
				r.Acumulador = types.AcumuladorRetido
			} else {
				r.Acumulador = types.AcumuladorNormal
			}
		default:
			r.Acumulador = r.Acumulador.SemParcela()
		}

		r.Vencimento = ""
		if len(r.Parcelas) <= 1 {
			r.Parcelas = nil
		}
		changed++
	}
	return changed
}
