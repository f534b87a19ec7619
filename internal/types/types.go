// =============================================================================
// NFSe Importer - Shared Types
// =============================================================================
//
// This package contains the canonical row schema shared across modules to
// avoid import cycles. Types defined here are used by:
//   - parser
//   - parcelas
//   - batch
//   - export
//
// =============================================================================

package types

// ZeroBRL is the canonical zero string for every decimal column.
const ZeroBRL = "0,00"

// =============================================================================
// STATUS
// =============================================================================

// Status is the document status of an NFSe. Source documents may spell it in
// any case; the parser normalizes it to one of the two values below.
type Status string

const (
	// StatusNormal marks a regular, billable invoice.
	StatusNormal Status = "Normal"

	// StatusCancelada marks a cancelled invoice. Cancelled rows carry the
	// zero string in every decimal column and are skipped by the
	// installment/accumulator rules.
	StatusCancelada Status = "Cancelada"
)

// =============================================================================
// ACCUMULATOR
// =============================================================================

// Acumulador is the bookkeeping classification code of a row. It is a
// four-value state machine keyed on two axes: whether the ISS was withheld
// by the recipient, and whether an installment has been recorded.
//
//	            no installment   installment recorded
//	ISS normal       410               411
//	ISS retido       424               425
type Acumulador string

const (
	// AcumuladorNone means no code has been assigned yet.
	AcumuladorNone Acumulador = ""

	// AcumuladorNormal: ISS paid by the issuer, no installment recorded.
	AcumuladorNormal Acumulador = "410"

	// AcumuladorNormalParcela: ISS paid by the issuer, installment recorded.
	AcumuladorNormalParcela Acumulador = "411"

	// AcumuladorRetido: ISS withheld by the recipient, no installment.
	AcumuladorRetido Acumulador = "424"

	// AcumuladorRetidoParcela: ISS withheld, installment recorded.
	AcumuladorRetidoParcela Acumulador = "425"
)

// ComParcela returns the code after an installment is recorded.
// 410 becomes 411 and 424 becomes 425; codes already in the "installment
// recorded" state are returned unchanged.
func (a Acumulador) ComParcela() Acumulador {
	switch a {
	case AcumuladorNormal:
		return AcumuladorNormalParcela
	case AcumuladorRetido:
		return AcumuladorRetidoParcela
	}
	return a
}

// SemParcela is the reverse transition: 411 back to 410, 425 back to 424.
func (a Acumulador) SemParcela() Acumulador {
	switch a {
	case AcumuladorNormalParcela:
		return AcumuladorNormal
	case AcumuladorRetidoParcela:
		return AcumuladorRetido
	}
	return a
}

// Valid reports whether a is one of the four known codes or empty.
func (a Acumulador) Valid() bool {
	switch a {
	case AcumuladorNone, AcumuladorNormal, AcumuladorNormalParcela,
		AcumuladorRetido, AcumuladorRetidoParcela:
		return true
	}
	return false
}

// =============================================================================
// CANONICAL ROW
// =============================================================================

// Parcela is one installment of a row's payment schedule.
type Parcela struct {
	// N is the installment number, 1-based, kept as a string because the
	// export layouts carry it verbatim.
	N string

	// Venc is the due date in dd/mm/yyyy display form.
	Venc string

	// Valor is the installment amount in #.##0,00 display form.
	Valor string
}

// Nota is the canonical row built from one NFSe XML document.
//
// All monetary fields hold the #.##0,00 display form (thousands dot, comma
// decimal, two fraction digits); dates hold dd/mm/yyyy. Downstream consumers
// are display and export layers, so strings are the unit of exchange.
type Nota struct {
	// Tomador is the recipient tax ID, digits only. Punctuation from the
	// source document is never retained.
	Tomador string

	// NFe is the invoice number, verbatim from the source.
	NFe string

	// Emissao is the issuance date in dd/mm/yyyy form. When the source
	// value could not be recognized it passes through verbatim.
	Emissao string

	Valor     string
	Aliq      string
	Inss      string
	Ir        string
	Pis       string
	Cofins    string
	Csll      string
	IssRet    string
	IssNormal string

	// Discriminacao is the free-text service description with entity
	// artifacts repaired and whitespace normalized.
	Discriminacao string

	// Vencimento is the suggested or applied due date (dd/mm/yyyy), or
	// empty. The parser pre-fills it with the last day of the emission
	// month; the parcelas package overwrites it when a due date is applied.
	Vencimento string

	// Acumulador is the bookkeeping code, see the Acumulador type.
	Acumulador Acumulador

	// Status is Normal or Cancelada.
	Status Status

	// Parcelas is the installment list. Empty means the row is implicitly
	// one installment equal to Valor due on Emissao.
	Parcelas []Parcela

	// Fonte is the logical source name of the document, e.g.
	// "notas.zip:a.xml" or a plain file path. Used for error tracing only.
	Fonte string
}

// Cancelada reports whether the row belongs to a cancelled invoice.
func (n *Nota) Cancelada() bool {
	return n.Status == StatusCancelada
}

// ZeroDecimals forces every decimal column to the zero string. Applied by
// the parser as the final step for cancelled invoices.
func (n *Nota) ZeroDecimals() {
	n.Valor = ZeroBRL
	n.Aliq = ZeroBRL
	n.Inss = ZeroBRL
	n.Ir = ZeroBRL
	n.Pis = ZeroBRL
	n.Cofins = ZeroBRL
	n.Csll = ZeroBRL
	n.IssRet = ZeroBRL
	n.IssNormal = ZeroBRL
}

// =============================================================================
// COLUMN ORDER
// =============================================================================

// Columns is the display/export column order. The first thirteen columns are
// the table surface; PARCELA, ACUMULADOR and STATUS are appended for exports.
var Columns = []string{
	"TOMADOR", "NFE", "EMISSAO", "VALOR", "ALIQ",
	"INSS", "IR", "PIS", "COFINS", "CSLL",
	"ISS_RET", "ISS_NORMAL", "DISCRIMINACAO",
	"PARCELA", "ACUMULADOR", "STATUS",
}

// Values returns the row's cells in Columns order.
func (n *Nota) Values() []string {
	return []string{
		n.Tomador, n.NFe, n.Emissao, n.Valor, n.Aliq,
		n.Inss, n.Ir, n.Pis, n.Cofins, n.Csll,
		n.IssRet, n.IssNormal, n.Discriminacao,
		n.Vencimento, string(n.Acumulador), string(n.Status),
	}
}
