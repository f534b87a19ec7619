// =============================================================================
// NFSe Importer - Field Extractor / Row Builder
// =============================================================================
//
// This module turns one NFSe XML payload into a canonical row. Municipal
// layouts disagree on namespaces, nesting and tag casing, so no struct
// unmarshalling is attempted: the whole document is indexed in document
// order by local tag name, and each logical field is resolved by a
// priority-ordered list of accepted names. The first matching element in
// document order wins per priority tier.
//
// Field-level fallbacks are best-effort and never fail the row: unparsable
// currency text yields zero, an unrecognized date passes through verbatim.
// Only bytes that do not parse as XML at all fail, with MalformedXMLError.
//
// =============================================================================

package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/gfcontab/nfse-importer/internal/normalize"
	"github.com/gfcontab/nfse-importer/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// MalformedXMLError reports a payload that does not parse as XML. It carries
// the logical source name so batch error lists trace back to a location.
type MalformedXMLError struct {
	Name string
	Err  error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed XML in %s: %v", e.Name, e.Err)
}

func (e *MalformedXMLError) Unwrap() error { return e.Err }

// =============================================================================
// ACCEPTED TAG NAMES
// =============================================================================

// Accepted source tag names per canonical field, in priority order. Matching
// is case-insensitive and ignores namespace prefixes and nesting depth.
var (
	tagsTomador       = []string{"CPF", "CNPJ", "CPFCNPJTomador"}
	tagsNFe           = []string{"NumeroNFe"}
	tagsEmissao       = []string{"DataEmissaoNFe", "DataEmissao", "Competencia"}
	tagsValor         = []string{"ValorServicos"}
	tagsAliq          = []string{"AliquotaServicos"}
	tagsInss          = []string{"ValorInss"}
	tagsIr            = []string{"ValorIr"}
	tagsPis           = []string{"ValorPis"}
	tagsCofins        = []string{"ValorCofins"}
	tagsCsll          = []string{"ValorCsll"}
	tagsIss           = []string{"ValorISS"}
	tagsIssRetido     = []string{"ISSRetido"}
	tagsDiscriminacao = []string{"Discriminacao"}
	tagsStatus        = []string{"StatusNFe"}
)

var (
	oneDecimal     = decimal.NewFromInt(1)
	hundredDecimal = decimal.NewFromInt(100)
)

// retainedFlagValues maps the textual ISS-retention flag to its meaning.
// Values outside the table default to "not retained"; that default mirrors
// the upstream behavior even though it may misclassify exotic documents.
var retainedFlagValues = map[string]bool{
	"SIM":   true,
	"S":     true,
	"TRUE":  true,
	"1":     true,
	"NAO":   false,
	"NÃO":   false,
	"N":     false,
	"FALSE": false,
	"0":     false,
}

// =============================================================================
// DOCUMENT INDEX
// =============================================================================

// element is one XML element flattened into the document-order index. Text
// holds only the element's own character data, not its children's.
type element struct {
	local string
	text  string
}

type document []element

// indexDocument tokenizes the payload into a document-order element index.
// Non-UTF-8 payloads are decoded through the declared charset.
func indexDocument(data []byte) (document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var doc document
	var open []int // indexes of currently open elements
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			doc = append(doc, element{local: t.Name.Local})
			open = append(open, len(doc)-1)
		case xml.CharData:
			if len(open) > 0 {
				doc[open[len(open)-1]].text += string(t)
			}
		case xml.EndElement:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("document contains no elements")
	}
	return doc, nil
}

// charsetReader decodes the legacy single-byte encodings still common in
// municipal NFSe feeds.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}

// find resolves a field by its priority-ordered accepted names. Within one
// priority tier the first element in document order wins; the matched tag
// name is returned so callers can branch on which convention supplied the
// value (e.g. Competencia vs. a real emission date).
func (d document) find(names ...string) (value, tag string, ok bool) {
	for _, name := range names {
		for _, el := range d {
			if strings.EqualFold(el.local, name) {
				return strings.TrimSpace(el.text), name, true
			}
		}
	}
	return "", "", false
}

func (d document) text(names ...string) string {
	v, _, _ := d.find(names...)
	return v
}

// =============================================================================
// ROW BUILDER
// =============================================================================

// Parse builds one canonical row from an XML payload. name is the logical
// source name used in error messages; it does not influence extraction.
func Parse(data []byte, name string) (*types.Nota, error) {
	doc, err := indexDocument(data)
	if err != nil {
		return nil, &MalformedXMLError{Name: name, Err: err}
	}

	nota := &types.Nota{
		Fonte:   name,
		Tomador: normalize.DigitsOnly(doc.text(tagsTomador...)),
		NFe:     doc.text(tagsNFe...),
	}

	// Dates. A Competencia value maps to the first day of its month; an
	// unrecognized value passes through verbatim as a degraded fallback.
	rawDate, dateTag, _ := doc.find(tagsEmissao...)
	emissao, dateOK := parseEmissionValue(rawDate, dateTag)
	if dateOK {
		nota.Emissao = normalize.FormatDate(emissao)
		nota.Vencimento = normalize.FormatDate(normalize.LastDayOfMonth(emissao))
	} else {
		nota.Emissao = rawDate
	}

	// Currency columns.
	nota.Valor = normalize.ReformatBRL(doc.text(tagsValor...))
	nota.Inss = normalize.ReformatBRL(doc.text(tagsInss...))
	nota.Ir = normalize.ReformatBRL(doc.text(tagsIr...))
	nota.Pis = normalize.ReformatBRL(doc.text(tagsPis...))
	nota.Cofins = normalize.ReformatBRL(doc.text(tagsCofins...))
	nota.Csll = normalize.ReformatBRL(doc.text(tagsCsll...))

	// Tax rate: a source value <= 1 is a fraction and becomes a percentage.
	aliq := normalize.ParseBRL(doc.text(tagsAliq...))
	if aliq.LessThanOrEqual(oneDecimal) {
		aliq = aliq.Mul(hundredDecimal)
	}
	nota.Aliq = normalize.FormatBRL(aliq)

	// ISS splits into exactly one of retained/normal.
	iss := normalize.ParseBRL(doc.text(tagsIss...))
	if isRetido(doc.text(tagsIssRetido...)) {
		nota.IssRet = normalize.FormatBRL(iss)
		nota.IssNormal = types.ZeroBRL
	} else {
		nota.IssRet = types.ZeroBRL
		nota.IssNormal = normalize.FormatBRL(iss)
	}

	nota.Discriminacao = normalize.RepairEntities(doc.text(tagsDiscriminacao...))

	// Default accumulator, computed once at parse time. The parcelas
	// package owns every later transition.
	if nota.IssRet != types.ZeroBRL {
		nota.Acumulador = types.AcumuladorRetido
	} else {
		nota.Acumulador = types.AcumuladorNormal
	}

	nota.Status = types.StatusNormal
	if strings.EqualFold(strings.TrimSpace(doc.text(tagsStatus...)), "CANCELADA") {
		nota.Status = types.StatusCancelada
	}

	// Cancellation overrides everything computed above; it must stay last.
	if nota.Cancelada() {
		nota.ZeroDecimals()
	}

	return nota, nil
}

func parseEmissionValue(raw, tag string) (time.Time, bool) {
	if strings.EqualFold(tag, "Competencia") {
		return normalize.ParseCompetencia(raw)
	}
	return normalize.ParseEmission(raw)
}

// isRetido interprets the textual ISS-retention flag.
func isRetido(flag string) bool {
	v, known := retainedFlagValues[strings.ToUpper(strings.TrimSpace(flag))]
	return known && v
}
