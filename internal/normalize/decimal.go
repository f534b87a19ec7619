// =============================================================================
// NFSe Importer - Currency Normalizer
// =============================================================================
//
// Municipal invoice XMLs mix two decimal conventions: Brazilian display form
// ("1.234,56") and plain machine form ("1234.56"). This module converts both
// into decimal.Decimal and renders the canonical #.##0,00 display format
// (thousands dot, comma decimal, two fraction digits).
//
// Parsing never fails: unparsable text yields zero, which is the expected
// behavior for heterogeneous real-world documents.
//
// =============================================================================

package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL converts a decimal string into a decimal.Decimal using the
// dual-convention rule:
//   - both "," and "." present: "." is a thousands separator and is
//     stripped, "," becomes the decimal point;
//   - only one separator present: it is the decimal point;
//   - unparsable or empty text: zero.
func ParseBRL(s string) decimal.Decimal {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero
	}
	if strings.Contains(t, ",") && strings.Contains(t, ".") {
		t = strings.ReplaceAll(t, ".", "")
		t = strings.ReplaceAll(t, ",", ".")
	} else {
		t = strings.ReplaceAll(t, ",", ".")
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatBRL renders d in the canonical display form, rounded to two
// fraction digits: FormatBRL(1234.5) == "1.234,50".
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// ReformatBRL round-trips a raw decimal string into the canonical display
// form. Convenience for callers that never need the numeric value.
func ReformatBRL(s string) string {
	return FormatBRL(ParseBRL(s))
}
