// =============================================================================
// NFSe Importer - Entity/Encoding Repair
// =============================================================================
//
// Free-text description fields frequently carry numeric character references
// that survived a double-escaping bug in upstream municipal systems: the
// document says "&amp;#231;" so the XML parser hands us the literal text
// "&#231;" instead of "ç". The repair table below substitutes the known set
// of such artifacts for the Portuguese accented characters they stand for.
//
// =============================================================================

package normalize

import "strings"

// entityRepairs maps broken entity artifacts to their intended characters.
// Pairs are kept in (from, to) order for strings.NewReplacer.
var entityRepairs = []string{
	"&#224;", "à",
	"&#225;", "á",
	"&#226;", "â",
	"&#227;", "ã",
	"&#231;", "ç",
	"&#233;", "é",
	"&#234;", "ê",
	"&#237;", "í",
	"&#243;", "ó",
	"&#244;", "ô",
	"&#245;", "õ",
	"&#250;", "ú",
	"&#252;", "ü",
	"&#192;", "À",
	"&#193;", "Á",
	"&#194;", "Â",
	"&#195;", "Ã",
	"&#199;", "Ç",
	"&#201;", "É",
	"&#202;", "Ê",
	"&#205;", "Í",
	"&#211;", "Ó",
	"&#212;", "Ô",
	"&#213;", "Õ",
	"&#218;", "Ú",
	"&#186;", "º",
	"&#170;", "ª",
	"&amp;", "&",
	"&quot;", `"`,
	"&apos;", "'",
}

var entityReplacer = strings.NewReplacer(entityRepairs...)

// RepairEntities substitutes every known entity artifact, normalizes line
// endings to "\n" and trims leading/trailing whitespace.
func RepairEntities(s string) string {
	t := entityReplacer.Replace(s)
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	return strings.TrimSpace(t)
}

// DigitsOnly strips everything but ASCII digits. Used for tax IDs, which
// must never retain punctuation.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
