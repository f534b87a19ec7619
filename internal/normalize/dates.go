// =============================================================================
// NFSe Importer - Date Normalizer
// =============================================================================
//
// Emission dates arrive in several conventions: a full timestamp, a plain
// date, or a year/month "competência" value. Everything is rendered into the
// single dd/mm/yyyy display form.
//
// =============================================================================

package normalize

import (
	"strings"
	"time"
)

// DisplayDate is the canonical date layout: dd/mm/yyyy.
const DisplayDate = "02/01/2006"

// emissionLayouts are the accepted emission date/timestamp forms, tried in
// order. Municipalities emit both RFC3339 timestamps and bare dates.
var emissionLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// competenciaLayouts are the accepted year/month forms for the Competencia
// tag. The day component, when present, is ignored: a competência always
// maps to the first day of its month.
var competenciaLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"200601",
}

// ParseEmission parses an emission timestamp or date. The boolean result is
// false when no layout matched.
func ParseEmission(s string) (time.Time, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, false
	}
	for _, layout := range emissionLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseCompetencia parses a year/month reference and maps it to the first
// day of that month.
func ParseCompetencia(s string) (time.Time, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, false
	}
	for _, layout := range competenciaLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDisplayDate parses a dd/mm/yyyy date. A dash separator is accepted
// too, since older exports used dd-mm-yyyy.
func ParseDisplayDate(s string) (time.Time, bool) {
	t := strings.TrimSpace(s)
	for _, layout := range []string{DisplayDate, "02-01-2006"} {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in the canonical dd/mm/yyyy form.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDate)
}

// LastDayOfMonth returns the last calendar day of the month containing t.
func LastDayOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// DefaultDueDate returns the suggested due date for a batch processed on the
// given day: the last day of the previous month. For today=2025-10-16 the
// default is 2025-09-30.
func DefaultDueDate(today time.Time) time.Time {
	firstOfCurrent := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	return firstOfCurrent.AddDate(0, 0, -1)
}
