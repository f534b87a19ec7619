package batch

import (
	"strings"

	"github.com/gfcontab/nfse-importer/internal/types"
)

// Filter returns the rows whose cells contain the query in any column,
// case-insensitively. An empty or blank query returns a copy of the whole
// slice. The returned slice shares the underlying rows, so Deriver
// mutations through a filtered selection are visible in the full set.
func Filter(rows []*types.Nota, query string) []*types.Nota {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]*types.Nota, len(rows))
		copy(out, rows)
		return out
	}

	var out []*types.Nota
	for _, r := range rows {
		for _, cell := range r.Values() {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
