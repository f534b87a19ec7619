// =============================================================================
// NFSe Importer - Batch Orchestrator
// =============================================================================
//
// Drives the source enumerator and the field extractor over an entire input.
// Per-document failures are isolated: a malformed document is recorded in
// the error list and counted under Fail, and processing continues. Only
// input-level failures (missing or unsupported path, unreadable archive)
// abort the batch, with no partial result.
//
// =============================================================================

package batch

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gfcontab/nfse-importer/internal/loader"
	"github.com/gfcontab/nfse-importer/internal/parser"
	"github.com/gfcontab/nfse-importer/internal/types"
	"github.com/gfcontab/nfse-importer/pkg/utils"
)

// Counts summarizes one batch run. Total always equals the number of
// entries seen, and OK + Fail == Total.
type Counts struct {
	Total int
	OK    int
	Fail  int
}

// Result is the outcome of one batch run: the canonical rows in enumerator
// order, the counters, and one "<name>: <error>" line per failed document.
type Result struct {
	Rows   []*types.Nota
	Counts Counts
	Errors []string
}

// Run processes every XML payload under inputPath synchronously on the
// calling goroutine. Rows are owned exclusively by the caller; a subsequent
// Run allocates a fresh Result.
func Run(inputPath string) (*Result, error) {
	res := &Result{}

	err := loader.ForEachXML(inputPath, func(name string, data []byte) error {
		res.Counts.Total++

		nota, perr := parser.Parse(data, name)
		if perr != nil {
			res.Counts.Fail++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", name, perr))
			log.WithField("fonte", name).WithError(perr).Warn("document skipped")
			return nil
		}

		res.Rows = append(res.Rows, nota)
		res.Counts.OK++
		log.WithFields(log.Fields{
			"fonte":   name,
			"nfe":     nota.NFe,
			"tomador": utils.MaskDocument(nota.Tomador),
		}).Debug("document parsed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"total": res.Counts.Total,
		"ok":    res.Counts.OK,
		"fail":  res.Counts.Fail,
	}).Info("batch finished")
	return res, nil
}
