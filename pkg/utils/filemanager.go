// =============================================================================
// NFSe Importer - File Utilities
// =============================================================================
//
// Shared filesystem helpers for the export and CLI layers: directory
// creation, generated output file names, and the per-run error log.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands an output name format. Placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{kind}      - the export kind (csv, xlsx, dominio)
//
// Example: "nfse_{kind}_{timestamp}_{uuid}" with kind "csv".
func GenerateOutputFileName(format, kind string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{kind}", kind)
	return name
}

// =============================================================================
// ERROR LOG
// =============================================================================

// WriteErrorLog writes one line per failed document to a timestamped log
// file under dir and returns the file path. The display layer caps how many
// errors it shows; this file always carries the full list.
func WriteErrorLog(errs []string, dir string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "erros_"+time.Now().Format("20060102_150405")+".log")

	var b strings.Builder
	for _, e := range errs {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing error log: %w", err)
	}
	return path, nil
}

// =============================================================================
// PII MASKING
// =============================================================================

// MaskDocument masks a CPF/CNPJ-shaped value (digits only, length 11-14)
// for logging: "12345678901" becomes "123***01". Anything else is returned
// unchanged.
func MaskDocument(s string) string {
	if len(s) < 11 || len(s) > 14 {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return s[:3] + "***" + s[len(s)-2:]
}
