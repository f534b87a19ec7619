package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "idempotent on an existing directory")

	assert.False(t, FileExists(dir), "directories are not files")

	path := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("nfse_{kind}_{timestamp}", "csv")
	assert.Regexp(t, regexp.MustCompile(`^nfse_csv_\d{8}_\d{6}$`), name)

	withUUID := GenerateOutputFileName("{uuid}", "csv")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), withUUID)

	assert.NotEqual(t,
		GenerateOutputFileName("{uuid}", "csv"),
		GenerateOutputFileName("{uuid}", "csv"))

	assert.Equal(t, "fixo", GenerateOutputFileName("fixo", "csv"),
		"formats without placeholders pass through")
}

func TestWriteErrorLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	errs := []string{
		"a.xml: malformed XML in a.xml: unexpected EOF",
		"b.xml: malformed XML in b.xml: unexpected EOF",
	}

	path, err := WriteErrorLog(errs, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "erros_"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(errs, "\n")+"\n", string(raw))
}

func TestMaskDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cpf", "12345678901", "123***01"},
		{"cnpj", "12345678000195", "123***95"},
		{"too short", "1234567890", "1234567890"},
		{"too long", "123456789012345", "123456789012345"},
		{"punctuated stays visible", "12.345.678/0001-95", "12.345.678/0001-95"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskDocument(tt.in))
		})
	}
}
