package batch

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfcontab/nfse-importer/internal/loader"
	"github.com/gfcontab/nfse-importer/internal/types"
)

const notaNormal = `<?xml version="1.0" encoding="UTF-8"?>
<Nfse>
  <NumeroNFe>101</NumeroNFe>
  <DataEmissaoNFe>2025-09-05T08:00:00</DataEmissaoNFe>
  <Cnpj>12345678000195</Cnpj>
  <ValorServicos>2500.00</ValorServicos>
  <AliquotaServicos>0.02</AliquotaServicos>
  <ValorISS>50.00</ValorISS>
  <Discriminacao>Consultoria</Discriminacao>
</Nfse>`

const notaCancelada = `<?xml version="1.0" encoding="UTF-8"?>
<Nfse>
  <NumeroNFe>102</NumeroNFe>
  <DataEmissaoNFe>2025-09-10T08:00:00</DataEmissaoNFe>
  <Cnpj>12345678000195</Cnpj>
  <ValorServicos>900.00</ValorServicos>
  <ValorISS>18.00</ValorISS>
  <StatusNFe>CANCELADA</StatusNFe>
</Nfse>`

func buildZip(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "notas.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		ew, err := w.Create(name)
		require.NoError(t, err)
		_, err = ew.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestRunArchive(t *testing.T) {
	zp := buildZip(t, t.TempDir(), map[string]string{
		"a.xml": notaNormal,
		"b.xml": notaCancelada,
	})

	res, err := Run(zp)
	require.NoError(t, err)

	assert.Equal(t, Counts{Total: 2, OK: 2, Fail: 0}, res.Counts)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Rows, 2)

	normal := res.Rows[0]
	assert.Equal(t, "notas.zip:a.xml", normal.Fonte)
	assert.Equal(t, "101", normal.NFe)
	assert.Equal(t, "05/09/2025", normal.Emissao)
	assert.Equal(t, "2.500,00", normal.Valor)
	assert.Equal(t, "2,00", normal.Aliq)
	assert.Equal(t, "50,00", normal.IssNormal)
	assert.Equal(t, types.ZeroBRL, normal.IssRet)
	assert.Equal(t, types.AcumuladorNormal, normal.Acumulador)
	assert.Equal(t, types.StatusNormal, normal.Status)

	cancelled := res.Rows[1]
	assert.Equal(t, "notas.zip:b.xml", cancelled.Fonte)
	assert.Equal(t, types.StatusCancelada, cancelled.Status)
	assert.Equal(t, types.ZeroBRL, cancelled.Valor)
	assert.Equal(t, types.ZeroBRL, cancelled.IssNormal)
}

func TestRunIsolatesDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boa.xml"), []byte(notaNormal), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quebrada.xml"), []byte("<Nfse><aberta>"), 0o644))

	res, err := Run(dir)
	require.NoError(t, err)

	assert.Equal(t, Counts{Total: 2, OK: 1, Fail: 1}, res.Counts)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "101", res.Rows[0].NFe)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "quebrada.xml")
}

func TestRunInputErrorsAbort(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "inexistente"))
	assert.ErrorIs(t, err, loader.ErrNotFound)

	path := filepath.Join(t.TempDir(), "planilha.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b"), 0o644))
	_, err = Run(path)
	assert.ErrorIs(t, err, loader.ErrUnsupportedInput)
}

func TestFilter(t *testing.T) {
	rows := []*types.Nota{
		{NFe: "101", Tomador: "12345678000195", Discriminacao: "Consultoria em TI"},
		{NFe: "102", Tomador: "98765432000188", Discriminacao: "Manutenção predial"},
	}

	t.Run("matches any column case-insensitively", func(t *testing.T) {
		got := Filter(rows, "consultoria")
		require.Len(t, got, 1)
		assert.Equal(t, "101", got[0].NFe)

		got = Filter(rows, "9876")
		require.Len(t, got, 1)
		assert.Equal(t, "102", got[0].NFe)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		got := Filter(rows, "  ")
		assert.Len(t, got, 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, Filter(rows, "inexistente"))
	})

	t.Run("shares underlying rows", func(t *testing.T) {
		got := Filter(rows, "101")
		require.Len(t, got, 1)
		got[0].Vencimento = "30/09/2025"
		assert.Equal(t, "30/09/2025", rows[0].Vencimento)
	})
}
