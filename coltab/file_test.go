package coltab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variaveis")

	tbl := sampleTable(t)
	require.NoError(t, WriteFile(tbl, path))

	decoded, err := ReadFile(path)
	require.NoError(t, err)
	requireTablesEqual(t, tbl, decoded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFile(sampleTable(t), filepath.Join(dir, "notas")))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "notas", files[0].Name())
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "periodos")

	first := New("Periodo")
	require.NoError(t, first.AppendRow(StringCell("202401")))
	require.NoError(t, WriteFile(first, path))

	second := New("Periodo")
	require.NoError(t, second.AppendRow(StringCell("202402")))
	require.NoError(t, second.AppendRow(StringCell("202403")))
	require.NoError(t, WriteFile(second, path))

	decoded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, decoded.NumRows())
	require.Equal(t, "202402", decoded.Cell(0, 0).Str)
}

func TestWriteFileIdempotentBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conjuntos_periodos")

	tbl := sampleTable(t)
	require.NoError(t, WriteFile(tbl, path))
	a, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(tbl, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "ausente"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestWriteFileBadDirectory(t *testing.T) {
	err := WriteFile(sampleTable(t), filepath.Join(t.TempDir(), "nope", "deep", "file"))
	require.Error(t, err)
}
