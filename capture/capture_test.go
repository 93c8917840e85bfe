package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sidracap/coltab"
	"sidracap/manifest"
)

const metadataJSON = `{
	"Id": "1737",
	"Variaveis": [
		{"Id": 63, "Nome": "IPCA - Variação mensal", "DecimaisApresentacao": 2},
		{"Id": 69, "Nome": "IPCA - Variação acumulada no ano", "DecimaisApresentacao": 2}
	],
	"UnidadesDeMedida": [{"Id": 1, "Nome": "%"}],
	"Periodos": {
		"Periodos": ["202401", "202402"],
		"Conjuntos": [{"Id": 1, "Nome": "2024"}]
	},
	"Notas": [{"Id": 1, "Texto": "Série histórica do IPCA"}]
}`

const envelopeJSON = `[
	{"NC": "Nível Territorial (Código)", "D3C": "Mês (Código)", "V": "Valor"},
	{"NC": "1", "D3C": "202401", "V": "0.42"},
	{"NC": "1", "D3C": "202402", "V": "0.83"}
]`

// stubFetcher serves canned JSON bodies by URL and records every request.
type stubFetcher struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func (s *stubFetcher) JSON(_ context.Context, url string) (any, error) {
	s.calls = append(s.calls, url)

	if err, ok := s.failures[url]; ok {
		return nil, err
	}
	body, ok := s.responses[url]
	if !ok {
		return nil, fmt.Errorf("stub has no response for %s", url)
	}

	var value any
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return nil, err
	}

	return value, nil
}

const stubMetadataURL = "https://stub/Ajax/Json/Tabela/1/1737?versao=-1"

func stubForTable(t *testing.T) *stubFetcher {
	t.Helper()

	return &stubFetcher{
		responses: map[string]string{
			stubMetadataURL: metadataJSON,
			seriesURL("https://stub", "1737", "63", "2"): envelopeJSON,
			seriesURL("https://stub", "1737", "69", "2"): envelopeJSON,
		},
		failures: map[string]error{},
	}
}

func testConfig(t *testing.T, dir string) Config {
	t.Helper()

	return Config{
		MetadataURL:     stubMetadataURL,
		SeriesBaseURL:   "https://stub",
		OutputDir:       dir,
		DisableManifest: true,
		Logger:          slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func run(t *testing.T, cfg Config, fetcher Fetcher) {
	t.Helper()

	c, err := New(cfg, fetcher)
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))
}

func TestRunProducesAllFiles(t *testing.T) {
	dir := t.TempDir()
	run(t, testConfig(t, dir), stubForTable(t))

	for _, name := range []string{
		"variaveis", "unidades_de_medida", "periodos", "conjuntos_periodos",
		"notas", "dados_numericos_63", "dados_numericos_69",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 7)
}

func TestRunWritesExpectedContents(t *testing.T) {
	dir := t.TempDir()
	run(t, testConfig(t, dir), stubForTable(t))

	variables, err := coltab.ReadFile(filepath.Join(dir, "variaveis"))
	require.NoError(t, err)
	require.Equal(t, []string{"DecimaisApresentacao", "Id", "Nome"}, variables.Columns())
	require.Equal(t, 2, variables.NumRows())
	require.Equal(t, coltab.NumberCell(63), variables.Cell(0, 1))

	periods, err := coltab.ReadFile(filepath.Join(dir, "periodos"))
	require.NoError(t, err)
	require.Equal(t, []string{"Periodo"}, periods.Columns())
	require.Equal(t, "202401", periods.Cell(0, 0).Str)
	require.Equal(t, "202402", periods.Cell(1, 0).Str)

	series, err := coltab.ReadFile(filepath.Join(dir, "dados_numericos_63"))
	require.NoError(t, err)
	require.Equal(t, []string{"Mês (Código)", "Nível Territorial (Código)", "Valor"}, series.Columns())
	require.Equal(t, 2, series.NumRows())
	require.Equal(t, "0.42", series.Cell(0, 2).Str)
	require.Equal(t, "0.83", series.Cell(1, 2).Str)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	run(t, cfg, stubForTable(t))
	first := map[string][]byte{}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		first[e.Name()] = data
	}

	run(t, cfg, stubForTable(t))
	for name, want := range first {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}
}

func TestRunMetadataFailureSkipsSeries(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	fetcher.failures[stubMetadataURL] = errors.New("connection refused")

	run(t, testConfig(t, dir), fetcher)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Equal(t, []string{stubMetadataURL}, fetcher.calls)
}

func TestRunVariableFailureDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	fetcher.failures[seriesURL("https://stub", "1737", "63", "2")] = errors.New("boom")

	run(t, testConfig(t, dir), fetcher)

	_, err := os.Stat(filepath.Join(dir, "dados_numericos_63"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "dados_numericos_69"))
	require.NoError(t, err)
}

func TestRunEmptyEnvelopeSkipsFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	fetcher.responses[seriesURL("https://stub", "1737", "63", "2")] = `[{"V": "Valor"}]`

	run(t, testConfig(t, dir), fetcher)

	_, err := os.Stat(filepath.Join(dir, "dados_numericos_63"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "dados_numericos_69"))
	require.NoError(t, err)
}

func TestRunMissingCategoryIsSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(metadataJSON), &doc))
	delete(doc, "Notas")
	trimmed, err := json.Marshal(doc)
	require.NoError(t, err)
	fetcher.responses[stubMetadataURL] = string(trimmed)

	run(t, testConfig(t, dir), fetcher)

	_, err = os.Stat(filepath.Join(dir, "notas"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "dados_numericos_63"))
	require.NoError(t, err)
}

func TestRunWithoutVariablesSkipsSeriesStage(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	fetcher.responses[stubMetadataURL] = `{"Id": "1737", "Notas": [{"Id": 1}]}`

	run(t, testConfig(t, dir), fetcher)

	// Only the metadata request went out.
	require.Equal(t, []string{stubMetadataURL}, fetcher.calls)
}

func TestRunFallsBackToDefaultTableID(t *testing.T) {
	dir := t.TempDir()
	fetcher := stubForTable(t)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(metadataJSON), &doc))
	delete(doc, "Id")
	trimmed, err := json.Marshal(doc)
	require.NoError(t, err)
	fetcher.responses[stubMetadataURL] = string(trimmed)

	cfg := testConfig(t, dir)
	cfg.DefaultTableID = "1737"
	run(t, cfg, fetcher)

	require.Contains(t, fetcher.calls, seriesURL("https://stub", "1737", "63", "2"))
}

func TestRunRecordsManifest(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.DisableManifest = false
	run(t, cfg, stubForTable(t))

	store, err := manifest.Open(filepath.Join(dir, "manifest.db"))
	require.NoError(t, err)
	defer store.Close()

	records, err := store.AllFiles()
	require.NoError(t, err)
	require.Len(t, records, 7)
	require.Equal(t, "variaveis", records[0].Name)
	require.Equal(t, 2, records[0].Rows)
	require.Equal(t, "dados_numericos_69", records[6].Name)
}

func TestRunFatalWhenOutputDirUnusable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	cfg := testConfig(t, dir)
	cfg.OutputDir = filepath.Join(blocker, "out")

	c, err := New(cfg, stubForTable(t))
	require.NoError(t, err)
	require.Error(t, c.Run(context.Background()))
}

func TestNewRejectsUnknownCompression(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Compression = "brotli"
	_, err := New(cfg, stubForTable(t))
	require.Error(t, err)
}

func TestSeriesURL(t *testing.T) {
	require.Equal(t,
		"https://apisidra.ibge.gov.br/values/t/1737/n1/all/v/63/p/all/d/v63%202",
		seriesURL("https://apisidra.ibge.gov.br", "1737", "63", "2"))
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.defaults()
	require.Equal(t, DefaultMetadataURL, cfg.MetadataURL)
	require.Equal(t, DefaultSeriesBaseURL, cfg.SeriesBaseURL)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.Equal(t, DefaultTableID, cfg.DefaultTableID)
	require.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	require.NotNil(t, cfg.Logger)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"output_dir: /tmp/saida\ncompression: lz4\ntimeout_seconds: 5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/saida", cfg.OutputDir)
	require.Equal(t, "lz4", cfg.Compression)
	require.Equal(t, 5, cfg.TimeoutSeconds)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
