// Package capture drives the two-stage harvest: table metadata first, then
// one numeric series per variable, each persisted as a columnar table file.
//
// Failure isolation follows one rule throughout: a failure is caught at the
// smallest unit of work (one category, one variable, one write), logged,
// and converted into "no output for this unit". Only an unusable output
// directory aborts a run.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sidracap/coltab"
	"sidracap/extract"
	"sidracap/format"
	"sidracap/manifest"
)

// VariablesFile is the metadata category SeriesStage reads back from disk.
const VariablesFile = "variaveis"

// metadataTargets are the fixed (file name → key path) pairs of the
// metadata stage, written in this order.
var metadataTargets = []struct {
	file string
	path []string
}{
	{VariablesFile, []string{"Variaveis"}},
	{"unidades_de_medida", []string{"UnidadesDeMedida"}},
	{"periodos", []string{"Periodos", "Periodos"}},
	{"conjuntos_periodos", []string{"Periodos", "Conjuntos"}},
	{"notas", []string{"Notas"}},
}

// Fetcher is the HTTP collaborator of both stages. *fetch.Client satisfies
// it; tests substitute a stub.
type Fetcher interface {
	JSON(ctx context.Context, url string) (any, error)
}

// Capture runs the harvest pipeline against one SIDRA table.
type Capture struct {
	cfg         Config
	fetcher     Fetcher
	log         *slog.Logger
	compression format.CompressionType
}

// New creates a Capture from the config and fetch collaborator.
func New(cfg Config, fetcher Fetcher) (*Capture, error) {
	cfg.defaults()

	compression, ok := format.ParseCompression(cfg.Compression)
	if !ok {
		return nil, fmt.Errorf("unknown compression %q", cfg.Compression)
	}

	return &Capture{
		cfg:         cfg,
		fetcher:     fetcher,
		log:         cfg.Logger,
		compression: compression,
	}, nil
}

// Run executes the full pipeline: ensure the output directory, capture
// metadata, then capture numeric series. The only fatal error is an output
// directory that cannot be created; every other failure is logged and the
// affected unit skipped.
func (c *Capture) Run(ctx context.Context) error {
	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	store := c.openManifest()
	if store != nil {
		defer store.Close()
	}

	runID := ""
	if store != nil {
		id, err := store.BeginRun(c.cfg.DefaultTableID)
		if err != nil {
			c.log.Warn("manifest run not recorded", "error", err)
		} else {
			runID = id
		}
	}

	doc, ok := c.runMetadata(ctx, store, runID)
	if !ok {
		c.log.Error("metadata stage failed, series stage skipped")
		c.finishRun(store, runID, "metadata_failed")

		return nil
	}

	tableID := c.cfg.DefaultTableID
	if id := coltab.CellOf(doc["Id"]).Text(); id != "" {
		tableID = id
	}

	c.runSeries(ctx, store, runID, tableID)
	c.finishRun(store, runID, "ok")

	return nil
}

// runMetadata fetches the metadata document and writes the five category
// tables. It returns the document and whether the stage succeeded; a
// failure or empty result for one category never blocks the others.
func (c *Capture) runMetadata(ctx context.Context, store *manifest.Store, runID string) (map[string]any, bool) {
	c.log.Info("metadata stage: fetching", "url", c.cfg.MetadataURL)

	value, err := c.fetcher.JSON(ctx, c.cfg.MetadataURL)
	if err != nil {
		c.log.Error("metadata fetch failed", "error", err)

		return nil, false
	}

	doc, isMap := value.(map[string]any)
	if !isMap {
		c.log.Error("metadata document is not a JSON object")

		return nil, false
	}

	for _, target := range metadataTargets {
		table := extract.Metadata(doc, target.path)
		c.writeTable(store, runID, target.file, table)
	}

	return doc, true
}

// runSeries reads the variables table back from disk and captures one
// numeric series per variable, in file row order. A variable's failure
// never aborts the remaining variables.
func (c *Capture) runSeries(ctx context.Context, store *manifest.Store, runID, tableID string) {
	variablesPath := filepath.Join(c.cfg.OutputDir, VariablesFile)

	variables, err := readVariables(variablesPath)
	if err != nil {
		c.log.Error("series stage skipped: variables table unavailable",
			"path", variablesPath, "error", err)

		return
	}

	c.log.Info("series stage", "table", tableID, "variables", len(variables))

	for _, variable := range variables {
		if ctx.Err() != nil {
			c.log.Warn("series stage interrupted", "error", ctx.Err())

			return
		}

		url := seriesURL(c.cfg.SeriesBaseURL, tableID, variable.ID, variable.Decimals)
		c.log.Info("fetching variable", "id", variable.ID, "name", variable.Name, "url", url)

		value, err := c.fetcher.JSON(ctx, url)
		if err != nil {
			c.log.Error("variable fetch failed", "id", variable.ID, "error", err)

			continue
		}

		envelope, isList := value.([]any)
		if !isList {
			c.log.Error("variable response is not a JSON array", "id", variable.ID)

			continue
		}

		c.writeTable(store, runID, "dados_numericos_"+variable.ID, extract.Series(envelope))
	}
}

// writeTable persists one table file, skipping empty tables. Persistence
// failures are logged and swallowed.
func (c *Capture) writeTable(store *manifest.Store, runID, name string, table *coltab.Table) {
	if table.IsEmpty() {
		c.log.Info("empty table, file skipped", "file", name)

		return
	}

	path := filepath.Join(c.cfg.OutputDir, name)
	if err := coltab.WriteFile(table, path, coltab.WithCompression(c.compression)); err != nil {
		c.log.Error("table write failed", "file", name, "error", err)

		return
	}

	size := 0
	if info, err := os.Stat(path); err == nil {
		size = int(info.Size())
	}
	c.log.Info("table written", "file", name, "rows", table.NumRows(),
		"columns", table.NumCols(), "bytes", size)

	if store != nil && runID != "" {
		if err := store.RecordFile(runID, name, table.NumRows(), table.NumCols(), size); err != nil {
			c.log.Warn("manifest file not recorded", "file", name, "error", err)
		}
	}
}

// openManifest opens the manifest store unless disabled. A manifest failure
// never blocks the capture itself.
func (c *Capture) openManifest() *manifest.Store {
	if c.cfg.DisableManifest {
		return nil
	}

	path := c.cfg.ManifestPath
	if path == "" {
		path = filepath.Join(c.cfg.OutputDir, "manifest.db")
	}

	store, err := manifest.Open(path)
	if err != nil {
		c.log.Warn("manifest disabled for this run", "error", err)

		return nil
	}

	return store
}

func (c *Capture) finishRun(store *manifest.Store, runID, outcome string) {
	if store == nil || runID == "" {
		return
	}
	if err := store.FinishRun(runID, outcome); err != nil {
		c.log.Warn("manifest run not finalized", "error", err)
	}
}
