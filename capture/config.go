package capture

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints for IBGE table 1737 (IPCA), the dataset this harvester
// was built for. Every field can be overridden by config file or flags.
const (
	DefaultMetadataURL    = "https://sidra.ibge.gov.br/Ajax/Json/Tabela/1/1737?versao=-1"
	DefaultSeriesBaseURL  = "https://apisidra.ibge.gov.br"
	DefaultOutputDir      = "saida_dados"
	DefaultTableID        = "1737"
	DefaultTimeoutSeconds = 30
)

// Config configures a capture run.
type Config struct {
	// MetadataURL is the endpoint returning the table metadata document.
	MetadataURL string `yaml:"metadata_url"`

	// SeriesBaseURL is the base of the numeric values API; the per-variable
	// path is appended to it.
	SeriesBaseURL string `yaml:"series_base_url"`

	// OutputDir receives all table files (and the manifest by default).
	OutputDir string `yaml:"output_dir"`

	// DefaultTableID is used when the metadata document carries no Id.
	DefaultTableID string `yaml:"default_table_id"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Compression selects the table-file codec: "zstd" (default), "none",
	// "s2" or "lz4".
	Compression string `yaml:"compression"`

	// ManifestPath overrides the manifest location
	// (default: OutputDir/manifest.db).
	ManifestPath string `yaml:"manifest_path"`

	// DisableManifest turns manifest bookkeeping off entirely.
	DisableManifest bool `yaml:"disable_manifest"`

	// Logger for progress and failure lines.
	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.MetadataURL == "" {
		c.MetadataURL = DefaultMetadataURL
	}
	if c.SeriesBaseURL == "" {
		c.SeriesBaseURL = DefaultSeriesBaseURL
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.DefaultTableID == "" {
		c.DefaultTableID = DefaultTableID
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads a YAML config file. Missing fields keep their defaults
// (applied later by New).
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
