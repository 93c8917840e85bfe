// Command sidracap captures one IBGE/SIDRA table: metadata categories and
// per-variable numeric series, written as columnar table files.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"sidracap/capture"
	"sidracap/fetch"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	outputDir := flag.String("output", "", "output directory (overrides config)")
	tableID := flag.String("table", "", "default table id (overrides config)")
	compression := flag.String("compression", "", "table-file codec: zstd, none, s2 or lz4")
	schedule := flag.String("schedule", "", "cron expression; rerun the capture on this schedule")
	noManifest := flag.Bool("no-manifest", false, "disable the SQLite capture manifest")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	var lvl slog.Level
	switch *logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	var cfg capture.Config
	if *configPath != "" {
		loaded, err := capture.LoadConfig(*configPath)
		if err != nil {
			slog.Error("config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *tableID != "" {
		cfg.DefaultTableID = *tableID
	}
	if *compression != "" {
		cfg.Compression = *compression
	}
	if *noManifest {
		cfg.DisableManifest = true
	}
	cfg.Logger = logger

	c, err := capture.New(cfg, fetch.NewClient(cfg.Timeout()))
	if err != nil {
		slog.Error("setup", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *schedule == "" {
		if err := c.Run(ctx); err != nil {
			slog.Error("capture", "error", err)
			os.Exit(1)
		}

		return
	}

	runScheduled(ctx, c, *schedule)
}

// runScheduled reruns the full capture on the cron schedule until the
// context is cancelled. A failed run is logged and the schedule keeps going.
func runScheduled(ctx context.Context, c *capture.Capture, schedule string) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(schedule, func() {
		if err := c.Run(ctx); err != nil {
			slog.Error("scheduled capture", "error", err)
		}
	})
	if err != nil {
		slog.Error("invalid schedule", "expr", schedule, "error", err)
		os.Exit(1)
	}

	slog.Info("scheduler started", "expr", schedule)
	scheduler.Start()

	<-ctx.Done()
	slog.Info("shutting down")
	<-scheduler.Stop().Done()
}
