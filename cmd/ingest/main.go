// Package main provides the ingest command that builds the normalized store
// dataset from the source CSV.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Jaxic/BookStoreDir-sub002/internal/config"
	"github.com/Jaxic/BookStoreDir-sub002/internal/export"
	"github.com/Jaxic/BookStoreDir-sub002/internal/ingest"
	"github.com/Jaxic/BookStoreDir-sub002/internal/logger"
	"github.com/Jaxic/BookStoreDir-sub002/internal/normalize"
	"github.com/Jaxic/BookStoreDir-sub002/internal/report"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Path to input CSV (overrides config)")
	outputPath := flag.String("output", "", "Path to output JSON file (overrides config)")
	skipExport := flag.Bool("no-export", false, "Only print the parse report, do not write the dataset")
	flag.Parse()

	configPath := *configFile
	if configPath == "" {
		// Try default location
		if _, statErr := os.Stat("configs/site.yaml"); statErr == nil {
			configPath = "configs/site.yaml"
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *inputPath != "" {
		cfg.Data.CSVPath = *inputPath
	}

	if *outputPath != "" {
		cfg.Data.OutputPath = *outputPath
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting bookstore ingestion")
	log.Info(fmt.Sprintf("📂 Source: %s", cfg.Data.CSVPath))

	pipeline := ingest.NewPipeline(log)

	result, err := pipeline.Run(cfg.Data.CSVPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingestion failed: %v", err))
		os.Exit(1)
	}

	// Parse report for the console, per-row errors included.
	report.WriteSummary(os.Stdout, result)

	normalizer := normalize.NewNormalizer()
	stores := normalizer.NormalizeAll(result.Records)

	if !*skipExport {
		if err := export.WriteDataset(cfg.Data.OutputPath, result.Fingerprint, stores, cfg.Data.PrettyPrint); err != nil {
			log.Error(fmt.Sprintf("❌ Export failed: %v", err))
			os.Exit(1)
		}

		log.Info(fmt.Sprintf("✅ Saved %d stores to: %s", len(stores), cfg.Data.OutputPath))
	}

	log.Info("✨ Ingestion complete",
		"run_id", result.RunID,
		"records", len(result.Records),
		"errors", len(result.Errors),
		"duration", result.Duration,
	)

	if len(result.Errors) > 0 {
		os.Exit(2)
	}
}
