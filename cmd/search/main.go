// Package main provides a diagnostic CLI for the store search engine. It
// loads the CSV, normalizes it, builds the fuzzy index, and answers one
// query with the same semantics the site search uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Jaxic/BookStoreDir-sub002/internal/config"
	"github.com/Jaxic/BookStoreDir-sub002/internal/geo"
	"github.com/Jaxic/BookStoreDir-sub002/internal/ingest"
	"github.com/Jaxic/BookStoreDir-sub002/internal/logger"
	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/internal/normalize"
	"github.com/Jaxic/BookStoreDir-sub002/internal/report"
	"github.com/Jaxic/BookStoreDir-sub002/internal/search"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Path to input CSV (overrides config)")
	query := flag.String("query", "", "Free-text search query")
	suggest := flag.Bool("suggest", false, "Print ranked name suggestions instead of full results")

	hasWebsite := flag.Bool("has-website", false, "Keep only stores with a website")
	minRating := flag.Float64("min-rating", 0, "Minimum rating (0 disables)")
	province := flag.String("province", "", "Exact province match")
	maxDistance := flag.Float64("max-distance", 0, "Maximum distance in km (0 disables)")
	openWeekends := flag.Bool("open-weekends", false, "Keep only stores open on weekends")
	lat := flag.Float64("lat", 0, "Caller latitude (with -lng, overrides the geolocation provider)")
	lng := flag.Float64("lng", 0, "Caller longitude")
	flag.Parse()

	configPath := *configFile
	if configPath == "" {
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

	log := logger.NewLogger(cfg.Logging.Level)

	pipeline := ingest.NewPipeline(log)

	result, err := pipeline.Run(cfg.Data.CSVPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingestion failed: %v", err))
		os.Exit(1)
	}

	if len(result.Errors) > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d row(s) skipped during ingestion", len(result.Errors)))
	}

	stores := normalize.NewNormalizer().NormalizeAll(result.Records)

	index := search.NewIndexWithThreshold(cfg.Search.MatchThreshold)
	index.Build(stores)

	var locator geo.LocationProvider
	if *lat != 0 || *lng != 0 {
		locator = geo.StaticProvider{Coords: models.Coordinates{Lat: *lat, Lng: *lng}}
	} else {
		locator = geo.NewHTTPProvider(cfg.Geolocation.ProviderURL, cfg.Geolocation.Timeout())
	}

	engine := search.NewEngine(index, locator, log).WithMaxSuggestions(cfg.Search.MaxSuggestions)

	if *suggest {
		names, suggestErr := engine.Suggestions(stores, *query)
		if suggestErr != nil {
			log.Error(fmt.Sprintf("❌ Suggestions failed: %v", suggestErr))
			os.Exit(1)
		}

		for _, name := range names {
			fmt.Println(name)
		}

		return
	}

	filters := search.FilterOptions{
		HasWebsite:   *hasWebsite,
		MinRating:    *minRating,
		Province:     *province,
		MaxDistance:  *maxDistance,
		OpenWeekends: *openWeekends,
	}

	searchResult, err := engine.SearchStores(context.Background(), stores, *query, filters)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Search failed: %v", err))
		os.Exit(1)
	}

	for _, warning := range searchResult.Warnings {
		log.Warn(fmt.Sprintf("⚠️  %s", warning))
	}

	report.WriteStoreTable(os.Stdout, searchResult.Stores)
}
