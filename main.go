package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"yield-optimizer/config"
	"yield-optimizer/models"
	"yield-optimizer/services"
	"yield-optimizer/storage"
	"yield-optimizer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("=== Yield Optimizer starting ===")
	logger.Info("Config: input %s | as of %d | concurrency %d | postgres %t",
		cfg.InputCSVPath, cfg.AsOfYear, cfg.MaxConcurrency, cfg.PostgresEnabled)

	// Configuration errors abort before any listing is read or scored.
	profiles, err := config.LoadMarketProfiles(cfg.MarketDataPath)
	if err != nil {
		exitOnConfigError(logger, err)
	}
	scoring, err := config.LoadScoringConfig(cfg.ModelParamsPath)
	if err != nil {
		exitOnConfigError(logger, err)
	}
	markets, err := services.NewMarketLookup(profiles)
	if err != nil {
		exitOnConfigError(logger, err)
	}

	var source storage.RawListingReader = storage.NewCSVReader(cfg.InputCSVPath)
	rawListings, err := source.ReadRaw()
	if err != nil {
		logger.Error("Failed to read listings: %v", err)
		os.Exit(1)
	}
	if len(rawListings) == 0 {
		logger.Error("No listings found in %s. Exiting.", cfg.InputCSVPath)
		os.Exit(1)
	}

	cleaner := services.NewCleaner(logger)
	listings := cleaner.Clean(rawListings)
	if len(listings) == 0 {
		logger.Error("All listings were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	pipeline := services.NewPipeline(markets, scoring, cfg.AsOfYear, cfg.MaxConcurrency, logger)
	result, err := pipeline.Run(ctx, listings)
	if err != nil {
		logger.Error("Scoring failed: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.OutputCSVPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := writeRanking(csvWriter, result.Ranked); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Final ranking saved to %s", cfg.OutputCSVPath)
	}

	reportSvc := services.NewReportService(logger)
	report := reportSvc.Generate(result, cfg.TopN)
	if cfg.PostgresEnabled {
		if stored := persist(ctx, cfg, logger, result); len(stored) > 0 {
			report.TopDeals = stored
		}
	}
	reportSvc.Print(report)

	fmt.Printf("  Done. Ranking → %s\n\n", cfg.OutputCSVPath)
}

func writeRanking(w storage.ScoredListingWriter, ranked []*models.ScoredListing) error {
	defer w.Close()
	return w.Write(ranked)
}

// persist stores the ranking in PostgreSQL and reads the top deals back.
// Failures are logged and nil is returned so the in-memory ranking is reported.
func persist(ctx context.Context, cfg *config.Config, logger *utils.Logger, result *models.RunResult) []*models.ScoredListing {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return nil
	}
	defer pgWriter.Close()

	if err := pgWriter.Save(ctx, result.Ranked, result.AsOfYear); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return nil
	}
	logger.Info("Ranking stored in PostgreSQL (table: scored_listings)")

	top, err := pgWriter.FetchTop(ctx, cfg.TopN)
	if err != nil {
		logger.Error("Failed to fetch top deals from DB: %v", err)
		return nil
	}
	return top
}

func exitOnConfigError(logger *utils.Logger, err error) {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		logger.Error("Configuration error, nothing was scored: %v", cfgErr)
	} else {
		logger.Error("Failed to load configuration: %v", err)
	}
	os.Exit(1)
}
