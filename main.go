package main

import (
	"fmt"
	"os"

	"hospital-scraper/config"
	"hospital-scraper/scraper/maps"
	"hospital-scraper/services"
	"hospital-scraper/storage"
	"hospital-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewFileLogger(cfg.LogFile)
	defer logger.Close()

	logger.Info("=== Hospital Review Scraper starting ===")
	logger.Info("Config — location: %s | hospitals: %d | reviews/hospital: %d | delay: %d-%dms | format: %s",
		cfg.Location, cfg.MaxHospitals, cfg.MaxReviews, cfg.MinDelayMs, cfg.MaxDelayMs, cfg.OutputFormat)

	var listingWriters []storage.ListingWriter
	var reviewWriters []storage.ReviewWriter
	var jsonWriter *storage.JSONWriter

	if cfg.WriteCSV() {
		csvWriter, err := storage.NewCSVWriter(cfg.OutputDir, cfg.Location)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			os.Exit(1)
		}
		listingWriters = append(listingWriters, csvWriter)
		reviewWriters = append(reviewWriters, csvWriter)
		logger.Info("CSV output → %s", csvWriter.Dir())
	}

	if cfg.WriteJSON() {
		var err error
		jsonWriter, err = storage.NewJSONWriter(cfg.OutputDir, cfg.Location)
		if err != nil {
			logger.Error("Failed to create JSON writer: %v", err)
			os.Exit(1)
		}
		reviewWriters = append(reviewWriters, jsonWriter)
	}

	if cfg.SaveToDB {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), cfg.Location)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()
		listingWriters = append(listingWriters, pgWriter)
		reviewWriters = append(reviewWriters, pgWriter)
		logger.Info("PostgreSQL persistence enabled")
	}

	validator := services.NewValidator(logger)
	mapsScraper := maps.New(cfg, logger, validator)

	result, err := mapsScraper.Run(listingWriters, reviewWriters)
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}

	if jsonWriter != nil {
		if err := jsonWriter.Flush(); err != nil {
			logger.Error("JSON write failed: %v", err)
		}
	}

	if len(result.Hospitals) == 0 {
		logger.Warn("Run finished with no hospitals — nothing was written")
		return
	}

	reportSvc := services.NewReportService(logger)
	report := reportSvc.Generate(cfg.Location, result.Hospitals, result.Reviews, result.Rejected)
	reportSvc.Print(report)

	fmt.Printf("  Done. %d hospitals, %d reviews → %s\n\n",
		len(result.Hospitals), len(result.Reviews), cfg.OutputDir)
}
