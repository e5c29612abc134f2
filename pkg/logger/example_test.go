package logger_test

import (
	"errors"

	"github.com/wonny/trendlens/pkg/config"
	"github.com/wonny/trendlens/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Application started")
	log.Warn("Optional table missing")
	log.Error("Failed to parse CSV")

	// Formatted logging
	log.Infof("Loaded %d observations", 261)
	log.Warnf("Window %d clamped to %d", 60, 24)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	datasetLog := log.WithField("dataset_id", "12345")
	datasetLog.Info("Dataset registered")

	// Add multiple fields
	chartLog := log.WithFields(map[string]interface{}{
		"keyword": "chatgpt",
		"rows":    261,
		"window":  12,
		"chart":   "moving-average",
	})
	chartLog.Info("Chart computed")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("interest table missing")
	log.WithError(err).Error("Failed to load dataset folder")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"dir":  "/srv/trends",
			"file": "google_trends_interest.csv",
		}).
		Error("Dataset scan failed")
}
