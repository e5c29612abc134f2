package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Only this package reads environment variables.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string

	// Folder variant: directory scanned for the CSV bundle
	DataDir string

	// Optional dashboard profile (YAML). Empty means built-in defaults.
	ChartConfig string

	// Upload variant
	Upload UploadConfig
	Store  StoreConfig
}

// UploadConfig bounds the multipart upload endpoint.
type UploadConfig struct {
	MaxBytes   int64   // per-request body cap
	RatePerSec float64 // token refill rate for the upload limiter
	Burst      int     // limiter burst size
}

// StoreConfig bounds the in-memory dataset store.
type StoreConfig struct {
	TTL           time.Duration // idle lifetime of an uploaded dataset
	MaxDatasets   int           // hard cap; oldest dataset evicted beyond it
	SweepInterval time.Duration // janitor schedule
}

// Load reads configuration from environment variables,
// probing the usual .env locations first.
func Load() (*Config, error) {
	loadEnvFile()
	return fromEnv()
}

// LoadFrom reads configuration after loading the given .env file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		loadEnvFile()
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DataDir:     getEnv("DATA_DIR", "."),
		ChartConfig: getEnv("CHART_CONFIG", ""),

		Upload: UploadConfig{
			MaxBytes:   getEnvAsInt64("UPLOAD_MAX_BYTES", 8<<20),
			RatePerSec: getEnvAsFloat("UPLOAD_RATE", 5),
			Burst:      getEnvAsInt("UPLOAD_BURST", 10),
		},

		Store: StoreConfig{
			TTL:           getEnvAsDuration("DATASET_TTL", "30m"),
			MaxDatasets:   getEnvAsInt("DATASET_LIMIT", 50),
			SweepInterval: getEnvAsDuration("DATASET_SWEEP_INTERVAL", "5m"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Upload.MaxBytes < 1024 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be at least 1024")
	}
	if c.Upload.RatePerSec <= 0 {
		return fmt.Errorf("UPLOAD_RATE must be positive")
	}
	if c.Upload.Burst < 1 {
		return fmt.Errorf("UPLOAD_BURST must be at least 1")
	}

	if c.Store.TTL < time.Minute {
		return fmt.Errorf("DATASET_TTL must be at least 1 minute")
	}
	if c.Store.MaxDatasets < 1 {
		return fmt.Errorf("DATASET_LIMIT must be at least 1")
	}
	if c.Store.SweepInterval < time.Minute {
		return fmt.Errorf("DATASET_SWEEP_INTERVAL must be at least 1 minute")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
