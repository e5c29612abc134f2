package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/trendlens/internal/chartconfig"
	"github.com/wonny/trendlens/pkg/config"
	"github.com/wonny/trendlens/pkg/logger"
)

var (
	// Global flags
	envFile      string
	chartProfile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trends",
	Short: "TrendLens - analytics for Google Trends CSV exports",
	Long: `TrendLens

Turns Google Trends CSV exports into dashboards: resampled averages,
correlation matrices, peaks, moving averages and rankings, served as a
JSON API or rendered to a standalone HTML report.

Usage:
  go run ./cmd/trends [command]

Examples:
  go run ./cmd/trends serve
  go run ./cmd/trends report --data-dir ./data --out report.html
  go run ./cmd/trends analyze --data-dir ./data --keyword chatgpt`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().StringVar(&chartProfile, "chart-config", "", "chart profile YAML (built-in defaults when unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the environment configuration shared by every command.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if envFile != "" {
		cfg, err = config.LoadFrom(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// loadProfile resolves the chart profile: the --chart-config flag wins,
// then CHART_CONFIG, then the built-in defaults.
func loadProfile(cfg *config.Config, log *logger.Logger) (*chartconfig.Config, error) {
	path := chartProfile
	if path == "" {
		path = cfg.ChartConfig
	}
	if path == "" {
		return chartconfig.Default(), nil
	}

	profile, _, err := chartconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load chart profile: %w", err)
	}

	for _, warning := range chartconfig.Warn(profile) {
		log.WithField("code", warning.Code).Warn(warning.Message)
	}
	return profile, nil
}
