package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/trendlens/internal/dashboard"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/internal/render"
	"github.com/wonny/trendlens/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an HTML dashboard from a CSV folder",
	Long: `Reads Google Trends CSV exports from a folder and renders the full
dashboard into a single HTML file.

Expected files (plain or gzip-compressed):
  google_trends_interest.csv     required
  google_trends_region.csv       optional
  google_trends_ai_related.csv   optional

Example:
  go run ./cmd/trends report --data-dir ./data --out report.html
  go run ./cmd/trends report --data-dir ./data --keyword chatgpt --window 6`,
	RunE: runReport,
}

var (
	reportDataDir  string
	reportOut      string
	reportKeywords []string
	reportKeyword  string
	reportCompare  string
	reportWindow   int
	reportBins     int
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringVar(&reportDataDir, "data-dir", "", "folder with the CSV exports (default: DATA_DIR)")
	reportCmd.Flags().StringVar(&reportOut, "out", "report.html", "output HTML file")
	reportCmd.Flags().StringSliceVar(&reportKeywords, "keywords", nil, "keywords to chart (default: all)")
	reportCmd.Flags().StringVar(&reportKeyword, "keyword", "", "focus keyword (default: first column)")
	reportCmd.Flags().StringVar(&reportCompare, "compare", "", "comparison keyword for the rolling correlation")
	reportCmd.Flags().IntVar(&reportWindow, "window", 0, "moving-average window in observations")
	reportCmd.Flags().IntVar(&reportBins, "bins", 0, "histogram bin count")
}

func runReport(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load chart profile
	profile, err := loadProfile(cfg, log)
	if err != nil {
		return err
	}

	// 4. Load the CSV bundle
	dir := reportDataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	bundle, err := loader.LoadBundle(dir, loader.DefaultFilenames())
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"rows":     bundle.Observations.Len(),
		"keywords": len(bundle.Observations.Columns()),
		"sources":  bundle.Sources,
	}).Info("Bundle loaded")

	// 5. Build the dashboard
	builder := dashboard.NewBuilder(profile, log)
	d, err := builder.Build(bundle, dashboard.Params{
		Keywords: reportKeywords,
		Keyword:  reportKeyword,
		Compare:  reportCompare,
		Window:   reportWindow,
		Bins:     reportBins,
	})
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	// 6. Render to HTML
	out, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := render.New(profile).WriteHTML(out, d); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	fmt.Printf("✅ Report written to %s (%d rows, %d keywords)\n",
		reportOut, bundle.Observations.Len(), len(bundle.Observations.Columns()))
	return nil
}
