package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/trendlens/internal/analytics"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print a terminal summary of a CSV folder",
	Long: `Loads Google Trends CSV exports from a folder and prints a compact
summary: table shape, focus keyword statistics, top peaks and the
correlation matrix.

Example:
  go run ./cmd/trends analyze --data-dir ./data
  go run ./cmd/trends analyze --data-dir ./data --keyword chatgpt --top 10`,
	RunE: runAnalyze,
}

var (
	analyzeDataDir string
	analyzeKeyword string
	analyzeTop     int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzeDataDir, "data-dir", "", "folder with the CSV exports (default: DATA_DIR)")
	analyzeCmd.Flags().StringVar(&analyzeKeyword, "keyword", "", "focus keyword (default: first column)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 5, "how many peaks to list")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TrendLens Data Summary ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load the CSV bundle
	dir := analyzeDataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	bundle, err := loader.LoadBundle(dir, loader.DefaultFilenames())
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	obs := bundle.Observations

	log.WithField("sources", bundle.Sources).Debug("Bundle loaded")

	// 4. Table shape
	fmt.Printf("\nRows:      %d\n", obs.Len())
	fmt.Printf("Keywords:  %s\n", strings.Join(obs.Columns(), ", "))
	if obs.Len() > 0 {
		fmt.Printf("Range:     %s to %s\n",
			obs.Start().Format("2006-01-02"), obs.End().Format("2006-01-02"))
	}

	// 5. Focus keyword statistics
	keyword := analyzeKeyword
	if keyword == "" {
		keyword = obs.Columns()[0]
	}
	series, err := obs.Column(keyword)
	if err != nil {
		return err
	}

	count := 0
	sum, min, max := 0.0, math.NaN(), math.NaN()
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		count++
		sum += v
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}

	fmt.Printf("\nFocus keyword: %s\n", keyword)
	fmt.Printf("  observed: %d of %d\n", count, len(series))
	if count > 0 {
		fmt.Printf("  mean:     %.2f\n", sum/float64(count))
		fmt.Printf("  min/max:  %.1f / %.1f\n", min, max)
	}

	// 6. Top peaks
	peaks, err := analytics.TopPeaks(obs, keyword, analyzeTop)
	if err != nil {
		return fmt.Errorf("find peaks: %w", err)
	}
	fmt.Printf("\nTop %d peaks:\n", len(peaks))
	for i, p := range peaks {
		fmt.Printf("  %d. %s  %.1f\n", i+1, p.Time.Format("2006-01-02"), p.Value)
	}

	// 7. Correlation matrix
	if len(obs.Columns()) >= 2 {
		matrix := analytics.Correlate(obs)

		fmt.Println("\nCorrelation matrix:")
		fmt.Printf("  %-12s", "")
		for _, c := range matrix.Columns {
			fmt.Printf(" %10s", truncate(c, 10))
		}
		fmt.Println()
		for i, c := range matrix.Columns {
			fmt.Printf("  %-12s", truncate(c, 12))
			for j := range matrix.Columns {
				if math.IsNaN(matrix.Cells[i][j]) {
					fmt.Printf(" %10s", "--")
				} else {
					fmt.Printf(" %10.2f", matrix.Cells[i][j])
				}
			}
			fmt.Println()
		}
	}

	// 8. Regions, when the export includes them
	if bundle.Regions != nil && bundle.Regions.HasColumn(keyword) {
		ranking, err := bundle.Regions.Ranking(keyword)
		if err != nil {
			return err
		}
		entries, err := analytics.TopRanking(ranking, analyzeTop)
		if err != nil {
			return err
		}

		fmt.Printf("\nTop %d regions:\n", len(entries))
		for _, e := range entries {
			fmt.Printf("  %d. %-20s %.1f\n", e.Rank, truncate(e.Label, 20), e.Score)
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
