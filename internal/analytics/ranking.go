package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonny/trendlens/internal/table"
)

// RankedEntry is one row of a ranking result.
type RankedEntry struct {
	Rank  int
	Label string
	Score float64
}

// TopRanking returns the k highest-scored rows of a ranking table. Rows with
// NaN scores are dropped. The sort is stable and descending, so rows with
// equal scores keep their source order. Ranks are 1-based.
func TopRanking(rt *table.RankingTable, k int) ([]RankedEntry, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", table.ErrInvalidParameter, k)
	}

	entries := make([]RankedEntry, 0, len(rt.Rows))
	for _, row := range rt.Rows {
		if math.IsNaN(row.Score) {
			continue
		}
		entries = append(entries, RankedEntry{Label: row.Label, Score: row.Score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > k {
		entries = entries[:k]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
