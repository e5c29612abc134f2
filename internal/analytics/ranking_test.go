package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/wonny/trendlens/internal/table"
)

func TestTopRanking(t *testing.T) {
	rt := &table.RankingTable{
		LabelName: "region",
		ScoreName: "interest",
		Rows: []table.RankingRow{
			{Label: "low", Score: 5},
			{Label: "first-twenty", Score: 20},
			{Label: "second-twenty", Score: 20},
		},
	}

	entries, err := TopRanking(rt, 2)
	if err != nil {
		t.Fatalf("TopRanking() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}

	// Both slots go to the tied 20s, kept in file order.
	if entries[0].Label != "first-twenty" || entries[0].Rank != 1 {
		t.Errorf("entries[0] = %+v, want first-twenty at rank 1", entries[0])
	}
	if entries[1].Label != "second-twenty" || entries[1].Rank != 2 {
		t.Errorf("entries[1] = %+v, want second-twenty at rank 2", entries[1])
	}
}

func TestTopRankingDropsNaNScores(t *testing.T) {
	rt := &table.RankingTable{
		Rows: []table.RankingRow{
			{Label: "a", Score: math.NaN()},
			{Label: "b", Score: 3},
			{Label: "c", Score: math.NaN()},
			{Label: "d", Score: 9},
		},
	}

	entries, err := TopRanking(rt, 10)
	if err != nil {
		t.Fatalf("TopRanking() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Label != "d" || entries[1].Label != "b" {
		t.Errorf("order = %s, %s, want d, b", entries[0].Label, entries[1].Label)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", entries[0].Rank, entries[1].Rank)
	}
}

func TestTopRankingEmptyAndErrors(t *testing.T) {
	empty := &table.RankingTable{}
	entries, err := TopRanking(empty, 5)
	if err != nil {
		t.Fatalf("TopRanking() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}

	_, err = TopRanking(empty, 0)
	if !errors.Is(err, table.ErrInvalidParameter) {
		t.Errorf("k 0 error = %v, want ErrInvalidParameter", err)
	}
}
