package table

import "fmt"

// RankingRow is one labeled score in a ranking table.
type RankingRow struct {
	Label string
	Score float64
}

// RankingTable is an ordered list of labeled scores, e.g. interest by region
// or related-query weights. Row order is the order of the source file; ranking
// operations use it to break ties. Scores may be NaN (missing).
type RankingTable struct {
	LabelName string // header of the label column, for display
	ScoreName string // header of the score column, for display
	Rows      []RankingRow
}

// Len returns the number of rows.
func (rt *RankingTable) Len() int {
	return len(rt.Rows)
}

// RegionTable holds per-region scores for one or more keywords: one row per
// region label, one numeric column per keyword.
type RegionTable struct {
	labelName string
	regions   []string
	columns   []string
	scores    [][]float64 // scores[i][j] belongs to regions[i], columns[j]
	index     map[string]int
}

// NewRegion builds a RegionTable. Row order is preserved; inputs are copied.
func NewRegion(labelName string, regions []string, columns []string, scores [][]float64) (*RegionTable, error) {
	if len(scores) != len(regions) {
		return nil, fmt.Errorf("row count mismatch: %d regions, %d score rows", len(regions), len(scores))
	}

	index := make(map[string]int, len(columns))
	for j, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", j)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = j
	}

	rt := &RegionTable{
		labelName: labelName,
		regions:   append([]string(nil), regions...),
		columns:   append([]string(nil), columns...),
		scores:    make([][]float64, len(scores)),
		index:     index,
	}
	for i, row := range scores {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		rt.scores[i] = append([]float64(nil), row...)
	}

	return rt, nil
}

// Len returns the number of regions.
func (rt *RegionTable) Len() int {
	return len(rt.regions)
}

// Columns returns the keyword column names in their original order.
func (rt *RegionTable) Columns() []string {
	return append([]string(nil), rt.columns...)
}

// HasColumn reports whether the named keyword column exists.
func (rt *RegionTable) HasColumn(name string) bool {
	_, ok := rt.index[name]
	return ok
}

// Ranking projects one keyword column into a RankingTable, preserving row order.
func (rt *RegionTable) Ranking(keyword string) (*RankingTable, error) {
	j, ok := rt.index[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, keyword)
	}
	out := &RankingTable{
		LabelName: rt.labelName,
		ScoreName: keyword,
		Rows:      make([]RankingRow, len(rt.regions)),
	}
	for i, region := range rt.regions {
		out.Rows[i] = RankingRow{Label: region, Score: rt.scores[i][j]}
	}
	return out, nil
}
