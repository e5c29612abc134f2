package loader

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wonny/trendlens/internal/table"
)

// ReadRegions parses an interest-by-region CSV. The first column is the
// region label whatever its header says; every remaining column is a keyword
// score series. Cell parsing follows ReadObservations.
func ReadRegions(r io.Reader) (*table.RegionTable, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("region csv needs a label column and at least one keyword column")
	}
	labelName := strings.TrimSpace(header[0])
	columns := make([]string, len(header)-1)
	for j := 1; j < len(header); j++ {
		columns[j-1] = strings.TrimSpace(header[j])
	}

	regions := make([]string, 0, len(records)-1)
	scores := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(columns))
		for j := 1; j < len(record); j++ {
			v, err := parseValue(record[j])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", columns[j-1], i+2, err)
			}
			row[j-1] = v
		}
		regions = append(regions, strings.TrimSpace(record[0]))
		scores = append(scores, row)
	}

	return table.NewRegion(labelName, regions, columns, scores)
}

// ReadRelated parses a related-queries CSV into a ranking table. The label
// and score columns are located by header (query/topic and value/score); a
// two-column file with unrecognized headers is read positionally. Scores
// that do not parse as numbers, like the "Breakout" marker in rising-query
// exports, become NaN and are dropped by ranking.
func ReadRelated(r io.Reader) (*table.RankingTable, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	header := records[0]
	labelIdx, scoreIdx := -1, -1
	for j, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "query", "topic", "related":
			if labelIdx < 0 {
				labelIdx = j
			}
		case "value", "score", "interest":
			if scoreIdx < 0 {
				scoreIdx = j
			}
		}
	}
	if labelIdx < 0 && scoreIdx < 0 && len(header) == 2 {
		labelIdx, scoreIdx = 0, 1
	}
	if labelIdx < 0 || scoreIdx < 0 {
		return nil, fmt.Errorf("related csv: could not locate query and value columns in header %v", header)
	}

	rt := &table.RankingTable{
		LabelName: strings.TrimSpace(header[labelIdx]),
		ScoreName: strings.TrimSpace(header[scoreIdx]),
		Rows:      make([]table.RankingRow, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		rt.Rows = append(rt.Rows, table.RankingRow{
			Label: strings.TrimSpace(record[labelIdx]),
			Score: parseScore(record[scoreIdx]),
		})
	}
	return rt, nil
}

// parseScore is the tolerant variant of parseValue: any cell that does not
// parse as a number is treated as missing.
func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
