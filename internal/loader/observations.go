package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/trendlens/internal/table"
)

// Date layouts seen in real Trends exports, most specific first.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ReadObservations parses an interest-over-time CSV. The first column must be
// the date column (headers date, week, month or day, any case); an isPartial
// column is dropped; every remaining column is a keyword series. Empty, NA,
// NaN and null cells become NaN. Any other non-numeric cell in a keyword
// column is an error naming the column. Rows are sorted by date and duplicate
// dates are rejected.
func ReadObservations(r io.Reader) (*table.Table, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	header := records[0]
	if !isDateHeader(header[0]) {
		return nil, fmt.Errorf("first column %q is not a date column", header[0])
	}

	// Columns kept as keyword series, by source index.
	keep := make([]int, 0, len(header)-1)
	names := make([]string, 0, len(header)-1)
	for j := 1; j < len(header); j++ {
		name := strings.TrimSpace(header[j])
		if strings.EqualFold(name, "isPartial") {
			continue
		}
		keep = append(keep, j)
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no keyword columns after %q", header[0])
	}

	times := make([]time.Time, 0, len(records)-1)
	values := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		ts, err := parseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		row := make([]float64, len(keep))
		for jj, j := range keep {
			v, err := parseValue(record[j])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", names[jj], i+2, err)
			}
			row[jj] = v
		}
		times = append(times, ts)
		values = append(values, row)
	}

	return table.New(times, names, values)
}

// readAll reads every CSV record and requires at least a header row.
func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: missing header row")
	}
	// Strip a UTF-8 BOM so the first header matches by name.
	records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	return records, nil
}

func isDateHeader(h string) bool {
	switch strings.ToLower(strings.TrimSpace(h)) {
	case "date", "week", "month", "day":
		return true
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseValue converts one observation cell. Missing markers become NaN;
// anything else must parse as a float.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", s)
	}
	return v, nil
}
