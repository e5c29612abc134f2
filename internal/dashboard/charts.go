package dashboard

import (
	"fmt"
	"math"

	"github.com/wonny/trendlens/internal/analytics"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/internal/table"
)

const dateLayout = "2006-01-02"

// previewRows is how many head rows the overview carries.
const previewRows = 5

// BuildOverview summarizes a bundle: row count, keywords, date range,
// per-keyword missing counts and a short preview.
func (b *Builder) BuildOverview(bundle *loader.Bundle) Overview {
	obs := bundle.Observations
	columns := obs.Columns()

	ov := Overview{
		Rows:       obs.Len(),
		Keywords:   columns,
		Missing:    make(map[string]int, len(columns)),
		HasRegions: bundle.Regions != nil,
		HasRelated: bundle.Related != nil,
	}
	if obs.Len() > 0 {
		ov.Start = obs.Start().Format(dateLayout)
		ov.End = obs.End().Format(dateLayout)
	}

	for _, name := range columns {
		col, err := obs.Column(name)
		if err != nil {
			continue
		}
		missing := 0
		for _, v := range col {
			if math.IsNaN(v) {
				missing++
			}
		}
		ov.Missing[name] = missing
	}

	n := obs.Len()
	if n > previewRows {
		n = previewRows
	}
	for i := 0; i < n; i++ {
		row := obs.Row(i)
		values := make([]*float64, len(row))
		for j, v := range row {
			values[j] = floatPtr(v)
		}
		ov.Preview = append(ov.Preview, PreviewRow{
			Date:   obs.Time(i).Format(dateLayout),
			Values: values,
		})
	}

	return ov
}

// TrendsChart plots the selected keyword columns over the full date range.
func (b *Builder) TrendsChart(obs *table.Table, keywords []string) (*LineChart, error) {
	chart := &LineChart{
		Title: "Search interest over time",
		Dates: formatTimes(obs),
	}
	for _, kw := range keywords {
		col, err := obs.Column(kw)
		if err != nil {
			return nil, err
		}
		chart.Series = append(chart.Series, Series{Name: kw, Points: floatPtrs(col)})
	}
	return chart, nil
}

// ResampleChart plots calendar averages of every keyword.
func (b *Builder) ResampleChart(obs *table.Table, period analytics.Period) (*LineChart, error) {
	resampled, err := analytics.Resample(obs, period)
	if err != nil {
		return nil, err
	}

	title := "Yearly averages"
	if period == analytics.PeriodMonthly {
		title = "Monthly averages"
	}
	chart := &LineChart{
		Title: title,
		Dates: formatTimes(resampled),
	}
	for _, kw := range resampled.Columns() {
		col, err := resampled.Column(kw)
		if err != nil {
			return nil, err
		}
		chart.Series = append(chart.Series, Series{Name: kw, Points: floatPtrs(col)})
	}
	return chart, nil
}

// CorrelationHeatmap computes the keyword correlation matrix.
func (b *Builder) CorrelationHeatmap(obs *table.Table) *Heatmap {
	m := analytics.Correlate(obs)
	cells := make([][]*float64, len(m.Cells))
	for i, row := range m.Cells {
		cells[i] = floatPtrs(row)
	}
	return &Heatmap{
		Title:   "Keyword correlation",
		Columns: m.Columns,
		Cells:   cells,
	}
}

// PeakChart lists the k highest observations of the focus keyword.
func (b *Builder) PeakChart(obs *table.Table, keyword string, k int) (*PeakList, error) {
	peaks, err := analytics.TopPeaks(obs, keyword, k)
	if err != nil {
		return nil, err
	}
	chart := &PeakList{
		Title:   fmt.Sprintf("Top %d peaks: %s", k, keyword),
		Keyword: keyword,
		Peaks:   make([]PeakPoint, len(peaks)),
	}
	for i, p := range peaks {
		chart.Peaks[i] = PeakPoint{Date: p.Time.Format(dateLayout), Value: p.Value}
	}
	return chart, nil
}

// MovingAverageChart overlays the raw focus series with its moving average.
func (b *Builder) MovingAverageChart(obs *table.Table, keyword string, window int) (*LineChart, error) {
	raw, err := obs.Column(keyword)
	if err != nil {
		return nil, err
	}
	smoothed, err := analytics.MovingAverage(obs, keyword, window)
	if err != nil {
		return nil, err
	}
	return &LineChart{
		Title: fmt.Sprintf("%s with %d-point moving average", keyword, window),
		Dates: formatTimes(obs),
		Series: []Series{
			{Name: keyword, Points: floatPtrs(raw)},
			{Name: fmt.Sprintf("%s MA(%d)", keyword, window), Points: floatPtrs(smoothed)},
		},
	}, nil
}

// RollingCorrelationChart plots the windowed correlation of two keywords.
func (b *Builder) RollingCorrelationChart(obs *table.Table, first, second string, window int) (*LineChart, error) {
	corr, err := analytics.RollingCorrelation(obs, first, second, window)
	if err != nil {
		return nil, err
	}
	return &LineChart{
		Title: fmt.Sprintf("Rolling correlation: %s vs %s (window %d)", first, second, window),
		Dates: formatTimes(obs),
		Series: []Series{
			{Name: fmt.Sprintf("corr(%s, %s)", first, second), Points: floatPtrs(corr)},
		},
	}, nil
}

// HistogramChart plots the value distribution of the focus keyword.
func (b *Builder) HistogramChart(obs *table.Table, keyword string, bins int) (*HistogramChart, error) {
	buckets, err := analytics.Histogram(obs, keyword, bins)
	if err != nil {
		return nil, err
	}
	chart := &HistogramChart{
		Title:   fmt.Sprintf("Distribution of %s", keyword),
		Keyword: keyword,
		Buckets: make([]BucketRange, len(buckets)),
	}
	for i, bk := range buckets {
		chart.Buckets[i] = BucketRange{From: bk.RangeStart, To: bk.RangeEnd, Count: bk.Count}
	}
	return chart, nil
}

// RegionChart ranks regions by the focus keyword's score. When the region
// file does not carry the focus keyword, the first region column stands in.
func (b *Builder) RegionChart(regions *table.RegionTable, keyword string, k int) (*RankingChart, error) {
	if !regions.HasColumn(keyword) {
		columns := regions.Columns()
		if len(columns) == 0 {
			return nil, fmt.Errorf("%w: region table has no keyword columns", table.ErrUnknownColumn)
		}
		keyword = columns[0]
	}
	ranking, err := regions.Ranking(keyword)
	if err != nil {
		return nil, err
	}
	return b.rankingChart(ranking, k, fmt.Sprintf("Top %d regions: %s", k, keyword))
}

// RelatedChart ranks the related queries.
func (b *Builder) RelatedChart(rt *table.RankingTable, k int) (*RankingChart, error) {
	return b.rankingChart(rt, k, fmt.Sprintf("Top %d related queries", k))
}

func (b *Builder) rankingChart(rt *table.RankingTable, k int, title string) (*RankingChart, error) {
	entries, err := analytics.TopRanking(rt, k)
	if err != nil {
		return nil, err
	}
	chart := &RankingChart{
		Title:     title,
		LabelName: rt.LabelName,
		ScoreName: rt.ScoreName,
		Entries:   make([]RankedRow, len(entries)),
	}
	for i, e := range entries {
		chart.Entries[i] = RankedRow{Rank: e.Rank, Label: e.Label, Score: e.Score}
	}
	return chart, nil
}

func formatTimes(t *table.Table) []string {
	times := t.Times()
	out := make([]string, len(times))
	for i, ts := range times {
		out[i] = ts.Format(dateLayout)
	}
	return out
}

func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func floatPtrs(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = floatPtr(v)
	}
	return out
}
