package dashboard

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/trendlens/internal/chartconfig"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/internal/table"
	"github.com/wonny/trendlens/pkg/config"
	"github.com/wonny/trendlens/pkg/logger"
)

func newTestBuilder() *Builder {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	return NewBuilder(chartconfig.Default(), log)
}

func testTable(t *testing.T, columns []string, n int) *table.Table {
	t.Helper()
	times := make([]time.Time, n)
	values := make([][]float64, n)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		times[i] = start.AddDate(0, 0, 7*i)
		row := make([]float64, len(columns))
		for j := range columns {
			row[j] = float64(10 + i + j)
		}
		values[i] = row
	}
	tbl, err := table.New(times, columns, values)
	require.NoError(t, err)
	return tbl
}

func testBundle(t *testing.T) *loader.Bundle {
	t.Helper()
	regions, err := table.NewRegion(
		"region",
		[]string{"Seoul", "Busan", "Incheon"},
		[]string{"chatgpt", "gemini"},
		[][]float64{{100, 40}, {75, 60}, {60, 55}},
	)
	require.NoError(t, err)

	return &loader.Bundle{
		Observations: testTable(t, []string{"chatgpt", "gemini"}, 30),
		Regions:      regions,
		Related: &table.RankingTable{
			LabelName: "query",
			ScoreName: "value",
			Rows: []table.RankingRow{
				{Label: "ai chatbot", Score: 100},
				{Label: "gpt", Score: 80},
			},
		},
		Sources: []string{"google_trends_interest.csv"},
	}
}

func TestBuildFullDashboard(t *testing.T) {
	b := newTestBuilder()
	d, err := b.Build(testBundle(t), Params{})
	require.NoError(t, err)

	assert.Equal(t, "Google Trends Dashboard", d.Title)
	assert.NotEmpty(t, d.ProfileHash)
	_, err = time.Parse(time.RFC3339, d.GeneratedAt)
	assert.NoError(t, err, "generated_at must be RFC3339")

	require.NotNil(t, d.Trends)
	assert.Len(t, d.Trends.Series, 2)
	assert.Len(t, d.Trends.Dates, 30)

	require.NotNil(t, d.Yearly)
	require.NotNil(t, d.Monthly)
	require.NotNil(t, d.Correlation)
	assert.Equal(t, []string{"chatgpt", "gemini"}, d.Correlation.Columns)

	require.NotNil(t, d.Peaks)
	assert.Len(t, d.Peaks.Peaks, 5)
	assert.Equal(t, "chatgpt", d.Peaks.Keyword)

	require.NotNil(t, d.Smoothed)
	require.Len(t, d.Smoothed.Series, 2)
	assert.Equal(t, "chatgpt", d.Smoothed.Series[0].Name)
	assert.Equal(t, "chatgpt MA(12)", d.Smoothed.Series[1].Name)
	// First window-1 smoothed points are null.
	for i := 0; i < 11; i++ {
		assert.Nil(t, d.Smoothed.Series[1].Points[i], "point %d", i)
	}
	assert.NotNil(t, d.Smoothed.Series[1].Points[11])

	require.NotNil(t, d.Rolling)
	assert.Contains(t, d.Rolling.Title, "chatgpt vs gemini")

	require.NotNil(t, d.Histogram)
	assert.Equal(t, 20, len(d.Histogram.Buckets))

	require.NotNil(t, d.Regions)
	assert.Equal(t, "region", d.Regions.LabelName)
	assert.Equal(t, "Seoul", d.Regions.Entries[0].Label)

	require.NotNil(t, d.Related)
	assert.Equal(t, "ai chatbot", d.Related.Entries[0].Label)

	assert.Equal(t, []string{"google_trends_interest.csv"}, d.Sources)
}

func TestBuildOmitsAbsentSections(t *testing.T) {
	b := newTestBuilder()
	bundle := &loader.Bundle{
		Observations: testTable(t, []string{"solo"}, 10),
	}

	d, err := b.Build(bundle, Params{})
	require.NoError(t, err)

	assert.Nil(t, d.Regions, "no region file, no region section")
	assert.Nil(t, d.Related, "no related file, no related section")
	assert.Nil(t, d.Correlation, "one keyword cannot correlate")
	assert.Nil(t, d.Rolling, "one keyword has nothing to compare against")

	require.NotNil(t, d.Trends)
	require.NotNil(t, d.Peaks)
	require.NotNil(t, d.Histogram)
}

func TestBuildOverview(t *testing.T) {
	b := newTestBuilder()
	nan := math.NaN()
	tbl, err := table.New(
		[]time.Time{
			time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		},
		[]string{"chatgpt", "gemini"},
		[][]float64{{60, nan}, {70, 30}, {80, nan}},
	)
	require.NoError(t, err)
	bundle := &loader.Bundle{Observations: tbl}

	ov := b.BuildOverview(bundle)
	assert.Equal(t, 3, ov.Rows)
	assert.Equal(t, "2024-01-07", ov.Start)
	assert.Equal(t, "2024-01-21", ov.End)
	assert.Equal(t, 0, ov.Missing["chatgpt"])
	assert.Equal(t, 2, ov.Missing["gemini"])
	assert.False(t, ov.HasRegions)
	assert.False(t, ov.HasRelated)

	require.Len(t, ov.Preview, 3)
	assert.Equal(t, "2024-01-07", ov.Preview[0].Date)
	assert.Nil(t, ov.Preview[0].Values[1], "NaN preview cells are null")
	require.NotNil(t, ov.Preview[0].Values[0])
	assert.Equal(t, float64(60), *ov.Preview[0].Values[0])
}

func TestBuildOverviewPreviewCapped(t *testing.T) {
	b := newTestBuilder()
	bundle := &loader.Bundle{Observations: testTable(t, []string{"kw"}, 30)}

	ov := b.BuildOverview(bundle)
	assert.Len(t, ov.Preview, previewRows)
}

func TestNormalize(t *testing.T) {
	b := newTestBuilder()
	obs := testTable(t, []string{"chatgpt", "gemini", "claude"}, 10)

	t.Run("defaults", func(t *testing.T) {
		p, err := b.Normalize(obs, Params{})
		require.NoError(t, err)
		assert.Equal(t, []string{"chatgpt", "gemini", "claude"}, p.Keywords)
		assert.Equal(t, "chatgpt", p.Keyword)
		assert.Equal(t, "gemini", p.Compare)
		assert.Equal(t, 12, p.Window)
		assert.Equal(t, 20, p.Bins)
	})

	t.Run("compare avoids the focus keyword", func(t *testing.T) {
		p, err := b.Normalize(obs, Params{Keyword: "gemini"})
		require.NoError(t, err)
		assert.Equal(t, "chatgpt", p.Compare)
	})

	t.Run("window clamped into profile bounds", func(t *testing.T) {
		p, err := b.Normalize(obs, Params{Window: 100})
		require.NoError(t, err)
		assert.Equal(t, 24, p.Window)

		p, err = b.Normalize(obs, Params{Window: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, p.Window)
	})

	t.Run("unknown focus keyword", func(t *testing.T) {
		_, err := b.Normalize(obs, Params{Keyword: "nope"})
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
	})

	t.Run("unknown compare keyword", func(t *testing.T) {
		_, err := b.Normalize(obs, Params{Compare: "nope"})
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
	})

	t.Run("unknown trends keyword", func(t *testing.T) {
		_, err := b.Normalize(obs, Params{Keywords: []string{"chatgpt", "nope"}})
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
	})

	t.Run("negative window", func(t *testing.T) {
		_, err := b.Normalize(obs, Params{Window: -4})
		assert.ErrorIs(t, err, table.ErrInvalidParameter)
	})

	t.Run("negative bins", func(t *testing.T) {
		_, err := b.Normalize(obs, Params{Bins: -1})
		assert.ErrorIs(t, err, table.ErrInvalidParameter)
	})
}

func TestRegionChartFallsBackToFirstColumn(t *testing.T) {
	b := newTestBuilder()
	regions, err := table.NewRegion(
		"country",
		[]string{"KR", "JP"},
		[]string{"other"},
		[][]float64{{10}, {20}},
	)
	require.NoError(t, err)

	chart, err := b.RegionChart(regions, "chatgpt", 10)
	require.NoError(t, err)
	assert.Contains(t, chart.Title, "other")
	assert.Equal(t, "JP", chart.Entries[0].Label)
}

func TestBuildErrorsKeepSentinels(t *testing.T) {
	b := newTestBuilder()
	bundle := testBundle(t)

	_, err := b.Build(bundle, Params{Keyword: "missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrUnknownColumn))
}
