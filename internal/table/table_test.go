package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewSortsRows(t *testing.T) {
	// Rows arrive out of order; construction must sort them and keep
	// each value row paired with its timestamp.
	times := []time.Time{d(2024, 3, 1), d(2024, 1, 1), d(2024, 2, 1)}
	values := [][]float64{{30, 300}, {10, 100}, {20, 200}}

	tbl, err := New(times, []string{"alpha", "beta"}, values)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, d(2024, 1, 1), tbl.Time(0))
	assert.Equal(t, d(2024, 2, 1), tbl.Time(1))
	assert.Equal(t, d(2024, 3, 1), tbl.Time(2))

	alpha, err := tbl.Column("alpha")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, alpha)

	beta, err := tbl.Column("beta")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300}, beta)
}

func TestNewRejectsDuplicateTimestamps(t *testing.T) {
	times := []time.Time{d(2024, 1, 1), d(2024, 1, 1)}
	values := [][]float64{{1}, {2}}

	_, err := New(times, []string{"alpha"}, values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate timestamp")
}

func TestNewRejectsBadColumns(t *testing.T) {
	times := []time.Time{d(2024, 1, 1)}

	_, err := New(times, []string{"alpha", "alpha"}, [][]float64{{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")

	_, err = New(times, []string{""}, [][]float64{{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestNewRejectsShapeMismatch(t *testing.T) {
	times := []time.Time{d(2024, 1, 1), d(2024, 2, 1)}

	_, err := New(times, []string{"alpha"}, [][]float64{{1}})
	require.Error(t, err)

	_, err = New(times, []string{"alpha"}, [][]float64{{1}, {2, 3}})
	require.Error(t, err)
}

func TestColumnCopiesAndErrors(t *testing.T) {
	tbl, err := New(
		[]time.Time{d(2024, 1, 1), d(2024, 2, 1)},
		[]string{"alpha"},
		[][]float64{{1}, {2}},
	)
	require.NoError(t, err)

	col, err := tbl.Column("alpha")
	require.NoError(t, err)
	col[0] = 999

	again, err := tbl.Column("alpha")
	require.NoError(t, err)
	assert.Equal(t, float64(1), again[0], "mutating a returned column must not affect the table")

	_, err = tbl.Column("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestStartEnd(t *testing.T) {
	empty, err := New(nil, []string{"alpha"}, nil)
	require.NoError(t, err)
	assert.True(t, empty.Start().IsZero())
	assert.True(t, empty.End().IsZero())

	tbl, err := New(
		[]time.Time{d(2024, 2, 1), d(2024, 1, 1), d(2024, 3, 1)},
		[]string{"alpha"},
		[][]float64{{2}, {1}, {3}},
	)
	require.NoError(t, err)
	assert.Equal(t, d(2024, 1, 1), tbl.Start())
	assert.Equal(t, d(2024, 3, 1), tbl.End())
}

func TestNewKeepsNaN(t *testing.T) {
	tbl, err := New(
		[]time.Time{d(2024, 1, 1), d(2024, 2, 1)},
		[]string{"alpha"},
		[][]float64{{math.NaN()}, {2}},
	)
	require.NoError(t, err)

	col, err := tbl.Column("alpha")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(col[0]))
	assert.Equal(t, float64(2), col[1])
}

func TestRegionRanking(t *testing.T) {
	rt, err := NewRegion(
		"region",
		[]string{"Seoul", "Busan", "Incheon"},
		[]string{"chatgpt", "gemini"},
		[][]float64{{100, 40}, {75, 60}, {75, math.NaN()}},
	)
	require.NoError(t, err)
	require.Equal(t, 3, rt.Len())
	assert.Equal(t, []string{"chatgpt", "gemini"}, rt.Columns())
	assert.True(t, rt.HasColumn("gemini"))
	assert.False(t, rt.HasColumn("claude"))

	ranking, err := rt.Ranking("gemini")
	require.NoError(t, err)
	assert.Equal(t, "region", ranking.LabelName)
	assert.Equal(t, "gemini", ranking.ScoreName)
	require.Equal(t, 3, ranking.Len())
	assert.Equal(t, RankingRow{Label: "Seoul", Score: 40}, ranking.Rows[0])
	assert.Equal(t, RankingRow{Label: "Busan", Score: 60}, ranking.Rows[1])
	assert.Equal(t, "Incheon", ranking.Rows[2].Label)
	assert.True(t, math.IsNaN(ranking.Rows[2].Score))

	_, err = rt.Ranking("claude")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestNewRegionRejectsShapeMismatch(t *testing.T) {
	_, err := NewRegion("region", []string{"Seoul"}, []string{"chatgpt"}, [][]float64{{1}, {2}})
	require.Error(t, err)

	_, err = NewRegion("region", []string{"Seoul"}, []string{"a", "a"}, [][]float64{{1, 2}})
	require.Error(t, err)
}
