// Package dashboard turns a loaded bundle into the fixed chart sequence of
// the Trends dashboard: overview, interest lines, yearly and monthly
// averages, correlation heatmap, top peaks, moving average, rolling
// correlation, histogram and the region / related-query rankings. The HTTP
// API and the report command both build their output from this one payload.
package dashboard

import (
	"fmt"
	"time"

	"github.com/wonny/trendlens/internal/analytics"
	"github.com/wonny/trendlens/internal/chartconfig"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/internal/table"
	"github.com/wonny/trendlens/pkg/logger"
)

// Params selects what the charts focus on. Zero values mean "use the
// profile default": all keywords, the first column as focus, the second as
// comparison, and the configured window and bin count.
type Params struct {
	Keywords []string // columns shown in the trends chart
	Keyword  string   // focus keyword for peaks, smoothing, histogram, regions
	Compare  string   // second keyword for the rolling correlation
	Window   int      // moving-average window, observation count
	Bins     int      // histogram bin count
}

// Builder computes dashboards against one chart profile.
type Builder struct {
	cfg *chartconfig.Config
	log *logger.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg *chartconfig.Config, log *logger.Logger) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// Build computes the full chart sequence for a bundle. Everything is
// recomputed from the tables on every call.
func (b *Builder) Build(bundle *loader.Bundle, params Params) (*Dashboard, error) {
	params, err := b.Normalize(bundle.Observations, params)
	if err != nil {
		return nil, err
	}

	obs := bundle.Observations
	d := &Dashboard{
		Title:       b.cfg.Meta.Title,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Sources:     bundle.Sources,
		Overview:    b.BuildOverview(bundle),
	}
	if hash, err := chartconfig.Hash(b.cfg); err == nil {
		d.ProfileHash = hash
	}

	if d.Trends, err = b.TrendsChart(obs, params.Keywords); err != nil {
		return nil, err
	}
	if d.Yearly, err = b.ResampleChart(obs, analytics.PeriodYearly); err != nil {
		return nil, err
	}
	if d.Monthly, err = b.ResampleChart(obs, analytics.PeriodMonthly); err != nil {
		return nil, err
	}

	// The heatmap needs at least two keywords to say anything.
	if len(obs.Columns()) >= 2 {
		d.Correlation = b.CorrelationHeatmap(obs)
	}

	if d.Peaks, err = b.PeakChart(obs, params.Keyword, b.cfg.Peaks.K); err != nil {
		return nil, err
	}
	if d.Smoothed, err = b.MovingAverageChart(obs, params.Keyword, params.Window); err != nil {
		return nil, err
	}

	if params.Compare != "" {
		d.Rolling, err = b.RollingCorrelationChart(obs, params.Keyword, params.Compare, b.cfg.Correlation.RollingWindow)
		if err != nil {
			return nil, err
		}
	}

	if d.Histogram, err = b.HistogramChart(obs, params.Keyword, params.Bins); err != nil {
		return nil, err
	}

	if bundle.Regions != nil {
		d.Regions, err = b.RegionChart(bundle.Regions, params.Keyword, b.cfg.Rankings.Regions)
		if err != nil {
			return nil, err
		}
	}
	if bundle.Related != nil {
		d.Related, err = b.RelatedChart(bundle.Related, b.cfg.Rankings.Related)
		if err != nil {
			return nil, err
		}
	}

	b.log.WithFields(map[string]interface{}{
		"rows":     obs.Len(),
		"keywords": len(obs.Columns()),
		"focus":    params.Keyword,
	}).Debug("dashboard built")

	return d, nil
}

// Normalize fills parameter defaults from the profile and validates the
// rest, so the chart endpoints and Build agree on semantics: an unset focus
// keyword becomes the first column, an unset comparison the first other
// column, and windows are clamped into the profile bounds.
func (b *Builder) Normalize(obs *table.Table, params Params) (Params, error) {
	columns := obs.Columns()
	if len(columns) == 0 {
		return params, fmt.Errorf("%w: table has no keyword columns", table.ErrInvalidParameter)
	}

	if len(params.Keywords) == 0 {
		params.Keywords = columns
	} else {
		for _, kw := range params.Keywords {
			if !obs.HasColumn(kw) {
				return params, fmt.Errorf("%w: %q", table.ErrUnknownColumn, kw)
			}
		}
	}

	if params.Keyword == "" {
		params.Keyword = columns[0]
	} else if !obs.HasColumn(params.Keyword) {
		return params, fmt.Errorf("%w: %q", table.ErrUnknownColumn, params.Keyword)
	}

	if params.Compare == "" {
		// First column that differs from the focus keyword, if any.
		for _, c := range columns {
			if c != params.Keyword {
				params.Compare = c
				break
			}
		}
	} else if !obs.HasColumn(params.Compare) {
		return params, fmt.Errorf("%w: %q", table.ErrUnknownColumn, params.Compare)
	}

	switch {
	case params.Window == 0:
		params.Window = b.cfg.Smoothing.DefaultWindow
	case params.Window < 1:
		return params, fmt.Errorf("%w: window must be at least 1, got %d", table.ErrInvalidParameter, params.Window)
	default:
		params.Window = b.cfg.Smoothing.Clamp(params.Window)
	}

	switch {
	case params.Bins == 0:
		params.Bins = b.cfg.Histogram.Bins
	case params.Bins < 1:
		return params, fmt.Errorf("%w: bins must be at least 1, got %d", table.ErrInvalidParameter, params.Bins)
	}

	return params, nil
}
