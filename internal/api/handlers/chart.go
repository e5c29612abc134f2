package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/trendlens/internal/analytics"
	"github.com/wonny/trendlens/internal/chartconfig"
	"github.com/wonny/trendlens/internal/dashboard"
	"github.com/wonny/trendlens/internal/datastore"
	"github.com/wonny/trendlens/internal/render"
	"github.com/wonny/trendlens/internal/table"
	"github.com/wonny/trendlens/pkg/logger"
)

// ChartHandler serves the per-section analytics endpoints and the full
// dashboard. Every endpoint recomputes from the stored tables.
type ChartHandler struct {
	store    *datastore.Store
	builder  *dashboard.Builder
	renderer *render.Renderer
	cfg      *chartconfig.Config
	logger   *logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(store *datastore.Store, builder *dashboard.Builder, renderer *render.Renderer, cfg *chartconfig.Config, log *logger.Logger) *ChartHandler {
	return &ChartHandler{
		store:    store,
		builder:  builder,
		renderer: renderer,
		cfg:      cfg,
		logger:   log,
	}
}

// Dashboard returns every chart section in one payload.
// GET /api/datasets/{id}/dashboard
func (h *ChartHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	out, err := h.builder.Build(d.Bundle, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// Trends returns the raw interest series for the selected keywords.
// GET /api/datasets/{id}/trends?keywords=a,b
func (h *ChartHandler) Trends(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	obs := d.Bundle.Observations
	params, err := h.builder.Normalize(obs, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	chart, err := h.builder.TrendsChart(obs, params.Keywords)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Resample returns yearly or monthly mean series.
// GET /api/datasets/{id}/resample?period=monthly
func (h *ChartHandler) Resample(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.prepare(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("period")
	if raw == "" {
		raw = "monthly"
	}
	period, err := analytics.ParsePeriod(raw)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	chart, err := h.builder.ResampleChart(d.Bundle.Observations, period)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Correlation returns the pairwise correlation matrix over all keywords.
// GET /api/datasets/{id}/correlation
func (h *ChartHandler) Correlation(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.prepare(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.builder.CorrelationHeatmap(d.Bundle.Observations))
}

// Peaks returns the highest observations of the focus keyword.
// GET /api/datasets/{id}/peaks?keyword=a&k=5
func (h *ChartHandler) Peaks(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	obs := d.Bundle.Observations
	params, err := h.builder.Normalize(obs, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	k, err := intParam(r.URL.Query(), "k")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if k == 0 {
		k = h.cfg.Peaks.K
	}

	chart, err := h.builder.PeakChart(obs, params.Keyword, k)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// MovingAverage returns the focus series with its smoothed overlay.
// GET /api/datasets/{id}/moving-average?keyword=a&window=12
func (h *ChartHandler) MovingAverage(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	obs := d.Bundle.Observations
	params, err := h.builder.Normalize(obs, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	chart, err := h.builder.MovingAverageChart(obs, params.Keyword, params.Window)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// RollingCorrelation returns the windowed correlation of two keywords.
// GET /api/datasets/{id}/rolling-correlation?keyword=a&compare=b&window=12
func (h *ChartHandler) RollingCorrelation(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	requested := params.Window
	obs := d.Bundle.Observations
	params, err := h.builder.Normalize(obs, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	if params.Compare == "" {
		respondError(w, http.StatusBadRequest, "rolling correlation needs a second keyword")
		return
	}

	// An explicit window wins, otherwise the profile's rolling window.
	window := h.cfg.Correlation.RollingWindow
	if requested != 0 {
		window = params.Window
	}

	chart, err := h.builder.RollingCorrelationChart(obs, params.Keyword, params.Compare, window)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Histogram returns the value distribution of the focus keyword.
// GET /api/datasets/{id}/histogram?keyword=a&bins=20
func (h *ChartHandler) Histogram(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	obs := d.Bundle.Observations
	params, err := h.builder.Normalize(obs, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	chart, err := h.builder.HistogramChart(obs, params.Keyword, params.Bins)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Regions ranks regions by interest in the focus keyword.
// GET /api/datasets/{id}/regions?keyword=a&k=10
func (h *ChartHandler) Regions(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if d.Bundle.Regions == nil {
		respondError(w, http.StatusNotFound, "dataset has no region table")
		return
	}

	params, err := h.builder.Normalize(d.Bundle.Observations, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	k, err := intParam(r.URL.Query(), "k")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if k == 0 {
		k = h.cfg.Rankings.Regions
	}

	chart, err := h.builder.RegionChart(d.Bundle.Regions, params.Keyword, k)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Related ranks related queries by score.
// GET /api/datasets/{id}/related?k=10
func (h *ChartHandler) Related(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if d.Bundle.Related == nil {
		respondError(w, http.StatusNotFound, "dataset has no related-query table")
		return
	}

	k, err := intParam(r.URL.Query(), "k")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if k == 0 {
		k = h.cfg.Rankings.Related
	}

	chart, err := h.builder.RelatedChart(d.Bundle.Related, k)
	if err != nil {
		h.respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// Report renders the full dashboard as a standalone HTML page.
// GET /api/datasets/{id}/report
func (h *ChartHandler) Report(w http.ResponseWriter, r *http.Request) {
	d, params, ok := h.prepare(w, r)
	if !ok {
		return
	}

	out, err := h.builder.Build(d.Bundle, params)
	if err != nil {
		h.respondChartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.WriteHTML(w, out); err != nil {
		h.logger.WithError(err).Error("Failed to render report")
	}
}

// prepare resolves the dataset and parses the shared query parameters.
func (h *ChartHandler) prepare(w http.ResponseWriter, r *http.Request) (*datastore.Dataset, dashboard.Params, bool) {
	d, err := h.store.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "dataset not found")
		return nil, dashboard.Params{}, false
	}

	params, err := chartParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, dashboard.Params{}, false
	}
	return d, params, true
}

// respondChartError maps analytics failures onto HTTP statuses. Unknown
// columns and bad parameters are the caller's fault, the rest is ours.
func (h *ChartHandler) respondChartError(w http.ResponseWriter, err error) {
	if errors.Is(err, table.ErrUnknownColumn) || errors.Is(err, table.ErrInvalidParameter) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.WithError(err).Error("Failed to build chart")
	respondError(w, http.StatusInternalServerError, "failed to build chart")
}

// chartParams reads the query parameters shared by the chart endpoints.
func chartParams(r *http.Request) (dashboard.Params, error) {
	q := r.URL.Query()
	p := dashboard.Params{
		Keyword: q.Get("keyword"),
		Compare: q.Get("compare"),
	}

	if raw := q.Get("keywords"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				p.Keywords = append(p.Keywords, k)
			}
		}
	}

	var err error
	if p.Window, err = intParam(q, "window"); err != nil {
		return p, err
	}
	if p.Bins, err = intParam(q, "bins"); err != nil {
		return p, err
	}
	return p, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	return v, nil
}
