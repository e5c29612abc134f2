// Package render writes a dashboard payload as a standalone HTML page of
// go-echarts charts, one chart per section, in the fixed dashboard order.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wonny/trendlens/internal/chartconfig"
	"github.com/wonny/trendlens/internal/dashboard"
)

const (
	chartWidth  = "1100px"
	chartHeight = "420px"
)

// Renderer turns dashboards into HTML pages.
type Renderer struct {
	theme string
}

// New creates a Renderer for a chart profile.
func New(cfg *chartconfig.Config) *Renderer {
	theme := "white"
	if cfg.Meta.Theme == "dark" {
		theme = "dark"
	}
	return &Renderer{theme: theme}
}

// WriteHTML renders every present section of a dashboard into one page,
// followed by a manifest comment naming the generation time, profile hash
// and source files.
func (r *Renderer) WriteHTML(w io.Writer, d *dashboard.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = d.Title

	for _, chart := range []*dashboard.LineChart{d.Trends, d.Yearly, d.Monthly} {
		if chart != nil {
			page.AddCharts(r.line(chart))
		}
	}
	if d.Correlation != nil {
		page.AddCharts(r.heatmap(d.Correlation))
	}
	if d.Peaks != nil {
		page.AddCharts(r.peaks(d.Peaks))
	}
	for _, chart := range []*dashboard.LineChart{d.Smoothed, d.Rolling} {
		if chart != nil {
			page.AddCharts(r.line(chart))
		}
	}
	if d.Histogram != nil {
		page.AddCharts(r.histogram(d.Histogram))
	}
	if d.Regions != nil {
		page.AddCharts(r.ranking(d.Regions))
	}
	if d.Related != nil {
		page.AddCharts(r.ranking(d.Related))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n<!-- generated_at=%s profile=%s sources=%s -->\n",
		d.GeneratedAt, d.ProfileHash, strings.Join(d.Sources, ","))
	return err
}

func (r *Renderer) init(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  r.theme,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	}
}

func (r *Renderer) line(c *dashboard.LineChart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(r.init(c.Title)...)

	line.SetXAxis(c.Dates)
	for _, s := range c.Series {
		data := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			if p == nil {
				data[i] = opts.LineData{Value: nil}
			} else {
				data[i] = opts.LineData{Value: *p}
			}
		}
		line.AddSeries(s.Name, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: false}))
	return line
}

func (r *Renderer) heatmap(c *dashboard.Heatmap) *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  r.theme,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: c.Columns}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: c.Columns}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#f7f7f7", "#a50026"}},
		}),
	)

	// Undefined correlations are simply not drawn.
	var cells []opts.HeatMapData
	for i, row := range c.Cells {
		for j, v := range row {
			if v == nil {
				continue
			}
			cells = append(cells, opts.HeatMapData{Value: [3]interface{}{i, j, *v}})
		}
	}
	hm.AddSeries("correlation", cells)
	return hm
}

func (r *Renderer) peaks(c *dashboard.PeakList) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init(c.Title)...)

	dates := make([]string, len(c.Peaks))
	data := make([]opts.BarData, len(c.Peaks))
	for i, p := range c.Peaks {
		dates[i] = p.Date
		data[i] = opts.BarData{Value: p.Value}
	}
	bar.SetXAxis(dates)
	bar.AddSeries(c.Keyword, data)
	return bar
}

func (r *Renderer) histogram(c *dashboard.HistogramChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init(c.Title)...)

	labels := make([]string, len(c.Buckets))
	data := make([]opts.BarData, len(c.Buckets))
	for i, b := range c.Buckets {
		labels[i] = fmt.Sprintf("%.1f to %.1f", b.From, b.To)
		data[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("observations", data)
	return bar
}

func (r *Renderer) ranking(c *dashboard.RankingChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init(c.Title)...)

	// Reversed so rank 1 lands on top of the horizontal chart.
	labels := make([]string, len(c.Entries))
	data := make([]opts.BarData, len(c.Entries))
	for i, e := range c.Entries {
		j := len(c.Entries) - 1 - i
		labels[j] = e.Label
		data[j] = opts.BarData{Value: e.Score}
	}
	bar.SetXAxis(labels)
	bar.AddSeries(c.ScoreName, data)
	bar.XYReversal()
	return bar
}
