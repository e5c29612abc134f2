// Package chartconfig holds the dashboard profile: the chart-sequence
// defaults every variant shares, loadable from a strict YAML file.
package chartconfig

// Config is the full dashboard profile.
type Config struct {
	Meta        Meta        `yaml:"meta" json:"meta"`
	Peaks       Peaks       `yaml:"peaks" json:"peaks"`
	Smoothing   Smoothing   `yaml:"smoothing" json:"smoothing"`
	Correlation Correlation `yaml:"correlation" json:"correlation"`
	Histogram   Histogram   `yaml:"histogram" json:"histogram"`
	Rankings    Rankings    `yaml:"rankings" json:"rankings"`
}

// Meta names the rendered page.
type Meta struct {
	Title string `yaml:"title" json:"title"`
	Theme string `yaml:"theme" json:"theme"` // white | dark
}

// Peaks configures the top-peaks chart.
type Peaks struct {
	K int `yaml:"k" json:"k"`
}

// Smoothing bounds the moving-average window. Windows are observation
// counts, not calendar units.
type Smoothing struct {
	DefaultWindow int `yaml:"default_window" json:"default_window"`
	MinWindow     int `yaml:"min_window" json:"min_window"`
	MaxWindow     int `yaml:"max_window" json:"max_window"`
}

// Clamp forces a requested window into the configured bounds.
func (s Smoothing) Clamp(window int) int {
	if window < s.MinWindow {
		return s.MinWindow
	}
	if window > s.MaxWindow {
		return s.MaxWindow
	}
	return window
}

// Correlation configures the rolling-correlation chart.
type Correlation struct {
	RollingWindow int `yaml:"rolling_window" json:"rolling_window"`
}

// Histogram configures the distribution chart.
type Histogram struct {
	Bins int `yaml:"bins" json:"bins"`
}

// Rankings sets how many rows the region and related-query charts keep.
type Rankings struct {
	Regions int `yaml:"regions" json:"regions"`
	Related int `yaml:"related" json:"related"`
}

// Default returns the built-in profile used when no YAML file is given.
func Default() *Config {
	return &Config{
		Meta: Meta{
			Title: "Google Trends Dashboard",
			Theme: "white",
		},
		Peaks:       Peaks{K: 5},
		Smoothing:   Smoothing{DefaultWindow: 12, MinWindow: 3, MaxWindow: 24},
		Correlation: Correlation{RollingWindow: 12},
		Histogram:   Histogram{Bins: 20},
		Rankings:    Rankings{Regions: 10, Related: 10},
	}
}
