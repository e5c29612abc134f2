package dashboard

// Payload types shared by the JSON API and the HTML renderer. Missing values
// travel as null, hence the *float64 points.

// Dashboard is the full render-ready chart sequence for one dataset.
// Optional sections are nil when their source table is absent or the
// table has too few columns for them.
type Dashboard struct {
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"`
	ProfileHash string `json:"profile_hash,omitempty"`

	// Sources lists the files this dashboard was computed from, when known.
	Sources []string `json:"sources,omitempty"`

	Overview    Overview        `json:"overview"`
	Trends      *LineChart      `json:"trends,omitempty"`
	Yearly      *LineChart      `json:"yearly,omitempty"`
	Monthly     *LineChart      `json:"monthly,omitempty"`
	Correlation *Heatmap        `json:"correlation,omitempty"`
	Peaks       *PeakList       `json:"peaks,omitempty"`
	Smoothed    *LineChart      `json:"moving_average,omitempty"`
	Rolling     *LineChart      `json:"rolling_correlation,omitempty"`
	Histogram   *HistogramChart `json:"histogram,omitempty"`
	Regions     *RankingChart   `json:"regions,omitempty"`
	Related     *RankingChart   `json:"related,omitempty"`
}

// Overview summarizes the observation table.
type Overview struct {
	Rows       int            `json:"rows"`
	Keywords   []string       `json:"keywords"`
	Start      string         `json:"start,omitempty"`
	End        string         `json:"end,omitempty"`
	Missing    map[string]int `json:"missing"`
	Preview    []PreviewRow   `json:"preview,omitempty"`
	HasRegions bool           `json:"has_regions"`
	HasRelated bool           `json:"has_related"`
}

// PreviewRow is one head row of the observation table.
type PreviewRow struct {
	Date   string     `json:"date"`
	Values []*float64 `json:"values"`
}

// Series is one named line, point-aligned with its chart's dates.
type Series struct {
	Name   string     `json:"name"`
	Points []*float64 `json:"points"`
}

// LineChart is a dated multi-series line chart.
type LineChart struct {
	Title  string   `json:"title"`
	Dates  []string `json:"dates"`
	Series []Series `json:"series"`
}

// Heatmap is a symmetric correlation matrix chart.
type Heatmap struct {
	Title   string       `json:"title"`
	Columns []string     `json:"columns"`
	Cells   [][]*float64 `json:"cells"`
}

// PeakPoint is one observation selected as a peak.
type PeakPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PeakList is the top-peaks chart for one keyword.
type PeakList struct {
	Title   string      `json:"title"`
	Keyword string      `json:"keyword"`
	Peaks   []PeakPoint `json:"peaks"`
}

// BucketRange is one histogram bin.
type BucketRange struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// HistogramChart is the value-distribution chart for one keyword.
type HistogramChart struct {
	Title   string        `json:"title"`
	Keyword string        `json:"keyword"`
	Buckets []BucketRange `json:"buckets"`
}

// RankedRow is one bar of a ranking chart.
type RankedRow struct {
	Rank  int     `json:"rank"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RankingChart is a top-k bar chart over labeled scores.
type RankingChart struct {
	Title     string      `json:"title"`
	LabelName string      `json:"label_name"`
	ScoreName string      `json:"score_name"`
	Entries   []RankedRow `json:"entries"`
}
