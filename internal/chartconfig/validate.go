package chartconfig

import "fmt"

// ValidationError is a hard profile violation; loading stops.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning is a recommendation violation; loading continues.
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints.
func Validate(cfg *Config) error {
	switch cfg.Meta.Theme {
	case "", "white", "dark":
	default:
		return ValidationError{"meta.theme", "must be white or dark"}
	}

	if cfg.Peaks.K < 1 {
		return ValidationError{"peaks.k", "must be >= 1"}
	}

	s := cfg.Smoothing
	if s.MinWindow < 1 {
		return ValidationError{"smoothing.min_window", "must be >= 1"}
	}
	if s.MinWindow > s.MaxWindow {
		return ValidationError{"smoothing", "min_window must be <= max_window"}
	}
	if s.DefaultWindow < s.MinWindow || s.DefaultWindow > s.MaxWindow {
		return ValidationError{"smoothing.default_window", fmt.Sprintf("must be within [%d, %d]", s.MinWindow, s.MaxWindow)}
	}

	if cfg.Correlation.RollingWindow < 1 {
		return ValidationError{"correlation.rolling_window", "must be >= 1"}
	}

	if cfg.Histogram.Bins < 1 {
		return ValidationError{"histogram.bins", "must be >= 1"}
	}

	if cfg.Rankings.Regions < 1 {
		return ValidationError{"rankings.regions", "must be >= 1"}
	}
	if cfg.Rankings.Related < 1 {
		return ValidationError{"rankings.related", "must be >= 1"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal).
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// A window beyond a year of weekly rows smooths most series flat.
	if cfg.Smoothing.MaxWindow > 52 {
		warnings = append(warnings, Warning{
			Code:    "LARGE_WINDOW",
			Message: fmt.Sprintf("smoothing.max_window=%d exceeds a year of weekly observations", cfg.Smoothing.MaxWindow),
		})
	}

	if cfg.Correlation.RollingWindow < 3 {
		warnings = append(warnings, Warning{
			Code:    "SHORT_WINDOW",
			Message: fmt.Sprintf("correlation.rolling_window=%d gives noisy, mostly undefined correlations", cfg.Correlation.RollingWindow),
		})
	}

	if cfg.Histogram.Bins > 50 {
		warnings = append(warnings, Warning{
			Code:    "MANY_BINS",
			Message: fmt.Sprintf("histogram.bins=%d leaves most bins empty on Trends-sized series", cfg.Histogram.Bins),
		})
	}

	return warnings
}
