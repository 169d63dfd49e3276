package insights

import (
	"fmt"
	"math"

	"greenops-insights/internal/analysis"
)

// Defaults for every tunable.
const (
	DefaultRate             = analysis.DefaultRate
	DefaultReferenceLoad    = analysis.DefaultReferenceLoad
	DefaultHistoryWindow    = 7
	DefaultForecastWindow   = 5
	DefaultEfficiencyRatio  = 0.85
	DefaultRecentSampleSize = 3
	DefaultHighUsageFactor  = 1.2
	DefaultLowUsageFactor   = 0.8
)

// Options holds every tunable the engine reads. Field tags double as the
// configuration-file keys reported in ConfigurationError.
type Options struct {
	Rate             float64 `json:"rate" yaml:"rate"`
	ReferenceLoad    float64 `json:"reference_load" yaml:"reference_load"`
	HistoryWindow    int     `json:"history_window" yaml:"history_window"`
	ForecastWindow   int     `json:"forecast_window" yaml:"forecast_window"`
	EfficiencyRatio  float64 `json:"efficiency_ratio" yaml:"efficiency_ratio"`
	RecentSampleSize int     `json:"recent_sample_size" yaml:"recent_sample_size"`
	HighUsageFactor  float64 `json:"high_usage_factor" yaml:"high_usage_factor"`
	LowUsageFactor   float64 `json:"low_usage_factor" yaml:"low_usage_factor"`
	Strict           bool    `json:"strict" yaml:"strict"`
}

func DefaultOptions() Options {
	return Options{
		Rate:             DefaultRate,
		ReferenceLoad:    DefaultReferenceLoad,
		HistoryWindow:    DefaultHistoryWindow,
		ForecastWindow:   DefaultForecastWindow,
		EfficiencyRatio:  DefaultEfficiencyRatio,
		RecentSampleSize: DefaultRecentSampleSize,
		HighUsageFactor:  DefaultHighUsageFactor,
		LowUsageFactor:   DefaultLowUsageFactor,
	}
}

// Validate returns a *ConfigurationError for the first invalid field.
func (o Options) Validate() error {
	switch {
	case !finite(o.Rate) || o.Rate <= 0:
		return invalid("rate", "must be a finite number > 0, got %g", o.Rate)
	case !finite(o.ReferenceLoad) || o.ReferenceLoad <= 0:
		return invalid("reference_load", "must be a finite number > 0, got %g", o.ReferenceLoad)
	case o.HistoryWindow < 1:
		return invalid("history_window", "must be >= 1, got %d", o.HistoryWindow)
	case o.ForecastWindow < 1:
		return invalid("forecast_window", "must be >= 1, got %d", o.ForecastWindow)
	case !finite(o.EfficiencyRatio) || o.EfficiencyRatio <= 0 || o.EfficiencyRatio > 1:
		return invalid("efficiency_ratio", "must be in (0, 1], got %g", o.EfficiencyRatio)
	case o.RecentSampleSize < 1:
		return invalid("recent_sample_size", "must be >= 1, got %d", o.RecentSampleSize)
	case !finite(o.HighUsageFactor) || o.HighUsageFactor <= 1:
		return invalid("high_usage_factor", "must be > 1, got %g", o.HighUsageFactor)
	case !finite(o.LowUsageFactor) || o.LowUsageFactor <= 0 || o.LowUsageFactor >= 1:
		return invalid("low_usage_factor", "must be in (0, 1), got %g", o.LowUsageFactor)
	}
	return nil
}

// Thresholds returns the alert-engine view of o.
func (o Options) Thresholds() analysis.AlertThresholds {
	return analysis.AlertThresholds{
		RecentSampleSize: o.RecentSampleSize,
		HighUsageFactor:  o.HighUsageFactor,
		LowUsageFactor:   o.LowUsageFactor,
	}
}

func invalid(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
