package config

import (
	"errors"
	"os"

	"greenops-insights/internal/insights"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Insights InsightsConfig `yaml:"insights"`
}

// InsightsConfig mirrors insights.Options. A nil field means "not set" and
// keeps the value underneath; an explicit zero is kept and validated.
type InsightsConfig struct {
	Rate             *float64 `yaml:"rate" json:"rate,omitempty"`
	ReferenceLoad    *float64 `yaml:"reference_load" json:"reference_load,omitempty"`
	HistoryWindow    *int     `yaml:"history_window" json:"history_window,omitempty"`
	ForecastWindow   *int     `yaml:"forecast_window" json:"forecast_window,omitempty"`
	EfficiencyRatio  *float64 `yaml:"efficiency_ratio" json:"efficiency_ratio,omitempty"`
	RecentSampleSize *int     `yaml:"recent_sample_size" json:"recent_sample_size,omitempty"`
	HighUsageFactor  *float64 `yaml:"high_usage_factor" json:"high_usage_factor,omitempty"`
	LowUsageFactor   *float64 `yaml:"low_usage_factor" json:"low_usage_factor,omitempty"`
	Strict           *bool    `yaml:"strict" json:"strict,omitempty"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked parses the file but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the effective options, i.e. the file's values laid over
// the defaults. The returned error is an *insights.ConfigurationError.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Options().Validate()
}

// Options returns the file's values laid over insights.DefaultOptions.
func (c *Config) Options() insights.Options {
	if c == nil {
		return insights.DefaultOptions()
	}
	return c.Insights.Apply(insights.DefaultOptions())
}

// Apply overlays the set fields of ic onto base.
func (ic InsightsConfig) Apply(base insights.Options) insights.Options {
	return MergeInsights(FromOptions(base), ic).ToOptions()
}

// FromOptions is the inverse of ToOptions. Every field is set.
func FromOptions(o insights.Options) InsightsConfig {
	return InsightsConfig{
		Rate:             &o.Rate,
		ReferenceLoad:    &o.ReferenceLoad,
		HistoryWindow:    &o.HistoryWindow,
		ForecastWindow:   &o.ForecastWindow,
		EfficiencyRatio:  &o.EfficiencyRatio,
		RecentSampleSize: &o.RecentSampleSize,
		HighUsageFactor:  &o.HighUsageFactor,
		LowUsageFactor:   &o.LowUsageFactor,
		Strict:           &o.Strict,
	}
}

// ToOptions converts ic, leaving unset fields at their zero value.
func (ic InsightsConfig) ToOptions() insights.Options {
	return insights.Options{
		Rate:             deref(ic.Rate),
		ReferenceLoad:    deref(ic.ReferenceLoad),
		HistoryWindow:    deref(ic.HistoryWindow),
		ForecastWindow:   deref(ic.ForecastWindow),
		EfficiencyRatio:  deref(ic.EfficiencyRatio),
		RecentSampleSize: deref(ic.RecentSampleSize),
		HighUsageFactor:  deref(ic.HighUsageFactor),
		LowUsageFactor:   deref(ic.LowUsageFactor),
		Strict:           deref(ic.Strict),
	}
}

// MergeInsights overlays the set fields of override onto base.
// This is used for the config file over the defaults, and again for
// per-request or command-line overrides over the file.
func MergeInsights(base, override InsightsConfig) InsightsConfig {
	out := base
	pick(&out.Rate, override.Rate)
	pick(&out.ReferenceLoad, override.ReferenceLoad)
	pick(&out.HistoryWindow, override.HistoryWindow)
	pick(&out.ForecastWindow, override.ForecastWindow)
	pick(&out.EfficiencyRatio, override.EfficiencyRatio)
	pick(&out.RecentSampleSize, override.RecentSampleSize)
	pick(&out.HighUsageFactor, override.HighUsageFactor)
	pick(&out.LowUsageFactor, override.LowUsageFactor)
	// Strict can be switched on by either side but never off by an override.
	if deref(override.Strict) {
		on := true
		out.Strict = &on
	}
	return out
}

// Ptr returns a pointer to a copy of v, for building overrides in code.
func Ptr[T any](v T) *T {
	return &v
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = Ptr(*v)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
