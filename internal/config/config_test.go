package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"greenops-insights/internal/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "insights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
insights:
  rate: 0.2
  history_window: 14
`)
	c, err := Load(path)
	require.NoError(t, err)

	opts := c.Options()
	want := insights.DefaultOptions()
	want.Rate = 0.2
	want.HistoryWindow = 14
	assert.Equal(t, want, opts)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, insights.DefaultOptions(), c.Options())
}

func TestLoadRejectsInvalidField(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
insights:
  efficiency_ratio: 1.7
`)
	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *insights.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "efficiency_ratio", cfgErr.Field)

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	require.NotNil(t, c.Insights.EfficiencyRatio)
	assert.Equal(t, 1.7, *c.Insights.EfficiencyRatio)
}

func TestLoadRejectsExplicitZero(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"history window", "insights:\n  history_window: 0\n", "history_window"},
		{"forecast window", "insights:\n  forecast_window: 0\n", "forecast_window"},
		{"rate", "insights:\n  rate: 0\n", "rate"},
		{"both", "insights:\n  history_window: 0\n  rate: 0\n", "rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			require.Error(t, err)

			var cfgErr *insights.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "insights: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMergeInsights(t *testing.T) {
	base := FromOptions(insights.DefaultOptions())

	got := MergeInsights(base, InsightsConfig{ForecastWindow: Ptr(9), Strict: Ptr(true)}).ToOptions()
	assert.Equal(t, 9, got.ForecastWindow)
	assert.Equal(t, insights.DefaultHistoryWindow, got.HistoryWindow)
	assert.Equal(t, insights.DefaultRate, got.Rate)
	assert.True(t, got.Strict)

	base.Strict = Ptr(true)
	got = MergeInsights(base, InsightsConfig{Strict: Ptr(false)}).ToOptions()
	assert.True(t, got.Strict, "an override cannot switch strict mode off")
}

func TestMergeInsightsKeepsExplicitZero(t *testing.T) {
	opts := InsightsConfig{HistoryWindow: Ptr(0), Rate: Ptr(0.0)}.Apply(insights.DefaultOptions())
	assert.Equal(t, 0, opts.HistoryWindow)
	assert.Equal(t, 0.0, opts.Rate)
	assert.Equal(t, insights.DefaultForecastWindow, opts.ForecastWindow)
	assert.ErrorIs(t, opts.Validate(), insights.ErrConfiguration)
}

func TestOptionsRoundTrip(t *testing.T) {
	opts := insights.DefaultOptions()
	opts.Strict = true
	assert.Equal(t, opts, FromOptions(opts).ToOptions())
}

func TestNilConfig(t *testing.T) {
	var c *Config
	assert.Error(t, c.Validate())
	assert.Equal(t, insights.DefaultOptions(), c.Options())
}
