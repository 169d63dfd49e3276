package insights

import (
	"errors"
	"testing"

	"greenops-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kwh(v float64) *float64 { return &v }

func newEngine(t *testing.T, mutate func(*Options)) *Engine {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	e, err := New(opts)
	require.NoError(t, err)
	return e
}

func TestRunSummaryScenario(t *testing.T) {
	e := newEngine(t, nil)

	res, err := e.Run(Input{Readings: []model.RawReading{
		{Date: "2024-01-01", KWhConsumed: kwh(10)},
		{Date: "2024-01-02", KWhConsumed: kwh(10)},
		{Date: "2024-01-03", KWhConsumed: kwh(10)},
	}})
	require.NoError(t, err)

	assert.Equal(t, 30.0, res.Summary.TotalKWh)
	assert.Equal(t, 10.0, res.Summary.AverageKWh)
	assert.Equal(t, 3.60, res.Summary.EstimatedCost)
	assert.Empty(t, res.Alerts)
	assert.Equal(t, 0, res.AlertCounts.Total)
	assert.Len(t, res.Series, 3)
	assert.Empty(t, res.Rejected)
}

func TestRunEmptyInput(t *testing.T) {
	e := newEngine(t, nil)

	res, err := e.Run(Input{})
	require.NoError(t, err)

	assert.Equal(t, model.SummaryStats{}, res.Summary)
	require.Len(t, res.Alerts, 1)
	assert.Equal(t, model.AlertInfo, res.Alerts[0].Type)
	assert.Equal(t, "Getting Started", res.Alerts[0].Title)
	assert.Equal(t, 1, res.AlertCounts.Total)
	assert.Len(t, res.Series, 5)
	assert.NotNil(t, res.Rejected)
}

func TestRunDropsMalformedRecords(t *testing.T) {
	e := newEngine(t, nil)

	res, err := e.Run(Input{
		Readings: []model.RawReading{
			{Date: "2024-01-01", KWhConsumed: kwh(10)},
			{Date: "2024-01-02", KWhConsumed: kwh(-4)},
			{Date: "not a date", KWhConsumed: kwh(10)},
			{Date: "2024-01-04", KWhConsumed: kwh(20)},
		},
		Forecasts: []model.RawForecast{
			{Date: "2024-01-05"},
			{Date: "2024-01-06", PredictedKWh: kwh(12)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, res.Summary.TotalKWh)
	assert.Equal(t, 15.0, res.Summary.AverageKWh)

	require.Len(t, res.Rejected, 3)
	assert.Equal(t, 1, res.Rejected[0].Index)
	assert.Equal(t, "kwh_consumed", res.Rejected[0].Field)
	assert.Equal(t, 2, res.Rejected[1].Index)
	assert.Equal(t, "date", res.Rejected[1].Field)
	assert.Equal(t, model.KindForecast, res.Rejected[2].Kind)
	assert.Equal(t, 0, res.Rejected[2].Index)

	require.Len(t, res.Series, 3)
	assert.NotNil(t, res.Series[2].Predicted)
}

func TestRunStrictModeFails(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.Strict = true })

	res, err := e.Run(Input{Readings: []model.RawReading{
		{Date: "2024-01-01", KWhConsumed: kwh(10)},
		{Date: "2024-01-02", KWhConsumed: kwh(-1)},
	}})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Problems, 1)
	assert.Equal(t, 1, vErr.Problems[0].Index)
	assert.Contains(t, err.Error(), "reading 1: kwh_consumed")
}

func TestRunStrictModeAcceptsCleanInput(t *testing.T) {
	e := newEngine(t, func(o *Options) { o.Strict = true })

	_, err := e.Run(Input{Readings: []model.RawReading{{Date: "2024-01-01", KWhConsumed: kwh(10)}}})
	assert.NoError(t, err)
}

func TestRunHighUsageBoundary(t *testing.T) {
	e := newEngine(t, nil)
	raw := func(values ...float64) []model.RawReading {
		dates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"}
		out := make([]model.RawReading, len(values))
		for i, v := range values {
			out[i] = model.RawReading{Date: dates[i], KWhConsumed: kwh(v)}
		}
		return out
	}

	res, err := e.Run(Input{Readings: raw(16, 16, 16, 24, 24, 24)})
	require.NoError(t, err)
	assert.Empty(t, res.Alerts)

	res, err = e.Run(Input{Readings: raw(16, 16, 16, 24.01, 24.01, 24.01)})
	require.NoError(t, err)
	require.Len(t, res.Alerts, 1)
	assert.Equal(t, model.AlertHighUsage, res.Alerts[0].Type)
	assert.Contains(t, res.Alerts[0].Description, "~20%")
}

func TestEngineRespectsWindows(t *testing.T) {
	e := newEngine(t, func(o *Options) {
		o.HistoryWindow = 2
		o.ForecastWindow = 1
	})

	res, err := e.Run(Input{
		Readings: []model.RawReading{
			{Date: "2024-01-01", KWhConsumed: kwh(1)},
			{Date: "2024-01-02", KWhConsumed: kwh(2)},
			{Date: "2024-01-03", KWhConsumed: kwh(3)},
		},
		Forecasts: []model.RawForecast{
			{Date: "2024-01-05", PredictedKWh: kwh(5)},
			{Date: "2024-01-04", PredictedKWh: kwh(4)},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Series, 3)
	assert.Equal(t, "Jan 2", res.Series[0].Label)
	assert.Equal(t, "Jan 3", res.Series[1].Label)
	assert.Equal(t, "Jan 4", res.Series[2].Label)
	assert.Equal(t, 4.0, *res.Series[2].Predicted)
}
