package analysis

import (
	"sort"

	"greenops-insights/internal/model"

	"github.com/shopspring/decimal"
)

// PlaceholderPoints is the length of the empty-state series returned when
// there is nothing to plot.
const PlaceholderPoints = 5

// Chart label layouts.
const (
	DayLabelLayout   = "Jan 2"
	MonthLabelLayout = "Jan 2006"
)

// MergeSeries builds the chart series: the newest historyWindow readings in
// ascending date order, followed by the earliest forecastWindow forecast
// points in ascending date order. Every point carries a target of its value
// times efficiencyRatio.
//
// The two groups are concatenated as-is; callers window their data so that
// history precedes forecast. With no readings and no forecasts the result is
// PlaceholderPoints points with every value absent.
func MergeSeries(readings []model.Reading, forecasts []model.ForecastPoint, historyWindow, forecastWindow int, efficiencyRatio float64) []model.ChartPoint {
	if len(readings) == 0 && len(forecasts) == 0 {
		return placeholderSeries()
	}

	history := recentAscending(readings, historyWindow)
	upcoming := earliestForecasts(forecasts, forecastWindow)
	ratio := decimal.NewFromFloat(efficiencyRatio)

	out := make([]model.ChartPoint, 0, len(history)+len(upcoming))
	for _, r := range history {
		out = append(out, model.ChartPoint{
			Label:  readingLabel(r),
			Actual: model.Float(r.KWhConsumed),
			Target: target(r.KWhConsumed, ratio),
		})
	}
	for _, f := range upcoming {
		out = append(out, model.ChartPoint{
			Label:     f.Date.Format(DayLabelLayout),
			Predicted: model.Float(f.PredictedKWh),
			Target:    target(f.PredictedKWh, ratio),
		})
	}
	return out
}

func placeholderSeries() []model.ChartPoint {
	return make([]model.ChartPoint, PlaceholderPoints)
}

// recentAscending keeps the newest n readings and returns them oldest first.
// Readings sharing a date stay in input order.
func recentAscending(readings []model.Reading, n int) []model.Reading {
	if n <= 0 {
		return nil
	}
	out := make([]model.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	if n < len(out) {
		out = out[len(out)-n:]
	}
	return out
}

func earliestForecasts(forecasts []model.ForecastPoint, n int) []model.ForecastPoint {
	if n <= 0 {
		return nil
	}
	out := make([]model.ForecastPoint, len(forecasts))
	copy(out, forecasts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func readingLabel(r model.Reading) string {
	if r.PeriodType == model.PeriodMonthly {
		return r.Date.Format(MonthLabelLayout)
	}
	return r.Date.Format(DayLabelLayout)
}

func target(v float64, ratio decimal.Decimal) *float64 {
	return model.Float(decimal.NewFromFloat(v).Mul(ratio).InexactFloat64())
}
