package models

import (
	"greenops-insights/internal/config"
	"greenops-insights/internal/insights"
	"greenops-insights/internal/model"
)

// InsightsRequest is the body of every POST that computes insight.
// Options overlays the server's current options field by field; zero fields
// keep the server value.
type InsightsRequest struct {
	Readings  []model.RawReading     `json:"readings"`
	Forecasts []model.RawForecast    `json:"forecasts,omitempty"`
	Options   *config.InsightsConfig `json:"options,omitempty"`
}

func (r InsightsRequest) Input() insights.Input {
	return insights.Input{Readings: r.Readings, Forecasts: r.Forecasts}
}
