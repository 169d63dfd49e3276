package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ForecastPoint is one externally predicted consumption value.
type ForecastPoint struct {
	Date         time.Time
	PredictedKWh float64
}

func (f ForecastPoint) Validate() error {
	if f.Date.IsZero() {
		return malformedForecast("date", "missing")
	}
	if math.IsNaN(f.PredictedKWh) || math.IsInf(f.PredictedKWh, 0) {
		return malformedForecast("predicted_kwh", "must be a finite number")
	}
	if f.PredictedKWh < 0 {
		return malformedForecast("predicted_kwh", fmt.Sprintf("must be >= 0, got %g", f.PredictedKWh))
	}
	return nil
}

// RawForecast is the wire shape the prediction collaborator returns.
type RawForecast struct {
	Date         string   `json:"date" yaml:"date"`
	PredictedKWh *float64 `json:"predicted_kwh" yaml:"predicted_kwh"`

	mismatch *typeMismatch
}

func ParseForecast(index int, raw RawForecast) (ForecastPoint, error) {
	var f ForecastPoint
	switch {
	case raw.mismatch != nil:
		return f, indexed(malformedForecast(raw.mismatch.field, raw.mismatch.reason), index)
	case strings.TrimSpace(raw.Date) == "":
		return f, indexed(malformedForecast("date", "missing"), index)
	case raw.PredictedKWh == nil:
		return f, indexed(malformedForecast("predicted_kwh", "missing"), index)
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return f, indexed(malformedForecast("date", err.Error()), index)
	}
	f = ForecastPoint{Date: date, PredictedKWh: *raw.PredictedKWh}
	if err := f.Validate(); err != nil {
		return ForecastPoint{}, indexed(err, index)
	}
	return f, nil
}

func indexed(err error, index int) error {
	if mr, ok := err.(*MalformedReading); ok {
		mr.Index = index
	}
	return err
}
