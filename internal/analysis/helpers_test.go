package analysis

import (
	"time"

	"greenops-insights/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// dailyReadings builds consecutive daily readings starting on 2024-01-01.
func dailyReadings(kwh ...float64) []model.Reading {
	start := day("2024-01-01")
	out := make([]model.Reading, len(kwh))
	for i, v := range kwh {
		out[i] = model.Reading{
			Date:        start.AddDate(0, 0, i),
			KWhConsumed: v,
			PeriodType:  model.PeriodDaily,
		}
	}
	return out
}
