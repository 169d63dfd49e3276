package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"greenops-insights/internal/model"

	"github.com/shopspring/decimal"
)

// AllLocations is the alert location used when a reading set spans several
// branches or carries no branch id.
const AllLocations = "All locations"

// AlertThresholds tunes the alert engine. The defaults are empirical and
// uncalibrated; treat them as knobs, not domain truth.
type AlertThresholds struct {
	// RecentSampleSize is how many of the newest readings form the recent average.
	RecentSampleSize int
	// HighUsageFactor: recent > baseline*HighUsageFactor raises high_usage.
	HighUsageFactor float64
	// LowUsageFactor: recent < baseline*LowUsageFactor raises efficiency.
	LowUsageFactor float64
}

func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		RecentSampleSize: 3,
		HighUsageFactor:  1.2,
		LowUsageFactor:   0.8,
	}
}

// GenerateAlerts compares the average of the most recent readings against the
// average of the whole set (the baseline) and returns alerts in priority order.
//
// Both thresholds are exclusive: recent == baseline*HighUsageFactor does not
// alert. A zero baseline produces no usage alert. An empty set produces a
// single getting-started alert. Output depends only on the input order and
// values.
func GenerateAlerts(readings []model.Reading, th AlertThresholds) []model.Alert {
	var ids alertIDs
	if len(readings) == 0 {
		return []model.Alert{{
			ID:          ids.next(),
			Type:        model.AlertInfo,
			Severity:    model.SeverityInfo,
			Title:       "Getting Started",
			Description: "No energy readings yet. Add a manual entry or upload a CSV file to start receiving usage insights.",
			Location:    AllLocations,
			Timestamp:   model.TimestampNow,
		}}
	}

	alerts := []model.Alert{}

	baseline := meanKWh(readings)
	if baseline.IsZero() {
		return alerts
	}
	newest := newestFirst(readings)
	n := th.RecentSampleSize
	if n <= 0 || n > len(newest) {
		n = len(newest)
	}
	recent := meanKWh(newest[:n])
	location := locationOf(readings)

	switch {
	case recent.GreaterThan(baseline.Mul(decimal.NewFromFloat(th.HighUsageFactor))):
		pct := recent.Div(baseline).Sub(decimal.NewFromInt(1)).Mul(hundred).Round(0)
		alerts = append(alerts, model.Alert{
			ID:       ids.next(),
			Type:     model.AlertHighUsage,
			Severity: model.SeverityWarning,
			Title:    "High Energy Usage Detected",
			Description: fmt.Sprintf("Recent average consumption of %s kWh is ~%s%% above your baseline of %s kWh.",
				kwh(recent), pct.String(), kwh(baseline)),
			Location:  location,
			Timestamp: model.TimestampRecent,
		})
	case recent.LessThan(baseline.Mul(decimal.NewFromFloat(th.LowUsageFactor))):
		pct := decimal.NewFromInt(1).Sub(recent.Div(baseline)).Mul(hundred).Round(0)
		alerts = append(alerts, model.Alert{
			ID:       ids.next(),
			Type:     model.AlertEfficiency,
			Severity: model.SeverityInfo,
			Title:    "Energy Efficiency Improved",
			Description: fmt.Sprintf("Recent average consumption of %s kWh is ~%s%% below your baseline of %s kWh.",
				kwh(recent), pct.String(), kwh(baseline)),
			Location:  location,
			Timestamp: model.TimestampRecent,
		})
	}
	return alerts
}

// newestFirst returns a copy sorted by date descending. Equal dates keep
// their input order.
func newestFirst(readings []model.Reading) []model.Reading {
	out := make([]model.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func locationOf(readings []model.Reading) string {
	branch := readings[0].BranchID
	for _, r := range readings[1:] {
		if r.BranchID != branch {
			return AllLocations
		}
	}
	if branch == "" {
		return AllLocations
	}
	return branch
}

func kwh(d decimal.Decimal) string {
	return d.Round(2).String()
}

// alertIDs hands out ids that are unique within one GenerateAlerts call.
type alertIDs struct{ n int }

func (a *alertIDs) next() string {
	a.n++
	return "alert-" + strconv.Itoa(a.n)
}
