package analysis

import (
	"sort"

	"greenops-insights/internal/model"
)

// AlertCounts backs the "active alerts" card: how many alerts there are and
// how they split by type and severity.
type AlertCounts struct {
	Total      int                     `json:"total"`
	ByType     map[model.AlertType]int `json:"by_type"`
	BySeverity map[model.Severity]int  `json:"by_severity"`
}

func CountAlerts(alerts []model.Alert) AlertCounts {
	c := AlertCounts{
		Total:      len(alerts),
		ByType:     map[model.AlertType]int{},
		BySeverity: map[model.Severity]int{},
	}
	for _, a := range alerts {
		c.ByType[a.Type]++
		c.BySeverity[a.Severity]++
	}
	return c
}

// SortBySeverity returns a copy ordered critical > high > warning > info.
// Alerts of equal severity keep their priority order.
func SortBySeverity(alerts []model.Alert) []model.Alert {
	out := make([]model.Alert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}
