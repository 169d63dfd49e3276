package model

// SummaryStats is derived from a reading set on every call.
// Units:
// - TotalKWh, AverageKWh: kWh
// - EstimatedCost: currency units of the configured rate, 2 decimal places
// - EfficiencyScore: 0..100, heuristic (see analysis.Summarize)
type SummaryStats struct {
	TotalKWh        float64 `json:"total_kwh"`
	AverageKWh      float64 `json:"average_kwh"`
	EstimatedCost   float64 `json:"estimated_cost"`
	EfficiencyScore float64 `json:"efficiency_score"`
}
