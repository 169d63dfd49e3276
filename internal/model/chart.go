package model

// ChartPoint is one x-axis position of the usage chart. A nil value is
// absent and serializes as JSON null. A point carries either Actual or
// Predicted, never both.
type ChartPoint struct {
	Label     string   `json:"label"`
	Actual    *float64 `json:"actual"`
	Predicted *float64 `json:"predicted"`
	Target    *float64 `json:"target"`
}

// Float returns a pointer to v, for building ChartPoint values.
func Float(v float64) *float64 { return &v }
