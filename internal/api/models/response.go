package models

import (
	"greenops-insights/internal/analysis"
	"greenops-insights/internal/insights"
	"greenops-insights/internal/model"
)

// InsightsResponse is a full insight result plus the id it is cached under.
type InsightsResponse struct {
	ID       string `json:"id"`
	BranchID string `json:"branch_id,omitempty"`
	insights.Result
}

// BranchInsights is the insight for one branch of a multi-branch request.
type BranchInsights struct {
	BranchID    string               `json:"branch_id"`
	Summary     model.SummaryStats   `json:"summary"`
	Alerts      []model.Alert        `json:"alerts"`
	AlertCounts analysis.AlertCounts `json:"alert_counts"`
	Series      []model.ChartPoint   `json:"series"`
}

// BranchesResponse holds one entry per branch, ordered by branch id.
// Rejected covers the whole request.
type BranchesResponse struct {
	Branches []BranchInsights             `json:"branches"`
	Rejected []*insights.MalformedReading `json:"rejected"`
}

type AlertsResponse struct {
	Alerts   []model.Alert                `json:"alerts"`
	Counts   analysis.AlertCounts         `json:"counts"`
	Rejected []*insights.MalformedReading `json:"rejected"`
}

type SeriesResponse struct {
	Series   []model.ChartPoint           `json:"series"`
	Rejected []*insights.MalformedReading `json:"rejected"`
}

// UploadResponse reports what was read from an uploaded CSV file and the
// insight computed from it.
type UploadResponse struct {
	Rows     int               `json:"rows"`
	Columns  []string          `json:"columns"`
	Rejected int               `json:"rejected"`
	Insights *InsightsResponse `json:"insights"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
