package model

// AlertType classifies what an alert is about.
// Keep these values stable; they are part of the API output.
type AlertType string

const (
	AlertHighUsage   AlertType = "high_usage"
	AlertEfficiency  AlertType = "efficiency"
	AlertMaintenance AlertType = "maintenance"
	AlertInfo        AlertType = "info"
)

// Severity is how urgently an alert should be shown.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for display: critical > high > warning > info.
// Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 0
	default:
		return -1
	}
}

// Display labels for Alert.Timestamp. They are presentation only.
const (
	TimestampNow    = "Now"
	TimestampRecent = "Recent"
)

// Alert is recomputed on every call and never stored by this module.
type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Timestamp   string    `json:"timestamp"`
}
