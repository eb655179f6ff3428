package wellness

import "time"

// AlertType classifies what a wellness alert is about.
type AlertType string

const (
	AlertWorkload AlertType = "workload"
	AlertFatigue  AlertType = "fatigue"
	AlertBreak    AlertType = "break"
)

// AlertSeverity ranks alert urgency.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is one actionable wellness finding with a concrete recommendation.
type Alert struct {
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Metrics is the per-staff, per-day wellness picture. Computed on demand,
// never persisted by the engine.
type Metrics struct {
	StaffID                 string    `json:"staff_id"`
	Date                    time.Time `json:"date"`
	TotalHours              float64   `json:"total_hours"`
	FatigueScore            int       `json:"fatigue_score"`
	BreaksTaken             int       `json:"breaks_taken"`
	MandatoryBreaksRequired int       `json:"mandatory_breaks_required"`
	StressLevel             int       `json:"stress_level"`   // 0-10
	WellnessScore           int       `json:"wellness_score"` // 0-100
	Alerts                  []Alert   `json:"alerts"`
}

// BreakPriority ranks how urgently a break is needed.
type BreakPriority string

const (
	PriorityLow       BreakPriority = "low"
	PriorityMedium    BreakPriority = "medium"
	PriorityHigh      BreakPriority = "high"
	PriorityMandatory BreakPriority = "mandatory"
)

// BreakRequirement is one pending break a staff member is owed.
type BreakRequirement struct {
	StaffID    string        `json:"staff_id"`
	RequiredAt time.Time     `json:"required_at"`
	Duration   int           `json:"duration_minutes"`
	Reason     string        `json:"reason"`
	Priority   BreakPriority `json:"priority"`
}

// Decision is the admission-control verdict for a proposed task.
type Decision struct {
	CanAccept    bool        `json:"can_accept"`
	Reason       string      `json:"reason,omitempty"`
	Alternatives []time.Time `json:"alternatives,omitempty"`
}

// StaffSummary pairs a staff member with their computed metrics.
type StaffSummary struct {
	StaffID string   `json:"staff_id"`
	Name    string   `json:"name"`
	Metrics *Metrics `json:"metrics"`
}
