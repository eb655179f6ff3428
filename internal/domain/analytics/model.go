package analytics

import "time"

// ProcedureDurationAnalysis compares estimated against observed durations
// for one procedure across a set of tasks.
type ProcedureDurationAnalysis struct {
	ProcedureID              string   `json:"procedure_id"`
	ProcedureName            string   `json:"procedure_name"`
	TotalInstances           int      `json:"total_instances"`
	AverageActualDuration    float64  `json:"average_actual_duration"`
	AverageEstimatedDuration float64  `json:"average_estimated_duration"`
	VariancePercentage       float64  `json:"variance_percentage"`
	AccuracyScore            float64  `json:"accuracy_score"` // 0-100
	Recommendations          []string `json:"recommendations"`
}

// PerformanceTrend is the direction a staff member's efficiency is moving.
type PerformanceTrend string

const (
	TrendImproving PerformanceTrend = "improving"
	TrendStable    PerformanceTrend = "stable"
	TrendDeclining PerformanceTrend = "declining"
)

// StaffEfficiencyMetrics scores one staff member's throughput against
// catalog baselines.
type StaffEfficiencyMetrics struct {
	StaffID          string           `json:"staff_id"`
	StaffName        string           `json:"staff_name"`
	TotalProcedures  int              `json:"total_procedures"`
	AverageDuration  float64          `json:"average_duration"`
	EfficiencyScore  float64          `json:"efficiency_score"` // 0-100
	SpecialtyAreas   []string         `json:"specialty_areas"`
	PerformanceTrend PerformanceTrend `json:"performance_trend"`
	Recommendations  []string         `json:"recommendations"`
}

// PeakHour is one clinic hour whose scheduled load exceeds the peak
// threshold.
type PeakHour struct {
	Start       int     `json:"start"` // hour of day, inclusive
	End         int     `json:"end"`   // hour of day, exclusive
	Utilization float64 `json:"utilization"`
}

// ResourceUtilizationReport summarizes how one day's capacity was spent.
type ResourceUtilizationReport struct {
	Date                      time.Time  `json:"date"`
	TotalCapacityHours        float64    `json:"total_capacity_hours"`
	ActualUtilizedHours       float64    `json:"actual_utilized_hours"`
	UtilizationPercentage     float64    `json:"utilization_percentage"`
	PeakHours                 []PeakHour `json:"peak_hours"`
	Bottlenecks               []string   `json:"bottlenecks"`
	OptimizationOpportunities []string   `json:"optimization_opportunities"`
}

// CompletionLog is the recorded completion outcome for a day's tasks,
// supplied by the caller. A nil log means every task completed on time with
// no rescheduling.
type CompletionLog struct {
	OnTimeCompletions   int     `json:"on_time_completions"`
	DelayedTasks        int     `json:"delayed_tasks"`
	AverageDelayMinutes float64 `json:"average_delay_minutes"`
	ConflictResolutions int     `json:"conflict_resolutions"`
}

// SchedulingEfficiencyReport measures how well the day's plan held up
// against recorded completions.
type SchedulingEfficiencyReport struct {
	Date                      time.Time `json:"date"`
	TotalTasks                int       `json:"total_tasks"`
	OnTimeCompletions         int       `json:"on_time_completions"`
	DelayedTasks              int       `json:"delayed_tasks"`
	AverageDelay              float64   `json:"average_delay"` // minutes
	ConflictResolutions       int       `json:"conflict_resolutions"`
	ReschedulingRate          float64   `json:"rescheduling_rate"`           // percentage
	PatientSatisfactionImpact float64   `json:"patient_satisfaction_impact"` // 0-100
}

// WellnessImpactAnalysis ties team wellness to productivity.
type WellnessImpactAnalysis struct {
	Date                    time.Time `json:"date"`
	StaffWellnessAverage    float64   `json:"staff_wellness_average"`
	ProductivityCorrelation float64   `json:"productivity_correlation"` // 0-1
	BurnoutRiskFactors      []string  `json:"burnout_risk_factors"`
	WellnessInterventions   []string  `json:"wellness_interventions"`
	RecommendedActions      []string  `json:"recommended_actions"`
}

// CategoryScores breaks the overall performance score into its weighted
// components.
type CategoryScores struct {
	Utilization int `json:"utilization"`
	Efficiency  int `json:"efficiency"`
	Wellness    int `json:"wellness"`
	Accuracy    int `json:"accuracy"`
}

// PerformanceScore is the clinic-wide weighted score with a letter grade.
type PerformanceScore struct {
	OverallScore   int            `json:"overall_score"`
	CategoryScores CategoryScores `json:"category_scores"`
	Grade          string         `json:"grade"`
}
