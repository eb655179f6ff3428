package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
	"github.com/clinicops/scheduler/internal/domain/wellness"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func newReporter(t *testing.T) *Reporter {
	t.Helper()
	cat := catalog.SeedCatalog()
	reg := catalog.SeedRegistry()
	logger := zerolog.Nop()
	well := wellness.NewService(cat, reg, wellness.DefaultOptions(), logger)
	return NewReporter(cat, reg, well, DefaultOptions(), logger)
}

func TestAnalyzeDurations_NoSamplesMeansFullAccuracy(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(10, 0), DurationMinutes: 15},
	}

	analyses := r.AnalyzeDurations(tasks, nil)
	if len(analyses) != 1 {
		t.Fatalf("expected one analysis, got %d", len(analyses))
	}
	a := analyses[0]
	if a.TotalInstances != 2 {
		t.Errorf("expected 2 instances, got %d", a.TotalInstances)
	}
	if a.VariancePercentage != 0 {
		t.Errorf("expected zero variance without samples, got %v", a.VariancePercentage)
	}
	if a.AccuracyScore != 100 {
		t.Errorf("expected accuracy 100, got %v", a.AccuracyScore)
	}
	if len(a.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", a.Recommendations)
	}
}

func TestAnalyzeDurations_VarianceTriggersRecommendations(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 20},
	}
	// Observed 28 against estimated 20: 40% variance, 1.4x over estimate.
	samples := map[string]float64{"Follicle Scan": 28}

	analyses := r.AnalyzeDurations(tasks, samples)
	if len(analyses) != 1 {
		t.Fatalf("expected one analysis, got %d", len(analyses))
	}
	a := analyses[0]
	if math.Abs(a.VariancePercentage-40) > 0.001 {
		t.Errorf("expected 40%% variance, got %v", a.VariancePercentage)
	}
	if math.Abs(a.AccuracyScore-60) > 0.001 {
		t.Errorf("expected accuracy 60, got %v", a.AccuracyScore)
	}
	// Review (>20%), buffer (>1.2x), and investigate (>30%).
	if len(a.Recommendations) != 3 {
		t.Errorf("expected 3 recommendations, got %v", a.Recommendations)
	}
}

func TestAnalyzeDurations_SortsByInstanceCount(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "hCG Blood Test", StaffID: "nurse-williams", DueAt: at(9, 0), DurationMinutes: 10},
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(10, 0), DurationMinutes: 15},
		{Title: "Unknown Procedure", StaffID: "dr-smith", DueAt: at(11, 0), DurationMinutes: 30},
	}

	analyses := r.AnalyzeDurations(tasks, nil)
	if len(analyses) != 2 {
		t.Fatalf("expected unknown procedure skipped, got %d analyses", len(analyses))
	}
	if analyses[0].ProcedureName != "Follicle Scan" {
		t.Errorf("expected busiest procedure first, got %s", analyses[0].ProcedureName)
	}
}

func TestStaffEfficiency(t *testing.T) {
	r := newReporter(t)

	// Scheduled exactly at base duration: efficiency 100, improving trend.
	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
		{Title: "Review Patient History", StaffID: "dr-smith", DueAt: at(10, 0), DurationMinutes: 30},
	}

	metrics := r.StaffEfficiency(tasks)
	if len(metrics) != 1 {
		t.Fatalf("expected one staff entry, got %d", len(metrics))
	}
	m := metrics[0]
	if m.StaffID != "dr-smith" {
		t.Errorf("expected dr-smith, got %s", m.StaffID)
	}
	if m.StaffName != "Dr. Sarah Smith" {
		t.Errorf("expected registry name, got %s", m.StaffName)
	}
	if m.EfficiencyScore != 100 {
		t.Errorf("expected efficiency 100, got %v", m.EfficiencyScore)
	}
	if m.PerformanceTrend != TrendImproving {
		t.Errorf("expected improving trend, got %s", m.PerformanceTrend)
	}
	if len(m.SpecialtyAreas) != 2 {
		t.Errorf("expected 2 specialty areas, got %v", m.SpecialtyAreas)
	}
}

func TestStaffEfficiency_SlowScheduleScoresLower(t *testing.T) {
	r := newReporter(t)

	// Scheduled at double the base duration: efficiency 50, declining, with
	// training and technique recommendations.
	tasks := []schedule.Task{
		{Title: "Review Patient History", StaffID: "dr-johnson", DueAt: at(9, 0), DurationMinutes: 60},
	}

	metrics := r.StaffEfficiency(tasks)
	if len(metrics) != 1 {
		t.Fatalf("expected one staff entry, got %d", len(metrics))
	}
	m := metrics[0]
	if m.EfficiencyScore != 50 {
		t.Errorf("expected efficiency 50, got %v", m.EfficiencyScore)
	}
	if m.PerformanceTrend != TrendDeclining {
		t.Errorf("expected declining trend, got %s", m.PerformanceTrend)
	}
	if len(m.Recommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %v", m.Recommendations)
	}
}

func TestUtilizationReport(t *testing.T) {
	r := newReporter(t)

	// 4 staff x 8 capacity hours = 32; 8 scheduled hours is 25%.
	tasks := []schedule.Task{
		{Title: "Review Patient History", StaffID: "dr-smith", DueAt: at(8, 0), DurationMinutes: 480},
	}

	report := r.UtilizationReport(tasks, day)
	if report.TotalCapacityHours != 32 {
		t.Errorf("expected capacity 32, got %v", report.TotalCapacityHours)
	}
	if report.ActualUtilizedHours != 8 {
		t.Errorf("expected 8 utilized hours, got %v", report.ActualUtilizedHours)
	}
	if math.Abs(report.UtilizationPercentage-25) > 0.001 {
		t.Errorf("expected 25%%, got %v", report.UtilizationPercentage)
	}

	// The full 8 hours land in the 8:00 bucket, far past the peak threshold.
	if len(report.PeakHours) != 1 {
		t.Fatalf("expected one peak hour, got %d", len(report.PeakHours))
	}
	if report.PeakHours[0].Start != 8 {
		t.Errorf("expected peak at hour 8, got %d", report.PeakHours[0].Start)
	}

	found := false
	for _, o := range report.OptimizationOpportunities {
		if o == "Opportunity to schedule additional procedures" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected spare-capacity opportunity, got %v", report.OptimizationOpportunities)
	}
}

func TestUtilizationReport_EmptyDay(t *testing.T) {
	r := newReporter(t)

	report := r.UtilizationReport(nil, day)
	if report.UtilizationPercentage != 0 {
		t.Errorf("expected 0%%, got %v", report.UtilizationPercentage)
	}
	if len(report.PeakHours) != 0 {
		t.Errorf("expected no peaks, got %v", report.PeakHours)
	}
}

func TestSchedulingEfficiency_NilLogCountsOnTime(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
		{Title: "hCG Blood Test", StaffID: "nurse-williams", DueAt: at(10, 0), DurationMinutes: 10},
	}

	report := r.SchedulingEfficiency(tasks, day, nil)
	if report.TotalTasks != 2 || report.OnTimeCompletions != 2 {
		t.Fatalf("expected all tasks on time, got %+v", report)
	}
	if report.DelayedTasks != 0 || report.ReschedulingRate != 0 {
		t.Fatalf("expected no delays without a log, got %+v", report)
	}
	if report.PatientSatisfactionImpact != 100 {
		t.Errorf("expected satisfaction 100, got %v", report.PatientSatisfactionImpact)
	}
}

func TestSchedulingEfficiency_WithLog(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
		{Title: "hCG Blood Test", StaffID: "nurse-williams", DueAt: at(10, 0), DurationMinutes: 10},
	}
	log := &CompletionLog{
		OnTimeCompletions:   1,
		DelayedTasks:        1,
		AverageDelayMinutes: 20,
		ConflictResolutions: 1,
	}

	report := r.SchedulingEfficiency(tasks, day, log)
	if report.ReschedulingRate != 50 {
		t.Errorf("expected rescheduling rate 50, got %v", report.ReschedulingRate)
	}
	// 100 - 1*5 - 20*0.5 = 85.
	if report.PatientSatisfactionImpact != 85 {
		t.Errorf("expected satisfaction 85, got %v", report.PatientSatisfactionImpact)
	}
}

func TestWellnessImpact_IdleTeam(t *testing.T) {
	r := newReporter(t)

	impact := r.WellnessImpact(nil, day)
	if impact.StaffWellnessAverage != 100 {
		t.Errorf("expected average 100, got %v", impact.StaffWellnessAverage)
	}
	if impact.ProductivityCorrelation != 1 {
		t.Errorf("expected correlation 1, got %v", impact.ProductivityCorrelation)
	}
	if len(impact.BurnoutRiskFactors) != 0 {
		t.Errorf("expected no risk factors, got %v", impact.BurnoutRiskFactors)
	}
	// The daily monitoring action is always present.
	if len(impact.RecommendedActions) != 1 {
		t.Errorf("expected one standing action, got %v", impact.RecommendedActions)
	}
}

func TestWellnessImpact_OverworkedStaffFlagged(t *testing.T) {
	r := newReporter(t)

	// 9 hours for dr-johnson (8-hour limit): overtime and fatigue factors.
	tasks := []schedule.Task{
		{Title: "Review Patient History", StaffID: "dr-johnson", DueAt: at(8, 0), DurationMinutes: 540},
	}

	impact := r.WellnessImpact(tasks, day)
	if len(impact.BurnoutRiskFactors) == 0 {
		t.Fatal("expected burnout risk factors")
	}
	found := false
	for _, f := range impact.BurnoutRiskFactors {
		if f == "1 staff member(s) working overtime" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected overtime factor, got %v", impact.BurnoutRiskFactors)
	}
}

func TestPerformanceScore_IdleClinic(t *testing.T) {
	r := newReporter(t)

	score := r.PerformanceScore(nil, day, nil, nil)
	// utilization 0*0.25 + efficiency 100*0.3 + wellness 100*0.25 + accuracy 100*0.2 = 75.
	if score.OverallScore != 75 {
		t.Errorf("expected overall 75, got %d", score.OverallScore)
	}
	if score.Grade != "C" {
		t.Errorf("expected grade C, got %s", score.Grade)
	}
	if score.CategoryScores.Utilization != 0 {
		t.Errorf("expected utilization 0, got %d", score.CategoryScores.Utilization)
	}
	if score.CategoryScores.Accuracy != 100 {
		t.Errorf("expected accuracy 100, got %d", score.CategoryScores.Accuracy)
	}
}

func TestOptimizationRecommendations_QuietDay(t *testing.T) {
	r := newReporter(t)

	tasks := []schedule.Task{
		{Title: "Follicle Scan", StaffID: "dr-smith", DueAt: at(9, 0), DurationMinutes: 15},
	}

	recs := r.OptimizationRecommendations(tasks, day, nil, nil)
	found := false
	for _, rec := range recs {
		if rec == "Opportunity to schedule more procedures or optimize staff allocation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected spare-capacity recommendation, got %v", recs)
	}
}
