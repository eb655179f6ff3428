package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
	"github.com/clinicops/scheduler/internal/domain/wellness"
)

// Options carries the reporting thresholds the clinic configures.
type Options struct {
	ReportStartHour int // first hour covered by the hourly buckets, inclusive
	ReportEndHour   int // last hour covered, exclusive

	CapacityHoursPerStaff float64 // nominal daily capacity per staff member

	PeakUtilization        float64 // hourly load above this is a peak hour
	BottleneckUtilization  float64 // daily load above this is a bottleneck
	OpportunityUtilization float64 // daily load below this is spare capacity

	VarianceReviewPct      float64 // variance above this triggers an estimate review
	VarianceInvestigatePct float64 // variance above this triggers an investigation
	BufferReviewRatio      float64 // actual/estimated ratio above this suggests bigger buffers

	ImprovingCutoff float64 // efficiency above this trends improving
	StableCutoff    float64 // efficiency above this trends stable

	LowEfficiency       float64 // below: recommend training
	LongAverageDuration float64 // minutes; above: recommend technique review
	HighProcedureCount  int     // above: recommend burnout monitoring

	HighReschedulingRate float64 // percentage
	HighAverageDelay     float64 // minutes
	LowTeamWellness      float64

	// Weights for the overall performance score. Expected to sum to 1.
	UtilizationWeight float64
	EfficiencyWeight  float64
	WellnessWeight    float64
	AccuracyWeight    float64
}

// DefaultOptions returns the stock reporting thresholds.
func DefaultOptions() Options {
	return Options{
		ReportStartHour:        8,
		ReportEndHour:          20,
		CapacityHoursPerStaff:  8,
		PeakUtilization:        80,
		BottleneckUtilization:  95,
		OpportunityUtilization: 60,
		VarianceReviewPct:      20,
		VarianceInvestigatePct: 30,
		BufferReviewRatio:      1.2,
		ImprovingCutoff:        90,
		StableCutoff:           70,
		LowEfficiency:          70,
		LongAverageDuration:    45,
		HighProcedureCount:     20,
		HighReschedulingRate:   15,
		HighAverageDelay:       20,
		LowTeamWellness:        75,
		UtilizationWeight:      0.25,
		EfficiencyWeight:       0.30,
		WellnessWeight:         0.25,
		AccuracyWeight:         0.20,
	}
}

// Reporter derives retrospective reports from task schedules and recorded
// outcomes. Observed data (duration samples, completion logs) is supplied
// by the caller; absent data is treated as "plan held exactly".
type Reporter struct {
	catalog  *catalog.Catalog
	registry *catalog.Registry
	wellness *wellness.Service
	opts     Options
	logger   zerolog.Logger
}

// NewReporter creates a Reporter.
func NewReporter(cat *catalog.Catalog, reg *catalog.Registry, well *wellness.Service, opts Options, logger zerolog.Logger) *Reporter {
	def := DefaultOptions()
	if opts.ReportEndHour <= opts.ReportStartHour {
		opts.ReportStartHour, opts.ReportEndHour = def.ReportStartHour, def.ReportEndHour
	}
	if opts.CapacityHoursPerStaff <= 0 {
		opts.CapacityHoursPerStaff = def.CapacityHoursPerStaff
	}
	if opts.PeakUtilization <= 0 {
		opts.PeakUtilization = def.PeakUtilization
	}
	if opts.BottleneckUtilization <= 0 {
		opts.BottleneckUtilization = def.BottleneckUtilization
	}
	if opts.OpportunityUtilization <= 0 {
		opts.OpportunityUtilization = def.OpportunityUtilization
	}
	if opts.VarianceReviewPct <= 0 {
		opts.VarianceReviewPct = def.VarianceReviewPct
	}
	if opts.VarianceInvestigatePct <= 0 {
		opts.VarianceInvestigatePct = def.VarianceInvestigatePct
	}
	if opts.BufferReviewRatio <= 0 {
		opts.BufferReviewRatio = def.BufferReviewRatio
	}
	if opts.ImprovingCutoff <= 0 {
		opts.ImprovingCutoff = def.ImprovingCutoff
	}
	if opts.StableCutoff <= 0 {
		opts.StableCutoff = def.StableCutoff
	}
	if opts.LowEfficiency <= 0 {
		opts.LowEfficiency = def.LowEfficiency
	}
	if opts.LongAverageDuration <= 0 {
		opts.LongAverageDuration = def.LongAverageDuration
	}
	if opts.HighProcedureCount <= 0 {
		opts.HighProcedureCount = def.HighProcedureCount
	}
	if opts.HighReschedulingRate <= 0 {
		opts.HighReschedulingRate = def.HighReschedulingRate
	}
	if opts.HighAverageDelay <= 0 {
		opts.HighAverageDelay = def.HighAverageDelay
	}
	if opts.LowTeamWellness <= 0 {
		opts.LowTeamWellness = def.LowTeamWellness
	}
	if opts.UtilizationWeight <= 0 && opts.EfficiencyWeight <= 0 && opts.WellnessWeight <= 0 && opts.AccuracyWeight <= 0 {
		opts.UtilizationWeight = def.UtilizationWeight
		opts.EfficiencyWeight = def.EfficiencyWeight
		opts.WellnessWeight = def.WellnessWeight
		opts.AccuracyWeight = def.AccuracyWeight
	}
	return &Reporter{
		catalog:  cat,
		registry: reg,
		wellness: well,
		opts:     opts,
		logger:   logger.With().Str("component", "analytics").Logger(),
	}
}

// AnalyzeDurations compares estimated against observed durations per
// procedure. actualDurations maps procedure title to the observed average;
// procedures without a sample are scored against their own estimate
// (zero variance, full accuracy). Tasks referencing unknown procedures are
// skipped. Results are sorted by instance count, busiest first.
func (r *Reporter) AnalyzeDurations(tasks []schedule.Task, actualDurations map[string]float64) []ProcedureDurationAnalysis {
	groups := make(map[string][]schedule.Task)
	var order []string
	for _, t := range tasks {
		if _, seen := groups[t.Title]; !seen {
			order = append(order, t.Title)
		}
		groups[t.Title] = append(groups[t.Title], t)
	}

	var analyses []ProcedureDurationAnalysis
	for _, title := range order {
		proc, ok := r.catalog.Procedure(title)
		if !ok {
			continue
		}

		group := groups[title]
		estimated := 0.0
		for _, t := range group {
			estimated += float64(t.DurationMinutes)
		}
		estimated /= float64(len(group))

		actual, sampled := actualDurations[title]
		if !sampled {
			actual = estimated
		}

		variancePct := 0.0
		if estimated > 0 {
			variancePct = math.Abs(actual-estimated) / estimated * 100
		}
		accuracy := math.Max(0, 100-variancePct)

		var recs []string
		if variancePct > r.opts.VarianceReviewPct {
			recs = append(recs, "Review duration estimates - significant variance detected")
		}
		if actual > estimated*r.opts.BufferReviewRatio {
			recs = append(recs, "Consider increasing buffer time for this procedure")
		}
		if variancePct > r.opts.VarianceInvestigatePct {
			recs = append(recs, "Investigate factors causing duration inconsistency")
		}

		analyses = append(analyses, ProcedureDurationAnalysis{
			ProcedureID:              proc.ID,
			ProcedureName:            title,
			TotalInstances:           len(group),
			AverageActualDuration:    actual,
			AverageEstimatedDuration: estimated,
			VariancePercentage:       variancePct,
			AccuracyScore:            accuracy,
			Recommendations:          recs,
		})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].TotalInstances > analyses[j].TotalInstances
	})
	return analyses
}

// StaffEfficiency scores each scheduled staff member's throughput against
// catalog base durations: min(100, expected/scheduled × 100). Results are
// sorted by efficiency, best first.
func (r *Reporter) StaffEfficiency(tasks []schedule.Task) []StaffEfficiencyMetrics {
	groups := make(map[string][]schedule.Task)
	var order []string
	for _, t := range tasks {
		staffID := r.registry.ResolveStaffID(t.StaffID, t.AssignedToRole)
		if _, seen := groups[staffID]; !seen {
			order = append(order, staffID)
		}
		groups[staffID] = append(groups[staffID], t)
	}

	var metrics []StaffEfficiencyMetrics
	for _, staffID := range order {
		group := groups[staffID]

		total := 0.0
		expected := 0.0
		for _, t := range group {
			total += float64(t.DurationMinutes)
			if proc, ok := r.catalog.Procedure(t.Title); ok {
				expected += float64(proc.BaseDuration)
			} else {
				expected += 30
			}
		}

		efficiency := 100.0
		if total > 0 {
			efficiency = math.Min(100, expected/total*100)
		}
		avgDuration := total / float64(len(group))

		var trend PerformanceTrend
		switch {
		case efficiency > r.opts.ImprovingCutoff:
			trend = TrendImproving
		case efficiency > r.opts.StableCutoff:
			trend = TrendStable
		default:
			trend = TrendDeclining
		}

		var recs []string
		if efficiency < r.opts.LowEfficiency {
			recs = append(recs, "Consider additional training or workflow optimization")
		}
		if avgDuration > r.opts.LongAverageDuration {
			recs = append(recs, "Review procedure techniques for time optimization")
		}
		if len(group) > r.opts.HighProcedureCount {
			recs = append(recs, "High workload - monitor for burnout signs")
		}

		name := staffID
		if staff, ok := r.registry.Staff(staffID); ok {
			name = staff.Name
		}

		metrics = append(metrics, StaffEfficiencyMetrics{
			StaffID:          staffID,
			StaffName:        name,
			TotalProcedures:  len(group),
			AverageDuration:  avgDuration,
			EfficiencyScore:  efficiency,
			SpecialtyAreas:   specialtyAreas(group),
			PerformanceTrend: trend,
			Recommendations:  recs,
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].EfficiencyScore > metrics[j].EfficiencyScore
	})
	return metrics
}

// specialtyAreas returns the first three distinct procedure titles in
// schedule order.
func specialtyAreas(tasks []schedule.Task) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, t := range tasks {
		if seen[t.Title] {
			continue
		}
		seen[t.Title] = true
		areas = append(areas, t.Title)
		if len(areas) == 3 {
			break
		}
	}
	return areas
}

// UtilizationReport summarizes one day's load against nominal staff
// capacity, with per-hour peak detection across the reporting window.
func (r *Reporter) UtilizationReport(tasks []schedule.Task, date time.Time) *ResourceUtilizationReport {
	dayTasks := schedule.OnDay(tasks, date)
	staffCount := r.registry.StaffCount()

	capacity := r.opts.CapacityHoursPerStaff * float64(staffCount)
	utilized := float64(schedule.TotalMinutes(dayTasks)) / 60
	pct := 0.0
	if capacity > 0 {
		pct = utilized / capacity * 100
	}

	buckets := make([]float64, r.opts.ReportEndHour-r.opts.ReportStartHour)
	for _, t := range dayTasks {
		hour := t.DueAt.Hour() - r.opts.ReportStartHour
		if hour >= 0 && hour < len(buckets) {
			buckets[hour] += float64(t.DurationMinutes) / 60
		}
	}

	var peaks []PeakHour
	if staffCount > 0 {
		for i, load := range buckets {
			hourPct := load / float64(staffCount) * 100
			if hourPct > r.opts.PeakUtilization {
				peaks = append(peaks, PeakHour{
					Start:       r.opts.ReportStartHour + i,
					End:         r.opts.ReportStartHour + i + 1,
					Utilization: hourPct,
				})
			}
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Utilization > peaks[j].Utilization })

	var bottlenecks []string
	if pct > r.opts.BottleneckUtilization {
		bottlenecks = append(bottlenecks, "Overall capacity near maximum")
	}
	if len(peaks) > 3 {
		bottlenecks = append(bottlenecks, "Multiple peak hour periods creating scheduling pressure")
	}

	var opportunities []string
	if pct < r.opts.OpportunityUtilization {
		opportunities = append(opportunities, "Opportunity to schedule additional procedures")
	}
	if len(peaks) == 0 {
		opportunities = append(opportunities, "Even distribution - consider extending hours for more capacity")
	}

	return &ResourceUtilizationReport{
		Date:                      date,
		TotalCapacityHours:        capacity,
		ActualUtilizedHours:       utilized,
		UtilizationPercentage:     pct,
		PeakHours:                 peaks,
		Bottlenecks:               bottlenecks,
		OptimizationOpportunities: opportunities,
	}
}

// SchedulingEfficiency scores how the day's plan held up against the
// recorded completion log. A nil log counts every task as completed on
// time.
func (r *Reporter) SchedulingEfficiency(tasks []schedule.Task, date time.Time, log *CompletionLog) *SchedulingEfficiencyReport {
	dayTasks := schedule.OnDay(tasks, date)
	totalTasks := len(dayTasks)

	report := &SchedulingEfficiencyReport{
		Date:              date,
		TotalTasks:        totalTasks,
		OnTimeCompletions: totalTasks,
	}
	if log != nil {
		report.OnTimeCompletions = log.OnTimeCompletions
		report.DelayedTasks = log.DelayedTasks
		report.AverageDelay = log.AverageDelayMinutes
		report.ConflictResolutions = log.ConflictResolutions
	}

	if totalTasks > 0 {
		report.ReschedulingRate = float64(report.ConflictResolutions) / float64(totalTasks) * 100
	}
	report.PatientSatisfactionImpact = math.Max(0, 100-float64(report.DelayedTasks)*5-report.AverageDelay*0.5)
	return report
}

// WellnessImpact ties the day's team wellness average to productivity and
// names burnout risk factors, interventions, and actions. An empty roster
// reports neutral wellness.
func (r *Reporter) WellnessImpact(tasks []schedule.Task, date time.Time) *WellnessImpactAnalysis {
	summary := r.wellness.Summary(tasks, date)

	average := 100.0
	if len(summary) > 0 {
		sum := 0.0
		for _, s := range summary {
			sum += float64(s.Metrics.WellnessScore)
		}
		average = sum / float64(len(summary))
	}
	productivity := average / 100

	highFatigue := 0
	overworked := 0
	for _, s := range summary {
		if s.Metrics.FatigueScore > 50 {
			highFatigue++
		}
		if s.Metrics.TotalHours > 8 {
			overworked++
		}
	}

	var factors []string
	if highFatigue > 0 {
		factors = append(factors, fmt.Sprintf("%d staff member(s) with high fatigue levels", highFatigue))
	}
	if overworked > 0 {
		factors = append(factors, fmt.Sprintf("%d staff member(s) working overtime", overworked))
	}
	if average < 70 {
		factors = append(factors, "Overall team wellness below optimal levels")
	}

	var interventions []string
	if average < 80 {
		interventions = append(interventions,
			"Implement mandatory break periods",
			"Consider workload redistribution")
	}
	if highFatigue > 1 {
		interventions = append(interventions, "Review procedure complexity and scheduling")
	}

	var actions []string
	if productivity < 0.8 {
		actions = append(actions, "Prioritize staff wellness initiatives to improve productivity")
	}
	if len(factors) > 2 {
		actions = append(actions, "Implement immediate burnout prevention measures")
	}
	actions = append(actions, "Monitor wellness metrics daily for early intervention")

	return &WellnessImpactAnalysis{
		Date:                    date,
		StaffWellnessAverage:    average,
		ProductivityCorrelation: productivity,
		BurnoutRiskFactors:      factors,
		WellnessInterventions:   interventions,
		RecommendedActions:      actions,
	}
}

// OptimizationRecommendations aggregates clinic-level advice across the
// utilization, efficiency, wellness, and duration reports.
func (r *Reporter) OptimizationRecommendations(tasks []schedule.Task, date time.Time, actualDurations map[string]float64, log *CompletionLog) []string {
	var recs []string

	utilization := r.UtilizationReport(tasks, date)
	efficiency := r.SchedulingEfficiency(tasks, date, log)
	impact := r.WellnessImpact(tasks, date)
	durations := r.AnalyzeDurations(schedule.OnDay(tasks, date), actualDurations)

	if utilization.UtilizationPercentage > r.opts.BottleneckUtilization {
		recs = append(recs, "Consider adding additional staff or extending clinic hours")
	} else if utilization.UtilizationPercentage < r.opts.OpportunityUtilization {
		recs = append(recs, "Opportunity to schedule more procedures or optimize staff allocation")
	}

	if efficiency.ReschedulingRate > r.opts.HighReschedulingRate {
		recs = append(recs, "High rescheduling rate - review scheduling algorithms and conflict detection")
	}
	if efficiency.AverageDelay > r.opts.HighAverageDelay {
		recs = append(recs, "Significant delays detected - consider increasing buffer times")
	}

	if impact.StaffWellnessAverage < r.opts.LowTeamWellness {
		recs = append(recs, "Staff wellness below optimal - implement wellness support programs")
	}
	if len(impact.BurnoutRiskFactors) > 1 {
		recs = append(recs, "Multiple burnout risk factors - prioritize workload balancing")
	}

	inaccurate := 0
	for _, d := range durations {
		if d.AccuracyScore < 80 {
			inaccurate++
		}
	}
	if inaccurate > 0 {
		recs = append(recs, fmt.Sprintf("Review duration estimates for %d procedure(s) with low accuracy", inaccurate))
	}

	return recs
}

// PerformanceScore rolls the four report categories into one weighted
// clinic score with a letter grade.
func (r *Reporter) PerformanceScore(tasks []schedule.Task, date time.Time, actualDurations map[string]float64, log *CompletionLog) *PerformanceScore {
	utilization := r.UtilizationReport(tasks, date)
	efficiency := r.SchedulingEfficiency(tasks, date, log)
	impact := r.WellnessImpact(tasks, date)
	durations := r.AnalyzeDurations(schedule.OnDay(tasks, date), actualDurations)

	// Utilization is graded on a curve that rewards the 80-85% sweet spot.
	utilizationScore := math.Min(100, utilization.UtilizationPercentage*1.2)
	efficiencyScore := efficiency.PatientSatisfactionImpact
	wellnessScore := impact.StaffWellnessAverage

	accuracyScore := 100.0
	if len(durations) > 0 {
		sum := 0.0
		for _, d := range durations {
			sum += d.AccuracyScore
		}
		accuracyScore = sum / float64(len(durations))
	}

	overall := int(math.Round(
		utilizationScore*r.opts.UtilizationWeight +
			efficiencyScore*r.opts.EfficiencyWeight +
			wellnessScore*r.opts.WellnessWeight +
			accuracyScore*r.opts.AccuracyWeight))

	var grade string
	switch {
	case overall >= 90:
		grade = "A"
	case overall >= 80:
		grade = "B"
	case overall >= 70:
		grade = "C"
	case overall >= 60:
		grade = "D"
	default:
		grade = "F"
	}

	r.logger.Debug().Int("overall", overall).Str("grade", grade).Msg("performance score computed")

	return &PerformanceScore{
		OverallScore: overall,
		CategoryScores: CategoryScores{
			Utilization: int(math.Round(utilizationScore)),
			Efficiency:  int(math.Round(efficiencyScore)),
			Wellness:    int(math.Round(wellnessScore)),
			Accuracy:    int(math.Round(accuracyScore)),
		},
		Grade: grade,
	}
}
