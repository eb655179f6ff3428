package wellness

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
)

// Options carries the wellness thresholds the clinic configures.
type Options struct {
	// BreakCreditInterval is the heuristic minutes of work after which one
	// taken break is credited, pending real break tracking.
	BreakCreditInterval int
	// AlternativeDelay is the default offset in minutes between suggested
	// alternative times on rejection.
	AlternativeDelay int
	// MaxAlternatives caps the suggested alternative times.
	MaxAlternatives int
	// HoursWarningRatio and FatigueWarningRatio set where "approaching
	// limit" warnings start, as a fraction of the hard limit.
	HoursWarningRatio   float64
	FatigueWarningRatio float64
	// BreakDueRatio sets where an upcoming mandatory break is announced,
	// as a fraction of the mandatory break interval.
	BreakDueRatio float64
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		BreakCreditInterval: 180,
		AlternativeDelay:    60,
		MaxAlternatives:     3,
		HoursWarningRatio:   0.9,
		FatigueWarningRatio: 0.8,
		BreakDueRatio:       0.8,
	}
}

// Service computes per-staff wellness metrics and gatekeeps new-task
// acceptance. Pure over the injected catalog/registry snapshot.
type Service struct {
	catalog  *catalog.Catalog
	registry *catalog.Registry
	opts     Options
	logger   zerolog.Logger
}

// NewService creates a wellness Service.
func NewService(cat *catalog.Catalog, reg *catalog.Registry, opts Options, logger zerolog.Logger) *Service {
	def := DefaultOptions()
	if opts.BreakCreditInterval <= 0 {
		opts.BreakCreditInterval = def.BreakCreditInterval
	}
	if opts.AlternativeDelay <= 0 {
		opts.AlternativeDelay = def.AlternativeDelay
	}
	if opts.MaxAlternatives <= 0 {
		opts.MaxAlternatives = def.MaxAlternatives
	}
	if opts.HoursWarningRatio <= 0 {
		opts.HoursWarningRatio = def.HoursWarningRatio
	}
	if opts.FatigueWarningRatio <= 0 {
		opts.FatigueWarningRatio = def.FatigueWarningRatio
	}
	if opts.BreakDueRatio <= 0 {
		opts.BreakDueRatio = def.BreakDueRatio
	}
	return &Service{
		catalog:  cat,
		registry: reg,
		opts:     opts,
		logger:   logger.With().Str("component", "wellness").Logger(),
	}
}

// staffDayTasks returns the valid tasks resolving to the staff member on
// the given day, in due-time order.
func (s *Service) staffDayTasks(staffID string, tasks []schedule.Task, day time.Time) []schedule.Task {
	var out []schedule.Task
	for _, t := range schedule.OnDay(tasks, day) {
		if s.registry.ResolveStaffID(t.StaffID, t.AssignedToRole) == staffID {
			out = append(out, t)
		}
	}
	return out
}

// fatigueSum totals the catalog fatigue scores of the given tasks. Unknown
// procedures contribute nothing.
func (s *Service) fatigueSum(tasks []schedule.Task) int {
	total := 0
	for _, t := range tasks {
		if proc, ok := s.catalog.Procedure(t.Title); ok {
			total += proc.FatigueScore
		}
	}
	return total
}

// Metrics computes the wellness picture for one staff member and day.
func (s *Service) Metrics(staffID string, tasks []schedule.Task, date time.Time) (*Metrics, error) {
	staff, ok := s.registry.Staff(staffID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrStaffNotFound, staffID)
	}

	dayTasks := s.staffDayTasks(staffID, tasks, date)
	totalMinutes := schedule.TotalMinutes(dayTasks)
	totalHours := float64(totalMinutes) / 60
	fatigue := s.fatigueSum(dayTasks)

	breaksTaken := totalMinutes / s.opts.BreakCreditInterval
	breaksRequired := int(math.Ceil(float64(totalMinutes) / float64(staff.MandatoryBreakInterval)))

	stress := int(math.Round(5*totalHours/staff.MaxDailyHours + 5*float64(fatigue)/float64(staff.MaxFatigueScore)))
	if stress > 10 {
		stress = 10
	}

	score := 100.0
	if totalHours > staff.MaxDailyHours {
		score -= (totalHours - staff.MaxDailyHours) * 10
	}
	if fatigue > staff.MaxFatigueScore {
		score -= float64(fatigue-staff.MaxFatigueScore) * 2
	}
	if deficit := breaksRequired - breaksTaken; deficit > 0 {
		score -= float64(deficit) * 15
	}
	wellnessScore := int(math.Round(score))
	if wellnessScore < 0 {
		wellnessScore = 0
	}
	if wellnessScore > 100 {
		wellnessScore = 100
	}

	return &Metrics{
		StaffID:                 staffID,
		Date:                    date,
		TotalHours:              totalHours,
		FatigueScore:            fatigue,
		BreaksTaken:             breaksTaken,
		MandatoryBreaksRequired: breaksRequired,
		StressLevel:             stress,
		WellnessScore:           wellnessScore,
		Alerts:                  s.alerts(staff, totalHours, fatigue, breaksTaken, breaksRequired),
	}, nil
}

func (s *Service) alerts(staff *catalog.StaffResource, totalHours float64, fatigue, breaksTaken, breaksRequired int) []Alert {
	var alerts []Alert
	now := time.Now()

	if totalHours > staff.MaxDailyHours {
		alerts = append(alerts, Alert{
			Type:           AlertWorkload,
			Severity:       SeverityCritical,
			Message:        fmt.Sprintf("daily hour limit exceeded: %.1f/%.0f hours", totalHours, staff.MaxDailyHours),
			Recommendation: "Redistribute tasks or extend shift end time",
			Timestamp:      now,
		})
	} else if totalHours > staff.MaxDailyHours*s.opts.HoursWarningRatio {
		alerts = append(alerts, Alert{
			Type:           AlertWorkload,
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("approaching daily hour limit: %.1f/%.0f hours", totalHours, staff.MaxDailyHours),
			Recommendation: "Monitor remaining tasks and plan accordingly",
			Timestamp:      now,
		})
	}

	if fatigue > staff.MaxFatigueScore {
		alerts = append(alerts, Alert{
			Type:           AlertFatigue,
			Severity:       SeverityCritical,
			Message:        fmt.Sprintf("high fatigue score: %d/%d", fatigue, staff.MaxFatigueScore),
			Recommendation: "Schedule immediate break and consider task redistribution",
			Timestamp:      now,
		})
	} else if float64(fatigue) > float64(staff.MaxFatigueScore)*s.opts.FatigueWarningRatio {
		alerts = append(alerts, Alert{
			Type:           AlertFatigue,
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("elevated fatigue score: %d/%d", fatigue, staff.MaxFatigueScore),
			Recommendation: "Plan break after current procedure",
			Timestamp:      now,
		})
	}

	if deficit := breaksRequired - breaksTaken; deficit > 0 {
		severity := SeverityWarning
		if deficit > 1 {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Type:           AlertBreak,
			Severity:       severity,
			Message:        fmt.Sprintf("missing %d mandatory break(s)", deficit),
			Recommendation: "Schedule break immediately",
			Timestamp:      now,
		})
	}

	return alerts
}

// BreakRequirements reports the pending break for one staff member at the
// given instant. The last break is inferred from the day's schedule: any
// gap of at least the staff's minimum break duration counts as a taken
// break, and continuous work is measured from the end of the last such gap.
func (s *Service) BreakRequirements(staffID string, tasks []schedule.Task, now time.Time) []BreakRequirement {
	staff, ok := s.registry.Staff(staffID)
	if !ok {
		return nil
	}

	worked := s.continuousWorkMinutes(staffID, tasks, now, staff.MinBreakDuration)
	interval := float64(staff.MandatoryBreakInterval)

	switch {
	case worked >= interval:
		return []BreakRequirement{{
			StaffID:    staffID,
			RequiredAt: now,
			Duration:   staff.MinBreakDuration,
			Reason:     "mandatory break interval exceeded",
			Priority:   PriorityMandatory,
		}}
	case worked >= interval*s.opts.BreakDueRatio:
		remaining := time.Duration(interval-worked) * time.Minute
		return []BreakRequirement{{
			StaffID:    staffID,
			RequiredAt: now.Add(remaining),
			Duration:   staff.MinBreakDuration,
			Reason:     "upcoming mandatory break",
			Priority:   PriorityHigh,
		}}
	}
	return nil
}

// continuousWorkMinutes measures the unbroken stretch of scheduled work
// ending at now. Gaps shorter than minBreak merge into the stretch.
func (s *Service) continuousWorkMinutes(staffID string, tasks []schedule.Task, now time.Time, minBreak int) float64 {
	dayTasks := s.staffDayTasks(staffID, tasks, now)

	stretchStart := time.Time{}
	var stretchEnd time.Time
	for _, t := range dayTasks {
		iv := t.Interval()
		if !iv.Start.Before(now) {
			break
		}
		end := iv.End
		if end.After(now) {
			end = now
		}
		if stretchStart.IsZero() || iv.Start.Sub(stretchEnd) >= time.Duration(minBreak)*time.Minute {
			stretchStart = iv.Start
		}
		if end.After(stretchEnd) {
			stretchEnd = end
		}
	}

	if stretchStart.IsZero() || !stretchEnd.After(stretchStart) {
		return 0
	}
	// Work counts as continuous up to now only if the stretch has not
	// already ended with a qualifying gap.
	if now.Sub(stretchEnd) >= time.Duration(minBreak)*time.Minute {
		return 0
	}
	return now.Sub(stretchStart).Minutes()
}

// CanAcceptTask is the admission gate run before a new task is committed.
// It rejects when the added hours or fatigue would breach the staff limits,
// or when a mandatory break is outstanding, and proposes up to
// MaxAlternatives later start times.
func (s *Service) CanAcceptTask(staffID, procedureTitle string, currentTasks []schedule.Task, proposedAt time.Time) Decision {
	staff, ok := s.registry.Staff(staffID)
	if !ok {
		return Decision{CanAccept: false, Reason: "staff member not found"}
	}
	proc, ok := s.catalog.Procedure(procedureTitle)
	if !ok {
		return Decision{CanAccept: false, Reason: "procedure not found"}
	}

	dayTasks := s.staffDayTasks(staffID, currentTasks, proposedAt)
	currentHours := float64(schedule.TotalMinutes(dayTasks)) / 60
	newHours := float64(proc.BaseDuration) / 60

	if currentHours+newHours > staff.MaxDailyHours {
		return Decision{
			CanAccept: false,
			Reason: fmt.Sprintf("would exceed daily hour limit (%.1f/%.0f hours)",
				currentHours+newHours, staff.MaxDailyHours),
			Alternatives: s.alternativeTimes(proposedAt, s.opts.AlternativeDelay),
		}
	}

	currentFatigue := s.fatigueSum(dayTasks)
	if currentFatigue+proc.FatigueScore > staff.MaxFatigueScore {
		return Decision{
			CanAccept: false,
			Reason: fmt.Sprintf("would exceed fatigue limit (%d/%d)",
				currentFatigue+proc.FatigueScore, staff.MaxFatigueScore),
			Alternatives: s.alternativeTimes(proposedAt, s.opts.AlternativeDelay),
		}
	}

	for _, req := range s.BreakRequirements(staffID, currentTasks, proposedAt) {
		if req.Priority == PriorityMandatory {
			return Decision{
				CanAccept:    false,
				Reason:       "mandatory break required before accepting new tasks",
				Alternatives: s.alternativeTimes(proposedAt, staff.MinBreakDuration),
			}
		}
	}

	return Decision{CanAccept: true}
}

func (s *Service) alternativeTimes(from time.Time, delayMinutes int) []time.Time {
	out := make([]time.Time, 0, s.opts.MaxAlternatives)
	for i := 1; i <= s.opts.MaxAlternatives; i++ {
		out = append(out, from.Add(time.Duration(delayMinutes*i)*time.Minute))
	}
	return out
}

// Summary computes metrics for every registered staff member.
func (s *Service) Summary(tasks []schedule.Task, date time.Time) []StaffSummary {
	var out []StaffSummary
	for _, staff := range s.registry.AllStaff() {
		m, err := s.Metrics(staff.ID, tasks, date)
		if err != nil {
			continue
		}
		out = append(out, StaffSummary{StaffID: staff.ID, Name: staff.Name, Metrics: m})
	}
	return out
}

// WorkloadRecommendations derives team-level workload advice from the
// per-staff wellness picture.
func (s *Service) WorkloadRecommendations(tasks []schedule.Task, date time.Time) []string {
	summary := s.Summary(tasks, date)
	if len(summary) == 0 {
		return nil
	}

	var recs []string

	overloaded := 0
	for _, st := range summary {
		if st.Metrics.WellnessScore < 70 {
			overloaded++
		}
	}
	if overloaded > 0 {
		recs = append(recs, fmt.Sprintf("%d staff member(s) showing signs of overload - consider redistributing tasks", overloaded))
	}

	if hoursStdDev(summary) > 2 {
		recs = append(recs, "Significant workload imbalance detected - redistribute tasks for better balance")
	}

	highFatigue := 0
	for _, st := range summary {
		if st.Metrics.FatigueScore > 50 {
			highFatigue++
		}
	}
	if float64(highFatigue) > float64(len(summary))*0.5 {
		recs = append(recs, "High fatigue levels across team - consider reducing procedure complexity or adding breaks")
	}

	return recs
}

func hoursStdDev(summary []StaffSummary) float64 {
	if len(summary) == 0 {
		return 0
	}
	mean := 0.0
	for _, st := range summary {
		mean += st.Metrics.TotalHours
	}
	mean /= float64(len(summary))

	variance := 0.0
	for _, st := range summary {
		d := st.Metrics.TotalHours - mean
		variance += d * d
	}
	variance /= float64(len(summary))
	return math.Sqrt(variance)
}
