package optimize

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/conflict"
	"github.com/clinicops/scheduler/internal/domain/duration"
	"github.com/clinicops/scheduler/internal/domain/schedule"
)

// Result is the outcome of one optimization pass over a day's schedule.
// Ephemeral: produced per call, never stored.
type Result struct {
	IsOptimal        bool                       `json:"is_optimal"`
	Conflicts        []conflict.Conflict        `json:"conflicts"`
	Alternatives     []schedule.AlternativeSlot `json:"alternatives"`
	UtilizationScore int                        `json:"utilization_score"` // 0-100
	WorkloadBalance  int                        `json:"workload_balance"`  // 0-100
	Recommendations  []string                   `json:"recommendations"`
}

// Options carries the scheduling-window and threshold knobs the clinic
// configures.
type Options struct {
	DayStartHour int // first schedulable hour, inclusive
	DayEndHour   int // last schedulable hour, exclusive

	AlternativeStepMinutes   int // scan granularity for per-conflict alternatives
	AlternativeWindowMinutes int // window length proposed per alternative
	AlternativeConfidence    int
	MaxAlternatives          int // per conflict

	SuggestionStepMinutes int // scan granularity for procedure-specific suggestions
	SuggestionConfidence  int
	MaxSuggestions        int

	NominalHoursPerStaff float64 // capacity assumption behind the utilization score

	HighUtilization  int // above: suggest added capacity
	LowUtilization   int // below: suggest consolidation
	LowBalance       int // below: suggest redistribution
	HighFatigueScore int // procedures above this trigger the break recommendation
}

// DefaultOptions returns the stock scheduling windows and thresholds.
func DefaultOptions() Options {
	return Options{
		DayStartHour:             8,
		DayEndHour:               18,
		AlternativeStepMinutes:   30,
		AlternativeWindowMinutes: 60,
		AlternativeConfidence:    85,
		MaxAlternatives:          3,
		SuggestionStepMinutes:    15,
		SuggestionConfidence:     90,
		MaxSuggestions:           5,
		NominalHoursPerStaff:     10,
		HighUtilization:          90,
		LowUtilization:           60,
		LowBalance:               70,
		HighFatigueScore:         7,
	}
}

// Optimizer composes conflict detection, slot search, and scoring into an
// overall schedule assessment. Pure over its injected collaborators.
type Optimizer struct {
	catalog   *catalog.Catalog
	registry  *catalog.Registry
	detector  *conflict.Detector
	durations *duration.Calculator
	opts      Options
	logger    zerolog.Logger
}

// NewOptimizer creates an Optimizer.
func NewOptimizer(cat *catalog.Catalog, reg *catalog.Registry, det *conflict.Detector, dur *duration.Calculator, opts Options, logger zerolog.Logger) *Optimizer {
	if opts.DayEndHour <= opts.DayStartHour {
		def := DefaultOptions()
		opts.DayStartHour, opts.DayEndHour = def.DayStartHour, def.DayEndHour
	}
	if opts.AlternativeStepMinutes <= 0 {
		opts.AlternativeStepMinutes = DefaultOptions().AlternativeStepMinutes
	}
	if opts.AlternativeWindowMinutes <= 0 {
		opts.AlternativeWindowMinutes = DefaultOptions().AlternativeWindowMinutes
	}
	if opts.SuggestionStepMinutes <= 0 {
		opts.SuggestionStepMinutes = DefaultOptions().SuggestionStepMinutes
	}
	if opts.MaxAlternatives <= 0 {
		opts.MaxAlternatives = DefaultOptions().MaxAlternatives
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultOptions().MaxSuggestions
	}
	if opts.NominalHoursPerStaff <= 0 {
		opts.NominalHoursPerStaff = DefaultOptions().NominalHoursPerStaff
	}
	return &Optimizer{
		catalog:   cat,
		registry:  reg,
		detector:  det,
		durations: dur,
		opts:      opts,
		logger:    logger.With().Str("component", "optimize").Logger(),
	}
}

// Optimize assesses one day's schedule: scores, conflicts, alternative
// slots, and recommendations. An empty day is vacuously optimal with zero
// utilization and perfect balance.
func (o *Optimizer) Optimize(tasks []schedule.Task, targetDate time.Time) *Result {
	dayTasks := schedule.OnDay(tasks, targetDate)

	utilization := o.utilizationScore(dayTasks)
	balance := o.workloadBalance(dayTasks)
	conflicts := o.detector.Detect(dayTasks)

	var alternatives []schedule.AlternativeSlot
	for i := range conflicts {
		alts := o.alternativesFor(dayTasks, targetDate)
		conflicts[i].SuggestedAlternatives = alts
		alternatives = append(alternatives, alts...)
	}

	isOptimal := true
	for _, c := range conflicts {
		if c.Severity == conflict.SeverityHigh || c.Severity == conflict.SeverityCritical {
			isOptimal = false
			break
		}
	}

	o.logger.Debug().
		Int("tasks", len(dayTasks)).
		Int("conflicts", len(conflicts)).
		Int("utilization", utilization).
		Int("balance", balance).
		Msg("schedule optimized")

	return &Result{
		IsOptimal:        isOptimal,
		Conflicts:        conflicts,
		Alternatives:     alternatives,
		UtilizationScore: utilization,
		WorkloadBalance:  balance,
		Recommendations:  o.recommendations(dayTasks, utilization, balance),
	}
}

// utilizationScore is the scheduled share of nominal staff-hour capacity,
// rounded up and clamped to [0,100].
func (o *Optimizer) utilizationScore(dayTasks []schedule.Task) int {
	staffCount := o.registry.StaffCount()
	if staffCount == 0 {
		return 0
	}
	capacity := o.opts.NominalHoursPerStaff * float64(staffCount)
	scheduled := float64(schedule.TotalMinutes(dayTasks)) / 60
	score := int(math.Ceil(scheduled / capacity * 100))
	return clamp(score, 0, 100)
}

// workloadBalance rewards even distribution of scheduled minutes across
// staff: 100 − 100·σ/μ, clamped to [0,100]. At most one distinct workload
// value scores a perfect 100.
func (o *Optimizer) workloadBalance(dayTasks []schedule.Task) int {
	perStaff := make(map[string]float64)
	for _, t := range dayTasks {
		staffID := o.registry.ResolveStaffID(t.StaffID, t.AssignedToRole)
		perStaff[staffID] += float64(t.DurationMinutes)
	}
	if len(perStaff) == 0 {
		return 100
	}

	mean := 0.0
	for _, m := range perStaff {
		mean += m
	}
	mean /= float64(len(perStaff))
	if mean == 0 {
		return 100
	}

	variance := 0.0
	for _, m := range perStaff {
		d := m - mean
		variance += d * d
	}
	variance /= float64(len(perStaff))
	stdDev := math.Sqrt(variance)

	return clamp(int(math.Round(100-stdDev/mean*100)), 0, 100)
}

// alternativesFor scans the target day on the alternative grid and returns
// the first non-conflicting windows.
func (o *Optimizer) alternativesFor(dayTasks []schedule.Task, targetDate time.Time) []schedule.AlternativeSlot {
	var out []schedule.AlternativeSlot
	window := time.Duration(o.opts.AlternativeWindowMinutes) * time.Minute
	step := time.Duration(o.opts.AlternativeStepMinutes) * time.Minute

	dayStart, dayEnd := o.dayWindow(targetDate)
	for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
		slot := schedule.Interval{Start: start, End: start.Add(window)}
		if o.overlapsSchedule(slot, dayTasks) {
			continue
		}
		out = append(out, schedule.AlternativeSlot{
			ID:         uuid.New().String(),
			Start:      slot.Start,
			End:        slot.End,
			Confidence: o.opts.AlternativeConfidence,
			Reason:     "available time slot with no conflicts",
		})
		if len(out) >= o.opts.MaxAlternatives {
			break
		}
	}
	return out
}

// SuggestOptimalTime proposes start times for one procedure on the target
// day, scanning on the finer suggestion grid with the full buffer-inclusive
// duration. Unknown procedures yield no suggestions.
func (o *Optimizer) SuggestOptimalTime(procedureTitle string, level catalog.ComplexityLevel, targetDate time.Time, existing []schedule.Task) []schedule.AlternativeSlot {
	if _, ok := o.catalog.Procedure(procedureTitle); !ok {
		o.logger.Warn().Str("procedure", procedureTitle).Msg("cannot suggest time for unknown procedure")
		return nil
	}

	need := time.Duration(o.durations.TotalDuration(procedureTitle, level, true)) * time.Minute
	step := time.Duration(o.opts.SuggestionStepMinutes) * time.Minute
	dayTasks := schedule.OnDay(existing, targetDate)

	var out []schedule.AlternativeSlot
	dayStart, dayEnd := o.dayWindow(targetDate)
	for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
		slot := schedule.Interval{Start: start, End: start.Add(need)}
		if slot.End.After(dayEnd) {
			break
		}
		if o.overlapsSchedule(slot, dayTasks) {
			continue
		}
		out = append(out, schedule.AlternativeSlot{
			ID:         uuid.New().String(),
			Start:      slot.Start,
			End:        slot.End,
			Confidence: o.opts.SuggestionConfidence,
			Reason:     "optimal time slot with no conflicts",
		})
		if len(out) >= o.opts.MaxSuggestions {
			break
		}
	}
	return out
}

func (o *Optimizer) dayWindow(targetDate time.Time) (time.Time, time.Time) {
	y, m, d := targetDate.Date()
	loc := targetDate.Location()
	start := time.Date(y, m, d, o.opts.DayStartHour, 0, 0, 0, loc)
	end := time.Date(y, m, d, o.opts.DayEndHour, 0, 0, 0, loc)
	return start, end
}

func (o *Optimizer) overlapsSchedule(slot schedule.Interval, tasks []schedule.Task) bool {
	for _, t := range tasks {
		if slot.Overlaps(t.Interval()) {
			return true
		}
	}
	return false
}

// recommendations derives schedule-level advice from the configured
// thresholds.
func (o *Optimizer) recommendations(dayTasks []schedule.Task, utilization, balance int) []string {
	var recs []string

	if utilization > o.opts.HighUtilization {
		recs = append(recs, "Consider adding additional staff or extending clinic hours")
	} else if utilization < o.opts.LowUtilization {
		recs = append(recs, "Opportunity to schedule more procedures or reduce staff hours")
	}

	if balance < o.opts.LowBalance {
		recs = append(recs, "Redistribute tasks to balance workload across staff members")
	}

	for _, t := range dayTasks {
		if proc, ok := o.catalog.Procedure(t.Title); ok && proc.FatigueScore > o.opts.HighFatigueScore {
			recs = append(recs, "Schedule mandatory breaks after high-fatigue procedures")
			break
		}
	}

	return recs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
