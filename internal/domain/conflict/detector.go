package conflict

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/schedule"
)

// Type classifies what kind of double-booking or limit violation occurred.
type Type string

const (
	TypeStaff     Type = "staff"
	TypeEquipment Type = "equipment"
	TypeRoom      Type = "room"
	TypeWorkload  Type = "workload"
	TypeFatigue   Type = "fatigue"
)

// Severity ranks how urgently a conflict needs resolution.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Conflict is one detected scheduling problem. Ephemeral: produced per
// detection call, never stored.
type Conflict struct {
	Type                  Type                       `json:"type"`
	Severity              Severity                   `json:"severity"`
	Message               string                     `json:"message"`
	AffectedResourceIDs   []string                   `json:"affected_resource_ids"`
	SuggestedAlternatives []schedule.AlternativeSlot `json:"suggested_alternatives"`
}

// Options carries the detection thresholds the clinic configures.
type Options struct {
	// FatigueLimit is the accumulated per-day fatigue score above which a
	// fatigue conflict is raised.
	FatigueLimit int
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{FatigueLimit: 50}
}

// Detector scans a day's tasks for staff, equipment, room, workload, and
// fatigue conflicts. Pure over the injected catalog/registry snapshot.
type Detector struct {
	catalog  *catalog.Catalog
	registry *catalog.Registry
	opts     Options
	logger   zerolog.Logger
}

// NewDetector creates a Detector.
func NewDetector(cat *catalog.Catalog, reg *catalog.Registry, opts Options, logger zerolog.Logger) *Detector {
	if opts.FatigueLimit <= 0 {
		opts.FatigueLimit = DefaultOptions().FatigueLimit
	}
	return &Detector{
		catalog:  cat,
		registry: reg,
		opts:     opts,
		logger:   logger.With().Str("component", "conflict").Logger(),
	}
}

// Detect runs all conflict checks over one day's tasks. Tasks are expected
// to be pre-filtered to the target day and sorted by due time; workload
// accumulation depends on that order. Tasks referencing unknown procedures
// are skipped (the catalog miss is surfaced by the duration layer).
func (d *Detector) Detect(tasks []schedule.Task) []Conflict {
	var conflicts []Conflict
	conflicts = append(conflicts, d.detectStaff(tasks)...)
	conflicts = append(conflicts, d.detectResources(tasks)...)
	conflicts = append(conflicts, d.detectWorkload(tasks)...)
	return conflicts
}

// detectStaff flags overlapping appointments for the same staff member.
// Overlap is strict: intervals that merely touch do not conflict.
func (d *Detector) detectStaff(tasks []schedule.Task) []Conflict {
	var conflicts []Conflict
	placed := make(map[string][]schedule.Interval)

	for _, task := range tasks {
		if _, ok := d.catalog.Procedure(task.Title); !ok {
			continue
		}

		staffID := d.registry.ResolveStaffID(task.StaffID, task.AssignedToRole)
		iv := task.Interval()

		for _, existing := range placed[staffID] {
			if iv.Overlaps(existing) {
				conflicts = append(conflicts, Conflict{
					Type:     TypeStaff,
					Severity: SeverityHigh,
					Message: fmt.Sprintf("staff %s has overlapping appointments: %s-%s overlaps %s-%s",
						staffID,
						iv.Start.Format("15:04"), iv.End.Format("15:04"),
						existing.Start.Format("15:04"), existing.End.Format("15:04")),
					AffectedResourceIDs: []string{staffID},
				})
				break
			}
		}

		placed[staffID] = append(placed[staffID], iv)
	}

	return conflicts
}

// detectResources flags double-booked equipment and rooms. Required
// equipment types and room types resolve to the first matching concrete
// instance in the registry.
func (d *Detector) detectResources(tasks []schedule.Task) []Conflict {
	var conflicts []Conflict
	equipSchedule := make(map[string][]schedule.Interval)
	roomSchedule := make(map[string][]schedule.Interval)

	for _, task := range tasks {
		proc, ok := d.catalog.Procedure(task.Title)
		if !ok {
			continue
		}
		iv := task.Interval()

		for _, equipType := range proc.RequiredEquipment {
			equip, ok := d.registry.EquipmentByType(equipType)
			if !ok {
				continue
			}
			if overlapsAny(iv, equipSchedule[equip.ID]) {
				conflicts = append(conflicts, Conflict{
					Type:     TypeEquipment,
					Severity: SeverityMedium,
					Message: fmt.Sprintf("equipment %s is double-booked at %s-%s",
						equip.Name, iv.Start.Format("15:04"), iv.End.Format("15:04")),
					AffectedResourceIDs: []string{equip.ID},
				})
			}
			equipSchedule[equip.ID] = append(equipSchedule[equip.ID], iv)
		}

		if proc.RequiredRoom != "" {
			room, ok := d.registry.RoomByType(proc.RequiredRoom)
			if !ok {
				continue
			}
			if overlapsAny(iv, roomSchedule[room.ID]) {
				conflicts = append(conflicts, Conflict{
					Type:     TypeRoom,
					Severity: SeverityHigh,
					Message: fmt.Sprintf("room %s is double-booked at %s-%s",
						room.Name, iv.Start.Format("15:04"), iv.End.Format("15:04")),
					AffectedResourceIDs: []string{room.ID},
				})
			}
			roomSchedule[room.ID] = append(roomSchedule[room.ID], iv)
		}
	}

	return conflicts
}

// detectWorkload accumulates hours and fatigue per staff member across the
// day in due-time order, raising a critical workload conflict for each task
// pushing the total past the daily hour limit and a fatigue conflict past
// the configured fatigue threshold.
func (d *Detector) detectWorkload(tasks []schedule.Task) []Conflict {
	type load struct {
		hours   float64
		fatigue int
	}

	var conflicts []Conflict
	workload := make(map[string]*load)

	for _, task := range tasks {
		proc, ok := d.catalog.Procedure(task.Title)
		if !ok {
			continue
		}

		staffID := d.registry.ResolveStaffID(task.StaffID, task.AssignedToRole)
		staff, ok := d.registry.Staff(staffID)
		if !ok {
			continue
		}

		w := workload[staffID]
		if w == nil {
			w = &load{}
			workload[staffID] = w
		}
		w.hours += task.Hours()
		w.fatigue += proc.FatigueScore

		if w.hours > staff.MaxDailyHours {
			conflicts = append(conflicts, Conflict{
				Type:     TypeWorkload,
				Severity: SeverityCritical,
				Message: fmt.Sprintf("%s exceeds daily hour limit (%.1f/%.0f hours)",
					staff.Name, w.hours, staff.MaxDailyHours),
				AffectedResourceIDs: []string{staffID},
			})
		}

		if w.fatigue > d.opts.FatigueLimit {
			conflicts = append(conflicts, Conflict{
				Type:     TypeFatigue,
				Severity: SeverityMedium,
				Message: fmt.Sprintf("%s has high accumulated fatigue score (%d, limit %d)",
					staff.Name, w.fatigue, d.opts.FatigueLimit),
				AffectedResourceIDs: []string{staffID},
			})
		}
	}

	return conflicts
}

func overlapsAny(iv schedule.Interval, existing []schedule.Interval) bool {
	for _, e := range existing {
		if iv.Overlaps(e) {
			return true
		}
	}
	return false
}
