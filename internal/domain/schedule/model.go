package schedule

import (
	"sort"
	"time"
)

// Task is one scheduled appointment, owned by the caller. Title maps to a
// procedure definition; StaffID is the explicit assignment and falls back
// to role resolution when empty. The engine only reads tasks.
type Task struct {
	Title            string    `json:"title"`
	AssignedToRole   string    `json:"assigned_to_role"`
	StaffID          string    `json:"staff_id,omitempty"`
	DueAt            time.Time `json:"due_at"`
	DurationMinutes  int       `json:"duration_minutes"`
	ResourceRequired string    `json:"resource_required,omitempty"` // "OT", "Lab", or empty
}

// Valid reports whether the task carries enough data to be scheduled.
// Malformed tasks are excluded from computation per the fail-soft policy;
// flagging them is the job of an upstream validation layer.
func (t Task) Valid() bool {
	return t.DurationMinutes > 0 && !t.DueAt.IsZero()
}

// Interval returns the task's scheduled time window.
func (t Task) Interval() Interval {
	return Interval{Start: t.DueAt, End: t.DueAt.Add(time.Duration(t.DurationMinutes) * time.Minute)}
}

// Hours returns the task duration in fractional hours.
func (t Task) Hours() float64 {
	return float64(t.DurationMinutes) / 60
}

// Interval is a half-open [Start, End) time window.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports strict overlap: windows that merely touch, such as
// 9:00–9:30 and 9:30–10:00, do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// SameDay reports whether two instants fall on the same calendar day in
// the day's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnDay returns the valid tasks due on the given calendar day, in due-time
// order.
func OnDay(tasks []Task, day time.Time) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.Valid() {
			continue
		}
		if SameDay(t.DueAt, day) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

// TotalMinutes sums the durations of the given tasks.
func TotalMinutes(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		total += t.DurationMinutes
	}
	return total
}
