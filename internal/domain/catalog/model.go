package catalog

// ComplexityLevel grades how demanding a specific case is expected to be.
type ComplexityLevel string

const (
	ComplexitySimple   ComplexityLevel = "simple"
	ComplexityStandard ComplexityLevel = "standard"
	ComplexityComplex  ComplexityLevel = "complex"
)

// Valid reports whether the level is one of the three known grades.
func (l ComplexityLevel) Valid() bool {
	switch l {
	case ComplexitySimple, ComplexityStandard, ComplexityComplex:
		return true
	}
	return false
}

// ProcedureCategory groups procedures by clinical function.
type ProcedureCategory string

const (
	CategoryConsultation   ProcedureCategory = "consultation"
	CategoryMonitoring     ProcedureCategory = "monitoring"
	CategoryLaboratory     ProcedureCategory = "laboratory"
	CategorySurgical       ProcedureCategory = "surgical"
	CategoryTransfer       ProcedureCategory = "transfer"
	CategoryAdministrative ProcedureCategory = "administrative"
)

// ProcedureDefinition is an immutable catalog entry describing one clinic
// procedure. Title is the scheduling key: tasks reference procedures by it.
type ProcedureDefinition struct {
	ID                     string                      `json:"id" yaml:"id"`
	Title                  string                      `json:"title" yaml:"title"`
	Name                   string                      `json:"name" yaml:"name"`
	Category               ProcedureCategory           `json:"category" yaml:"category"`
	RequiredRole           string                      `json:"required_role" yaml:"required_role"`
	RequiredEquipment      []string                    `json:"required_equipment,omitempty" yaml:"required_equipment,omitempty"`
	RequiredRoom           string                      `json:"required_room,omitempty" yaml:"required_room,omitempty"`
	BaseDuration           int                         `json:"base_duration_minutes" yaml:"base_duration_minutes"`
	ComplexityModifiers    map[ComplexityLevel]float64 `json:"complexity_modifiers" yaml:"complexity_modifiers"`
	BufferBefore           int                         `json:"buffer_before_minutes" yaml:"buffer_before_minutes"`
	BufferAfter            int                         `json:"buffer_after_minutes" yaml:"buffer_after_minutes"`
	FatigueScore           int                         `json:"fatigue_score" yaml:"fatigue_score"`
	CanRunConcurrently     bool                        `json:"can_run_concurrently" yaml:"can_run_concurrently"`
	MaxConcurrentInstances int                         `json:"max_concurrent_instances" yaml:"max_concurrent_instances"`
}

// Modifier returns the duration multiplier for the given complexity,
// defaulting to the standard modifier when the level is unknown.
func (p *ProcedureDefinition) Modifier(level ComplexityLevel) float64 {
	if m, ok := p.ComplexityModifiers[level]; ok {
		return m
	}
	return p.ComplexityModifiers[ComplexityStandard]
}

// StaffResource describes one staff member and their workload limits.
// The engine treats these as read-only clinic configuration.
type StaffResource struct {
	ID                             string   `json:"id" yaml:"id"`
	Name                           string   `json:"name" yaml:"name"`
	Role                           string   `json:"role" yaml:"role"`
	Specializations                []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`
	MaxDailyHours                  float64  `json:"max_daily_hours" yaml:"max_daily_hours"`
	MaxWeeklyHours                 float64  `json:"max_weekly_hours" yaml:"max_weekly_hours"`
	MaxConsecutiveDays             int      `json:"max_consecutive_days" yaml:"max_consecutive_days"`
	MandatoryBreakInterval         int      `json:"mandatory_break_interval_minutes" yaml:"mandatory_break_interval_minutes"`
	MinBreakDuration               int      `json:"min_break_duration_minutes" yaml:"min_break_duration_minutes"`
	MaxFatigueScore                int      `json:"max_fatigue_score" yaml:"max_fatigue_score"`
	MaxConsecutiveHighFatigueTasks int      `json:"max_consecutive_high_fatigue_tasks" yaml:"max_consecutive_high_fatigue_tasks"`
}

// EquipmentResource describes one concrete equipment instance.
type EquipmentResource struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Room        string `json:"room,omitempty" yaml:"room,omitempty"`
	Operational bool   `json:"operational" yaml:"operational"`
}

// RoomResource describes one clinic room and its fixed equipment.
type RoomResource struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Type         string   `json:"type" yaml:"type"`
	Capacity     int      `json:"capacity" yaml:"capacity"`
	Equipment    []string `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	CleaningTime int      `json:"cleaning_time_minutes" yaml:"cleaning_time_minutes"`
}
