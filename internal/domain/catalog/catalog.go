package catalog

import (
	"errors"
	"fmt"
)

// Common lookup errors.
var (
	ErrProcedureNotFound = errors.New("procedure not found")
	ErrStaffNotFound     = errors.New("staff member not found")
)

// Catalog is an immutable, keyed table of procedure definitions. It is
// constructed once and read-only afterwards; concurrent readers need no
// coordination.
type Catalog struct {
	byTitle map[string]*ProcedureDefinition
	ordered []*ProcedureDefinition
}

// NewCatalog validates the definitions and builds the lookup table.
// Entries violating the catalog invariants are rejected wholesale so a
// misconfigured catalog is caught at startup, not mid-optimization.
func NewCatalog(defs []ProcedureDefinition) (*Catalog, error) {
	c := &Catalog{byTitle: make(map[string]*ProcedureDefinition, len(defs))}
	for i := range defs {
		d := defs[i]
		if err := validateProcedure(&d); err != nil {
			return nil, fmt.Errorf("procedure %q: %w", d.Title, err)
		}
		if _, dup := c.byTitle[d.Title]; dup {
			return nil, fmt.Errorf("procedure %q: duplicate title", d.Title)
		}
		c.byTitle[d.Title] = &d
		c.ordered = append(c.ordered, &d)
	}
	return c, nil
}

func validateProcedure(d *ProcedureDefinition) error {
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if d.BaseDuration < 0 {
		return fmt.Errorf("base duration must be >= 0, got %d", d.BaseDuration)
	}
	if d.BufferBefore < 0 || d.BufferAfter < 0 {
		return fmt.Errorf("buffers must be >= 0, got before=%d after=%d", d.BufferBefore, d.BufferAfter)
	}
	if d.FatigueScore < 1 || d.FatigueScore > 10 {
		return fmt.Errorf("fatigue score must be in [1,10], got %d", d.FatigueScore)
	}
	if d.MaxConcurrentInstances < 1 {
		return fmt.Errorf("max concurrent instances must be >= 1, got %d", d.MaxConcurrentInstances)
	}
	for _, level := range []ComplexityLevel{ComplexitySimple, ComplexityStandard, ComplexityComplex} {
		m, ok := d.ComplexityModifiers[level]
		if !ok {
			return fmt.Errorf("missing %s complexity modifier", level)
		}
		if m <= 0 {
			return fmt.Errorf("%s complexity modifier must be > 0, got %g", level, m)
		}
	}
	return nil
}

// Procedure looks up a definition by its scheduling title.
func (c *Catalog) Procedure(title string) (*ProcedureDefinition, bool) {
	d, ok := c.byTitle[title]
	return d, ok
}

// Procedures returns all definitions in catalog order.
func (c *Catalog) Procedures() []*ProcedureDefinition {
	return c.ordered
}

// ByCategory returns the definitions belonging to one clinical category.
func (c *Catalog) ByCategory(cat ProcedureCategory) []*ProcedureDefinition {
	var out []*ProcedureDefinition
	for _, d := range c.ordered {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// ByRole returns the definitions a given role is qualified to perform.
func (c *Catalog) ByRole(role string) []*ProcedureDefinition {
	var out []*ProcedureDefinition
	for _, d := range c.ordered {
		if d.RequiredRole == role {
			out = append(out, d)
		}
	}
	return out
}

// Registry holds the clinic's static staff, equipment, and room tables.
// Like Catalog it is built once and never mutated by the engine.
type Registry struct {
	staff     []*StaffResource
	equipment []*EquipmentResource
	rooms     []*RoomResource

	staffByID map[string]*StaffResource
}

// NewRegistry builds the resource lookup tables.
func NewRegistry(staff []StaffResource, equipment []EquipmentResource, rooms []RoomResource) (*Registry, error) {
	r := &Registry{staffByID: make(map[string]*StaffResource, len(staff))}
	for i := range staff {
		s := staff[i]
		if s.ID == "" {
			return nil, fmt.Errorf("staff entry %d: id is required", i)
		}
		if _, dup := r.staffByID[s.ID]; dup {
			return nil, fmt.Errorf("staff %q: duplicate id", s.ID)
		}
		if s.MaxDailyHours <= 0 {
			return nil, fmt.Errorf("staff %q: max daily hours must be > 0", s.ID)
		}
		if s.MandatoryBreakInterval <= 0 {
			return nil, fmt.Errorf("staff %q: mandatory break interval must be > 0", s.ID)
		}
		if s.MinBreakDuration <= 0 {
			return nil, fmt.Errorf("staff %q: min break duration must be > 0", s.ID)
		}
		if s.MaxFatigueScore <= 0 {
			return nil, fmt.Errorf("staff %q: max fatigue score must be > 0", s.ID)
		}
		r.staffByID[s.ID] = &s
		r.staff = append(r.staff, &s)
	}
	for i := range equipment {
		e := equipment[i]
		r.equipment = append(r.equipment, &e)
	}
	for i := range rooms {
		rm := rooms[i]
		r.rooms = append(r.rooms, &rm)
	}
	return r, nil
}

// Staff looks up a staff member by id.
func (r *Registry) Staff(id string) (*StaffResource, bool) {
	s, ok := r.staffByID[id]
	return s, ok
}

// AllStaff returns the staff table in registry order.
func (r *Registry) AllStaff() []*StaffResource {
	return r.staff
}

// StaffCount returns the number of registered staff members.
func (r *Registry) StaffCount() int {
	return len(r.staff)
}

// StaffByRole returns the first staff member carrying the role. The
// first-match rule mirrors the clinic's legacy role-based assignment; tasks
// that need a specific person should carry an explicit staff id instead.
func (r *Registry) StaffByRole(role string) (*StaffResource, bool) {
	for _, s := range r.staff {
		if s.Role == role {
			return s, true
		}
	}
	return nil, false
}

// UnknownStaffID is attributed to assignments that resolve to nobody, so
// conflicts caused by configuration gaps stay visible instead of being
// silently dropped.
const UnknownStaffID = "unknown"

// ResolveStaffID maps a task assignment to a concrete staff id. An explicit
// id wins; otherwise the first staff member carrying the role is used.
// Unresolvable assignments map to UnknownStaffID.
func (r *Registry) ResolveStaffID(explicitID, role string) string {
	if explicitID != "" {
		if _, ok := r.staffByID[explicitID]; ok {
			return explicitID
		}
		return UnknownStaffID
	}
	if s, ok := r.StaffByRole(role); ok {
		return s.ID
	}
	return UnknownStaffID
}

// EquipmentByType returns the first operational equipment instance of the
// given type.
func (r *Registry) EquipmentByType(equipType string) (*EquipmentResource, bool) {
	for _, e := range r.equipment {
		if e.Type == equipType && e.Operational {
			return e, true
		}
	}
	return nil, false
}

// RoomByType returns the first room of the given type.
func (r *Registry) RoomByType(roomType string) (*RoomResource, bool) {
	for _, rm := range r.rooms {
		if rm.Type == roomType {
			return rm, true
		}
	}
	return nil, false
}

// Rooms returns the room table in registry order.
func (r *Registry) Rooms() []*RoomResource {
	return r.rooms
}

// Equipment returns the equipment table in registry order.
func (r *Registry) Equipment() []*EquipmentResource {
	return r.equipment
}
