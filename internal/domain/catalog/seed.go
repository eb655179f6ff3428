package catalog

// Built-in IVF clinic catalog. Used by the sandbox server and as the
// default when no catalog document is supplied; production deployments load
// their own tables through LoadDocument.

// SeedProcedures returns the standard IVF procedure definitions.
func SeedProcedures() []ProcedureDefinition {
	return []ProcedureDefinition{
		{
			ID: "review-history", Title: "Review Patient History", Name: "Review Patient History",
			Category: CategoryConsultation, RequiredRole: RoleDoctor,
			BaseDuration: 30,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.5,
			},
			BufferBefore: 5, BufferAfter: 5,
			FatigueScore: 3, CanRunConcurrently: true, MaxConcurrentInstances: 2,
		},
		{
			ID: "prescribe-medication", Title: "Prescribe Medication", Name: "Prescribe Medication",
			Category: CategoryConsultation, RequiredRole: RoleDoctor,
			BaseDuration: 20,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.7, ComplexityStandard: 1.0, ComplexityComplex: 1.3,
			},
			BufferBefore: 5, BufferAfter: 5,
			FatigueScore: 2, CanRunConcurrently: true, MaxConcurrentInstances: 3,
		},
		{
			ID: "follicle-scan", Title: "Follicle Scan", Name: "Follicle Scan",
			Category: CategoryMonitoring, RequiredRole: RoleDoctor,
			RequiredEquipment: []string{"Ultrasound Machine"}, RequiredRoom: "Ultrasound Room",
			BaseDuration: 15,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.4,
			},
			BufferBefore: 5, BufferAfter: 10,
			FatigueScore: 4, MaxConcurrentInstances: 1,
		},
		{
			ID: "perform-opu", Title: "Perform OPU", Name: "Oocyte Pickup (OPU)",
			Category: CategorySurgical, RequiredRole: RoleDoctor,
			RequiredEquipment: []string{"Ultrasound Machine", "Aspiration System", "Anesthesia Equipment"},
			RequiredRoom:      "Operating Theater",
			BaseDuration:      45,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.6,
			},
			BufferBefore: 15, BufferAfter: 20,
			FatigueScore: 8, MaxConcurrentInstances: 1,
		},
		{
			ID: "identify-oocytes", Title: "Identify & Count Oocytes", Name: "Identify & Count Oocytes",
			Category: CategoryLaboratory, RequiredRole: RoleEmbryologist,
			RequiredEquipment: []string{"Microscope", "Incubator"}, RequiredRoom: "Laboratory",
			BaseDuration: 30,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.7, ComplexityStandard: 1.0, ComplexityComplex: 1.4,
			},
			BufferBefore: 10, BufferAfter: 10,
			FatigueScore: 6, CanRunConcurrently: true, MaxConcurrentInstances: 2,
		},
		{
			ID: "perform-fertilization", Title: "Perform Fertilization", Name: "Perform Fertilization",
			Category: CategoryLaboratory, RequiredRole: RoleEmbryologist,
			RequiredEquipment: []string{"Microscope", "Micromanipulator", "Incubator"}, RequiredRoom: "Laboratory",
			BaseDuration: 60,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.5,
			},
			BufferBefore: 15, BufferAfter: 15,
			FatigueScore: 7, CanRunConcurrently: true, MaxConcurrentInstances: 2,
		},
		{
			ID: "day-3-check", Title: "Day 3 Check", Name: "Day 3 Embryo Check",
			Category: CategoryLaboratory, RequiredRole: RoleEmbryologist,
			RequiredEquipment: []string{"Microscope", "Incubator"}, RequiredRoom: "Laboratory",
			BaseDuration: 20,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.3,
			},
			BufferBefore: 5, BufferAfter: 10,
			FatigueScore: 4, CanRunConcurrently: true, MaxConcurrentInstances: 3,
		},
		{
			ID: "day-5-grading", Title: "Day 5 Check & Grading", Name: "Day 5 Check & Grading",
			Category: CategoryLaboratory, RequiredRole: RoleEmbryologist,
			RequiredEquipment: []string{"Microscope", "Incubator"}, RequiredRoom: "Laboratory",
			BaseDuration: 25,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.4,
			},
			BufferBefore: 5, BufferAfter: 10,
			FatigueScore: 5, CanRunConcurrently: true, MaxConcurrentInstances: 2,
		},
		{
			ID: "embryo-transfer", Title: "Embryo Transfer Procedure", Name: "Embryo Transfer",
			Category: CategoryTransfer, RequiredRole: RoleDoctor,
			RequiredEquipment: []string{"Ultrasound Machine", "Transfer Catheter"}, RequiredRoom: "Transfer Room",
			BaseDuration: 30,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.5,
			},
			BufferBefore: 10, BufferAfter: 15,
			FatigueScore: 6, MaxConcurrentInstances: 1,
		},
		{
			ID: "hcg-test", Title: "hCG Blood Test", Name: "hCG Blood Test",
			Category: CategoryMonitoring, RequiredRole: RoleNurse,
			RequiredEquipment: []string{"Blood Collection Kit"},
			BaseDuration:      10,
			ComplexityModifiers: map[ComplexityLevel]float64{
				ComplexitySimple: 0.8, ComplexityStandard: 1.0, ComplexityComplex: 1.2,
			},
			BufferBefore: 5, BufferAfter: 5,
			FatigueScore: 2, CanRunConcurrently: true, MaxConcurrentInstances: 4,
		},
	}
}

// Clinic staff roles.
const (
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleEmbryologist = "embryologist"
)

// SeedStaff returns the default staff table with per-member workload limits.
func SeedStaff() []StaffResource {
	return []StaffResource{
		{
			ID: "dr-smith", Name: "Dr. Sarah Smith", Role: RoleDoctor,
			Specializations: []string{"IVF", "Reproductive Surgery"},
			MaxDailyHours:   10, MaxWeeklyHours: 50, MaxConsecutiveDays: 6,
			MandatoryBreakInterval: 120, MinBreakDuration: 15,
			MaxFatigueScore: 60, MaxConsecutiveHighFatigueTasks: 3,
		},
		{
			ID: "dr-johnson", Name: "Dr. Michael Johnson", Role: RoleDoctor,
			Specializations: []string{"IVF", "Endocrinology"},
			MaxDailyHours:   8, MaxWeeklyHours: 40, MaxConsecutiveDays: 6,
			MandatoryBreakInterval: 120, MinBreakDuration: 15,
			MaxFatigueScore: 60, MaxConsecutiveHighFatigueTasks: 3,
		},
		{
			ID: "nurse-williams", Name: "Nurse Jennifer Williams", Role: RoleNurse,
			Specializations: []string{"Patient Care", "Monitoring"},
			MaxDailyHours:   8, MaxWeeklyHours: 40, MaxConsecutiveDays: 5,
			MandatoryBreakInterval: 180, MinBreakDuration: 15,
			MaxFatigueScore: 50, MaxConsecutiveHighFatigueTasks: 4,
		},
		{
			ID: "embryologist-chen", Name: "Dr. Lisa Chen", Role: RoleEmbryologist,
			Specializations: []string{"Embryo Culture", "ICSI", "PGT"},
			MaxDailyHours:   9, MaxWeeklyHours: 45, MaxConsecutiveDays: 5,
			MandatoryBreakInterval: 150, MinBreakDuration: 20,
			MaxFatigueScore: 55, MaxConsecutiveHighFatigueTasks: 2,
		},
	}
}

// SeedEquipment returns the default equipment table.
func SeedEquipment() []EquipmentResource {
	return []EquipmentResource{
		{ID: "ultrasound-1", Name: "Ultrasound Machine 1", Type: "Ultrasound Machine", Room: "Ultrasound Room 1", Operational: true},
		{ID: "ultrasound-2", Name: "Ultrasound Machine 2", Type: "Ultrasound Machine", Room: "Ultrasound Room 2", Operational: true},
		{ID: "microscope-1", Name: "Laboratory Microscope 1", Type: "Microscope", Room: "Laboratory", Operational: true},
	}
}

// SeedRooms returns the default room table.
func SeedRooms() []RoomResource {
	return []RoomResource{
		{ID: "ultrasound-room-1", Name: "Ultrasound Room 1", Type: "Ultrasound Room", Capacity: 1, Equipment: []string{"ultrasound-1"}, CleaningTime: 15},
		{ID: "operating-theater", Name: "Operating Theater", Type: "Operating Theater", Capacity: 1, Equipment: []string{"ultrasound-2", "anesthesia-1"}, CleaningTime: 30},
		{ID: "laboratory", Name: "IVF Laboratory", Type: "Laboratory", Capacity: 3, Equipment: []string{"microscope-1", "incubator-1", "micromanipulator-1"}, CleaningTime: 10},
	}
}

// SeedCatalog builds the default catalog; it panics on invariant violations
// because the seed data is compiled in and must always validate.
func SeedCatalog() *Catalog {
	c, err := NewCatalog(SeedProcedures())
	if err != nil {
		panic(err)
	}
	return c
}

// SeedRegistry builds the default resource registry.
func SeedRegistry() *Registry {
	r, err := NewRegistry(SeedStaff(), SeedEquipment(), SeedRooms())
	if err != nil {
		panic(err)
	}
	return r
}
