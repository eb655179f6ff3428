package duration

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinicops/scheduler/internal/domain/catalog"
)

// FallbackMinutes is returned for procedures missing from the catalog, so
// duration math keeps producing usable schedules with partial data.
const FallbackMinutes = 30

// Calculator turns (procedure, complexity) into concrete minute durations.
// All methods are pure over the injected catalog snapshot.
type Calculator struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewCalculator creates a Calculator over the given catalog.
func NewCalculator(cat *catalog.Catalog, logger zerolog.Logger) *Calculator {
	return &Calculator{catalog: cat, logger: logger.With().Str("component", "duration").Logger()}
}

// TotalDuration computes the scheduled minutes for one procedure instance:
// round(base × complexity modifier), plus before/after buffers when
// includeBuffers is set. A catalog miss logs a warning and falls back to
// FallbackMinutes rather than failing the computation.
func (c *Calculator) TotalDuration(procedureTitle string, level catalog.ComplexityLevel, includeBuffers bool) int {
	proc, ok := c.catalog.Procedure(procedureTitle)
	if !ok {
		c.logger.Warn().Str("procedure", procedureTitle).Msg("procedure definition not found, using fallback duration")
		return FallbackMinutes
	}

	adjusted := int(math.Round(float64(proc.BaseDuration) * proc.Modifier(level)))
	if !includeBuffers {
		return adjusted
	}
	return adjusted + proc.BufferBefore + proc.BufferAfter
}

// Breakdown exposes the pieces of a duration computation for display and
// audit.
type Breakdown struct {
	BaseDuration       int     `json:"base_duration"`
	ComplexityModifier float64 `json:"complexity_modifier"`
	AdjustedDuration   int     `json:"adjusted_duration"`
	BufferBefore       int     `json:"buffer_before"`
	BufferAfter        int     `json:"buffer_after"`
	TotalDuration      int     `json:"total_duration"`
	FatigueScore       int     `json:"fatigue_score"`
}

// Breakdown returns the duration components for one procedure/complexity
// pair.
func (c *Calculator) Breakdown(procedureTitle string, level catalog.ComplexityLevel) (*Breakdown, error) {
	proc, ok := c.catalog.Procedure(procedureTitle)
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrProcedureNotFound, procedureTitle)
	}

	modifier := proc.Modifier(level)
	adjusted := int(math.Round(float64(proc.BaseDuration) * modifier))
	return &Breakdown{
		BaseDuration:       proc.BaseDuration,
		ComplexityModifier: modifier,
		AdjustedDuration:   adjusted,
		BufferBefore:       proc.BufferBefore,
		BufferAfter:        proc.BufferAfter,
		TotalDuration:      adjusted + proc.BufferBefore + proc.BufferAfter,
		FatigueScore:       proc.FatigueScore,
	}, nil
}

// Diagnoses that push a case into the complex bracket regardless of other
// factors.
var complexDiagnoses = []string{
	"severe male factor",
	"endometriosis",
	"poor ovarian reserve",
}

// EstimateComplexity scores patient factors into a complexity level:
// age >40 scores 2 (>35 scores 1), more than 3 previous cycles scores 2
// (more than 1 scores 1), and any complex diagnosis scores 2. Total >= 4 is
// complex, >= 2 standard, otherwise simple.
func EstimateComplexity(patientAge, previousCycles int, diagnoses []string) catalog.ComplexityLevel {
	score := 0

	switch {
	case patientAge > 40:
		score += 2
	case patientAge > 35:
		score++
	}

	switch {
	case previousCycles > 3:
		score += 2
	case previousCycles > 1:
		score++
	}

	for _, d := range diagnoses {
		lower := strings.ToLower(d)
		matched := false
		for _, cd := range complexDiagnoses {
			if strings.Contains(lower, cd) {
				score += 2
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}

	switch {
	case score >= 4:
		return catalog.ComplexityComplex
	case score >= 2:
		return catalog.ComplexityStandard
	default:
		return catalog.ComplexitySimple
	}
}
