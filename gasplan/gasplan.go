// Package gasplan implements the air-consumption layer (spec component
// C9): SAC-rate-driven gas usage per segment, allocated across a diver's
// cylinders by role, with reserve and percent-used warnings. Grounded on
// the teacher dive-planner's DivePlanStop.GasRequirement/MinGas/
// GasAvailable/WorkingGas/GasRequired/GasSpare family, generalized from a
// single implicit tank to an explicit, role-tagged multi-cylinder
// inventory per the expanded spec's C9.
package gasplan

import (
	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/schedule"
)

// Cylinder is one gas source available to the diver.
type Cylinder struct {
	Name          string      `bson:"name" json:"name"`
	Volume        float64     `bson:"volume" json:"volume"`
	StartPressure float64     `bson:"start_pressure" json:"start_pressure"`
	Role          gasmix.Role `bson:"role" json:"role"`
}

// capacity returns the cylinder's total gas content in litres at the
// surface.
func (c Cylinder) capacity() float64 {
	return c.Volume * c.StartPressure
}

// CylinderResult reports one cylinder's consumption outcome.
type CylinderResult struct {
	Name          string      `bson:"name" json:"name"`
	Role          gasmix.Role `bson:"role" json:"role"`
	StartPressure float64     `bson:"start_pressure" json:"start_pressure"`
	FinalPressure float64     `bson:"final_pressure" json:"final_pressure"`
	PercentUsed   float64     `bson:"percent_used" json:"percent_used"`
	BelowReserve  bool        `bson:"below_reserve" json:"below_reserve"`
}

// AirConsumptionResult is the full per-cylinder air-consumption report.
type AirConsumptionResult struct {
	Cylinders  []CylinderResult `bson:"cylinders" json:"cylinders"`
	Sufficient bool             `bson:"sufficient" json:"sufficient"`
	Warnings   []string         `bson:"warnings" json:"warnings"`
}

const highUsageThreshold = 90.0

// segmentDemand returns the litres of gas a segment consumes, at SAC
// rate sac (L/min at the surface) for its duration at its ambient
// pressure, per the spec's `S * ((depth/10)+1) * duration` formula (the
// `(depth/10)+1` term approximates ambient pressure in atmospheres).
func segmentDemand(seg schedule.DiveSegment, sac float64) float64 {
	return sac * (seg.Depth/10.0 + 1.0) * seg.Duration
}

// roleFor maps a segment's kind to the cylinder role it draws from:
// decompression segments draw from deco cylinders, everything else
// (descent, bottom, ascent) draws from bottom cylinders.
func roleFor(kind schedule.SegmentKind) gasmix.Role {
	if kind == schedule.Deco {
		return gasmix.RoleDeco
	}
	return gasmix.RoleBottom
}

// ComputeAirConsumption allocates each segment's gas demand across the
// cylinder inventory: a segment routes to the first cylinder whose role
// matches (falling back to a bottom-role cylinder if none of the
// requested role remain), consuming litres until the cylinder reaches
// its reserve pressure, then spilling the remainder into the next
// matching cylinder.
func ComputeAirConsumption(segments []schedule.DiveSegment, sac, reserve float64, cylinders []Cylinder) (AirConsumptionResult, error) {
	if sac <= 0 {
		return AirConsumptionResult{}, decoerr.Wrapf(decoerr.ErrInvalidRates, "SAC rate must be positive, got %f", sac)
	}
	if len(cylinders) == 0 {
		return AirConsumptionResult{}, decoerr.Wrapf(decoerr.ErrInvalidSegments, "at least one cylinder is required")
	}

	remaining := make([]float64, len(cylinders))
	for i, c := range cylinders {
		remaining[i] = c.capacity()
	}
	reservePressure := reserve
	unmetLitres := 0.0

	for _, seg := range segments {
		demand := segmentDemand(seg, sac)
		if demand <= 0 {
			continue
		}

		role := roleFor(seg.Kind)
		demand = drawFrom(remaining, cylinders, role, demand, reservePressure)
		if demand > 0 && role != gasmix.RoleBottom {
			demand = drawFrom(remaining, cylinders, gasmix.RoleBottom, demand, reservePressure)
		}
		// Above-reserve supply is exhausted; any further demand eats into
		// the reserve itself rather than being silently dropped, so the
		// shortfall shows up as a below-reserve cylinder instead of a
		// missing litre count.
		if demand > 0 {
			demand = drawFrom(remaining, cylinders, role, demand, 0)
		}
		if demand > 0 && role != gasmix.RoleBottom {
			demand = drawFrom(remaining, cylinders, gasmix.RoleBottom, demand, 0)
		}
		unmetLitres += demand
	}

	result := AirConsumptionResult{Sufficient: unmetLitres <= 0}
	if unmetLitres > 0 {
		result.Warnings = append(result.Warnings, "planned gas demand exceeds available supply above reserve")
	}
	for i, c := range cylinders {
		finalLitres := remaining[i]
		finalPressure := finalLitres / c.Volume
		percentUsed := 0.0
		if c.capacity() > 0 {
			percentUsed = (c.capacity() - finalLitres) / c.capacity() * 100.0
		}
		belowReserve := finalPressure < reservePressure

		cr := CylinderResult{
			Name:          c.Name,
			Role:          c.Role,
			StartPressure: c.StartPressure,
			FinalPressure: finalPressure,
			PercentUsed:   percentUsed,
			BelowReserve:  belowReserve,
		}
		result.Cylinders = append(result.Cylinders, cr)

		if belowReserve {
			result.Sufficient = false
			result.Warnings = append(result.Warnings, "cylinder "+c.Name+" dropped below reserve pressure")
		}
		if !belowReserve && percentUsed > highUsageThreshold {
			result.Warnings = append(result.Warnings, "cylinder "+c.Name+" used more than 90% of its contents")
		}
	}

	return result, nil
}

// drawFrom consumes demand litres from cylinders matching role, in
// order, stopping each cylinder at its reserve-pressure floor and
// spilling any unmet demand into the next matching cylinder. It returns
// whatever demand could not be met by any matching cylinder.
func drawFrom(remaining []float64, cylinders []Cylinder, role gasmix.Role, demand, reservePressure float64) float64 {
	for i, c := range cylinders {
		if c.Role != role || demand <= 0 {
			continue
		}
		reserveLitres := reservePressure * c.Volume
		available := remaining[i] - reserveLitres
		if available <= 0 {
			continue
		}
		draw := available
		if draw > demand {
			draw = demand
		}
		remaining[i] -= draw
		demand -= draw
	}
	return demand
}
