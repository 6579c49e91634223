// Package repetitive implements the repetitive-dive layer (spec component
// C8): residual tissue evolution during a surface interval, pressure-group
// quantization, a surface-interval solver, no-fly time, and dive-sequence
// validation. Grounded on the teacher dive-planner's DiveProfile chaining
// idea (each dive's starting tissues come from the previous dive's ending
// tissues) but generalized into its own explicit, pure layer rather than a
// method walking a slice of DivePlans.
package repetitive

import (
	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/internal/dlog"
)

// PressureGroup is a letter A..Z quantizing residual nitrogen loading,
// with A the least loaded and Z the most.
type PressureGroup byte

// thresholds are the upper-bound loading ratios (max_i (pN2+pHe)/M(Pamb))
// for groups A..Z. No published pressure-group table generalizes to a
// mixed-gas, gradient-factor-free engine, so this repo defines its own
// evenly spaced bracket from 0.60, just above the ratio of a diver fully
// equilibrated to surface air (about 0.59, set by the slowest
// compartment), up to the raw M-value boundary (1.00); see DESIGN.md.
var thresholds = func() [26]float64 {
	var t [26]float64
	const lo, hi = 0.60, 1.00
	for i := range t {
		t[i] = lo + float64(i)*(hi-lo)/25.0
	}
	return t
}()

// Evolve steps tissues forward by minutes of surface time breathing air
// (FN2=0.79, FHe=0), at depth 0.
func Evolve(tissues buhlmann.Tissues, minutes float64) buhlmann.Tissues {
	if minutes <= 0 {
		return tissues
	}
	const surfaceAirFN2 = 0.79
	return buhlmann.ConstantDepthUpdate(tissues, buhlmann.ZHL16C, surfaceAirFN2, 0.0, 0.0, minutes)
}

// loadingRatio returns a compartment's current loading as a fraction of
// its surface (Pamb = surface pressure) M-value.
func loadingRatio(tc buhlmann.TissueCompartment, compartment int) float64 {
	mv := buhlmann.ToleratedLoading(tc, buhlmann.ZHL16C, compartment, surfacePressure)
	if mv <= 0 {
		return 0
	}
	return tc.TotalPressure() / mv
}

const surfacePressure = 1.01325

// MaxLoadingRatio returns the maximum, across all 16 compartments, of
// current loading divided by its tolerated loading at the surface.
func MaxLoadingRatio(tissues buhlmann.Tissues) float64 {
	max := 0.0
	for i := range tissues {
		r := loadingRatio(tissues[i], i)
		if r > max {
			max = r
		}
	}
	return max
}

// PressureGroupFor quantizes tissues into a letter A..Z: the largest
// letter whose threshold is <= the maximum loading ratio.
func PressureGroupFor(tissues buhlmann.Tissues) PressureGroup {
	ratio := MaxLoadingRatio(tissues)
	group := byte('A')
	for i, th := range thresholds {
		if th <= ratio {
			group = byte('A' + i)
		}
	}
	return PressureGroup(group)
}

// Rules configures the repetitive-dive layer's tunable bounds.
type Rules struct {
	MinimumSurfaceInterval float64 // minutes; default 60
	SingleDiveNoFlyFloor   float64 // minutes; default 720 (12h)
	MultiDiveNoFlyFloor    float64 // minutes; default 1080 (18h)
	MaxDivesPerDay         int     // default 3
	MinimumIntervalBetween float64 // minutes; default 60
	LoadingRatioCeiling    float64 // default 0.95, cumulative loading warning threshold
}

// DefaultRules returns the engine's default repetitive-dive configuration.
func DefaultRules() Rules {
	return Rules{
		MinimumSurfaceInterval: 60.0,
		SingleDiveNoFlyFloor:   720.0,
		MultiDiveNoFlyFloor:    1080.0,
		MaxDivesPerDay:         3,
		MinimumIntervalBetween: 60.0,
		LoadingRatioCeiling:    0.95,
	}
}

const searchStep = 5.0
const searchHorizon = 24.0 * 60.0

// SurfaceIntervalResult reports the solved surface-interval times.
type SurfaceIntervalResult struct {
	Minimum     float64 `bson:"minimum" json:"minimum"`
	Recommended float64 `bson:"recommended" json:"recommended"`
	Optimal     float64 `bson:"optimal" json:"optimal"`
}

// SurfaceIntervalToGroup solves for the surface interval, in 5-minute
// steps up to 24 hours, after which tissues evolve down to targetGroup or
// better, bounded below by rules.MinimumSurfaceInterval. It also reports
// the "optimal" interval: the time for the slowest compartment (largest
// N2 half-time) to complete half its desaturation journey back toward
// surface-equilibrium N2.
func SurfaceIntervalToGroup(tissues buhlmann.Tissues, targetGroup PressureGroup, rules Rules) (SurfaceIntervalResult, error) {
	if targetGroup < 'A' || targetGroup > 'Z' {
		return SurfaceIntervalResult{}, decoerr.Wrapf(decoerr.ErrInvalidGradientFactors,
			"target pressure group must be A..Z, got %q", byte(targetGroup))
	}

	recommended := rules.MinimumSurfaceInterval
	for t := 0.0; t <= searchHorizon; t += searchStep {
		evolved := Evolve(tissues, t)
		if PressureGroupFor(evolved) <= targetGroup {
			if t > recommended {
				recommended = t
			}
			dlog.Debugf("surface_interval_to_group: solved t=%.0fmin group=%c target=%c",
				t, PressureGroupFor(evolved), targetGroup)
			return SurfaceIntervalResult{
				Minimum:     rules.MinimumSurfaceInterval,
				Recommended: recommended,
				Optimal:     optimalInterval(tissues),
			}, nil
		}
	}

	return SurfaceIntervalResult{
		Minimum:     rules.MinimumSurfaceInterval,
		Recommended: searchHorizon,
		Optimal:     optimalInterval(tissues),
	}, nil
}

// optimalInterval returns the time for the slowest compartment (by N2
// half-time) to complete 50% of its desaturation half-time journey
// toward surface-equilibrium N2.
func optimalInterval(tissues buhlmann.Tissues) float64 {
	slowest := buhlmann.CompartmentCount - 1
	surfaceN2 := buhlmann.NewTissues()[slowest].PN2
	if tissues[slowest].PN2 <= surfaceN2 {
		return 0
	}
	// A Schreiner off-gas at the surface decays exponentially with time
	// constant ln(2)/halfTime; 50% of the distance to equilibrium is
	// covered after exactly one half-time, regardless of starting loading.
	return buhlmann.N2HalfTime(buhlmann.ZHL16C, slowest)
}

// NoFlyTimeResult reports the solved no-fly time.
type NoFlyTimeResult struct {
	Minutes float64 `bson:"minutes" json:"minutes"`
}

// NoFlyTime extends residual evolution, in 5-minute steps, until the
// slowest compartment's N2 falls to <= 1.2x surface-equilibrium N2,
// floored by the single- or multi-dive default per rules.
func NoFlyTime(tissues buhlmann.Tissues, multiDive bool, rules Rules) (NoFlyTimeResult, error) {
	floor := rules.SingleDiveNoFlyFloor
	if multiDive {
		floor = rules.MultiDiveNoFlyFloor
	}

	slowest := buhlmann.CompartmentCount - 1
	surfaceN2 := buhlmann.NewTissues()[slowest].PN2
	limit := surfaceN2 * 1.2

	for t := 0.0; t <= searchHorizon; t += searchStep {
		evolved := Evolve(tissues, t)
		if evolved[slowest].PN2 <= limit {
			if t < floor {
				t = floor
			}
			return NoFlyTimeResult{Minutes: t}, nil
		}
	}

	return NoFlyTimeResult{Minutes: floor}, nil
}

// DiveRecord is one dive in a planned sequence, as seen by sequence
// validation: its maximum depth and the surface interval that preceded it
// (0 for the first dive of the day).
type DiveRecord struct {
	MaxDepth              float64
	SurfaceIntervalBefore float64
	TissuesAfter          buhlmann.Tissues
}

// ValidateSequence checks a day's planned dive sequence against rules:
// dive count, minimum surface intervals, and cumulative tissue loading.
// A non-increasing max-depth profile is conventional but not required;
// an increase is reported as a warning, not an error.
func ValidateSequence(dives []DiveRecord, rules Rules) ([]string, error) {
	if len(dives) == 0 {
		return nil, decoerr.Wrapf(decoerr.ErrInvalidSegments, "dive sequence must not be empty")
	}
	if len(dives) > rules.MaxDivesPerDay {
		return nil, decoerr.Wrapf(decoerr.ErrInvalidSegments,
			"sequence has %d dives, exceeds MaxDivesPerDay=%d", len(dives), rules.MaxDivesPerDay)
	}

	var warnings []string
	for i, d := range dives {
		if i > 0 && d.SurfaceIntervalBefore < rules.MinimumIntervalBetween {
			return nil, decoerr.Wrapf(decoerr.ErrInvalidRates,
				"dive %d surface interval %.0fmin is below the minimum %.0fmin", i, d.SurfaceIntervalBefore, rules.MinimumIntervalBetween)
		}
		if i > 0 && d.MaxDepth > dives[i-1].MaxDepth {
			warnings = append(warnings, "reverse profile across dives: dive is deeper than the one before it")
		}
		if MaxLoadingRatio(d.TissuesAfter) > rules.LoadingRatioCeiling {
			warnings = append(warnings, "cumulative tissue loading exceeds the configured ceiling")
		}
	}

	return warnings, nil
}
