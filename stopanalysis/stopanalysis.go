// Package stopanalysis implements the per-compartment stop analysis
// query (spec component C7): a pure snapshot of tissue saturation,
// margins, and ceiling at a queried depth, with no orchestration of its
// own. Grounded on the teacher's ChartProfile/ProfileSample machinery,
// which samples a running buhlmann.ZhlModel at fixed intervals; this
// package generalizes that idea into a single on-demand snapshot rather
// than a time series, since the expanded spec treats stop analysis as a
// query, not a simulation step.
package stopanalysis

import (
	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/internal/units"
)

// Status classifies a compartment's saturation relative to its tolerated
// limit at the query depth.
type Status int

const (
	Safe Status = iota
	Caution
	Danger
)

func (s Status) String() string {
	switch s {
	case Safe:
		return "safe"
	case Caution:
		return "caution"
	case Danger:
		return "danger"
	}
	return "unknown"
}

func statusFor(saturationPct float64) Status {
	switch {
	case saturationPct >= 90.0:
		return Danger
	case saturationPct >= 70.0:
		return Caution
	default:
		return Safe
	}
}

// CompartmentSnapshot is the analysis of a single compartment at the
// query depth.
type CompartmentSnapshot struct {
	Compartment    int     `bson:"compartment" json:"compartment"`
	TotalPressure  float64 `bson:"total_pressure" json:"total_pressure"`
	A              float64 `bson:"a" json:"a"`
	B              float64 `bson:"b" json:"b"`
	MValue         float64 `bson:"m_value" json:"m_value"`
	TolerableBar   float64 `bson:"tolerable_bar" json:"tolerable_bar"`
	MarginBar      float64 `bson:"margin_bar" json:"margin_bar"`
	MarginPct      float64 `bson:"margin_pct" json:"margin_pct"`
	Ceiling        float64 `bson:"ceiling" json:"ceiling"`
	SaturationPct  float64 `bson:"saturation_pct" json:"saturation_pct"`
	Status         Status  `bson:"status" json:"status"`
	IsLimiting     bool    `bson:"is_limiting" json:"is_limiting"`
}

// Result is the full 16-compartment analysis at one queried depth.
type Result struct {
	Compartments       [buhlmann.CompartmentCount]CompartmentSnapshot `bson:"compartments" json:"compartments"`
	LimitingCompartment int     `bson:"limiting_compartment" json:"limiting_compartment"`
	IsAscentSafe        bool    `bson:"is_ascent_safe" json:"is_ascent_safe"`
	CurrentGF           float64 `bson:"current_gf" json:"current_gf"`
}

const ascentTolerance = 0.01

// AnalyzeStop computes the per-compartment saturation, margin, and
// ceiling snapshot for tissues at targetDepth, given a gradient-factor
// bracket and the first-stop depth the bracket interpolates across.
func AnalyzeStop(tissues buhlmann.Tissues, targetDepth, gfLow, gfHigh, firstStopDepth float64) (Result, error) {
	if targetDepth < 0 {
		return Result{}, decoerr.Wrapf(decoerr.ErrInvalidDepth, "target depth must be non-negative, got %f", targetDepth)
	}
	gf := buhlmann.GradientFactors{Low: int(gfLow), High: int(gfHigh)}
	if err := gf.Validate(); err != nil {
		return Result{}, err
	}

	currentGF := gf.At(targetDepth, firstStopDepth)
	targetPressure := units.DepthToPressure(targetDepth)

	var result Result
	result.CurrentGF = currentGF

	maxCeiling := 0.0
	limiting := 0

	for i := 0; i < buhlmann.CompartmentCount; i++ {
		tc := tissues[i]
		a, b := buhlmann.CombinedCoefficients(tc, buhlmann.ZHL16C, i)
		mv := buhlmann.ToleratedLoading(tc, buhlmann.ZHL16C, i, targetPressure)
		tolBar := buhlmann.ToleratedAmbientPressure(tc, buhlmann.ZHL16C, i, currentGF)
		ceiling := buhlmann.Ceiling(tc, buhlmann.ZHL16C, i, currentGF)

		marginBar := tolBar - targetPressure
		marginPct := 0.0
		if mv > 0 {
			marginPct = marginBar / mv * 100.0
		}
		saturationPct := 0.0
		if mv > 0 {
			saturationPct = tc.TotalPressure() / mv * 100.0
		}

		result.Compartments[i] = CompartmentSnapshot{
			Compartment:   i,
			TotalPressure: tc.TotalPressure(),
			A:             a,
			B:             b,
			MValue:        mv,
			TolerableBar:  tolBar,
			MarginBar:     marginBar,
			MarginPct:     marginPct,
			Ceiling:       ceiling,
			SaturationPct: saturationPct,
			Status:        statusFor(saturationPct),
		}

		if ceiling > maxCeiling {
			maxCeiling = ceiling
			limiting = i
		}
	}

	result.Compartments[limiting].IsLimiting = true
	result.LimitingCompartment = limiting
	result.IsAscentSafe = maxCeiling <= targetDepth+ascentTolerance

	return result, nil
}
