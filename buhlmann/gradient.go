package buhlmann

import (
	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/internal/units"
)

// combinedCoefficients returns the loading-weighted a and b coefficients
// for a compartment carrying both N2 and He, per Bühlmann's mixed-gas
// formulation:
//
//	a = (aN2*PN2 + aHe*PHe) / (PN2 + PHe)
//	b = (bN2*PN2 + bHe*PHe) / (PN2 + PHe)
//
// When the compartment carries no inert gas at all (never true once a
// dive has begun, but guarded for completeness) the N2 coefficients are
// returned unweighted.
func combinedCoefficients(tc TissueCompartment, coefs compartmentCoefficients) (a, b float64) {
	total := tc.TotalPressure()
	if total <= 0 {
		return coefs.n2A, coefs.n2B
	}
	a = (coefs.n2A*tc.PN2 + coefs.heA*tc.PHe) / total
	b = (coefs.n2B*tc.PN2 + coefs.heB*tc.PHe) / total
	return a, b
}

// CombinedCoefficients exposes combinedCoefficients for callers (such as
// package stopanalysis) that need to report a compartment's effective a/b
// alongside its ceiling, without recomputing the gas-weighting formula
// themselves.
func CombinedCoefficients(tc TissueCompartment, cs CoefficientSet, compartment int) (a, b float64) {
	return combinedCoefficients(tc, coefficientTables[cs][compartment])
}

// MValue returns the compartment's raw (GF100) tolerated ambient pressure:
// the ambient pressure at which its current inert-gas loading sits
// exactly on the surfacing M-value line, Pamb = (P - a) * b.
func MValue(tc TissueCompartment, cs CoefficientSet, compartment int) float64 {
	coefs := coefficientTables[cs][compartment]
	a, b := combinedCoefficients(tc, coefs)
	return (tc.TotalPressure() - a) * b
}

// ToleratedAmbientPressure returns the lowest ambient pressure a
// compartment can be taken to without its loading exceeding gf fraction
// of its raw M-value surfacing limit (gf=1.0 recovers the unmodified
// Bühlmann ceiling; gf<1.0 is more conservative). It implements:
//
//	Ptol = (P - a*gf) / (gf/b + 1 - gf)
//
// the standard gradient-factor-adjusted inversion of the M-value line,
// so that at gf=1 the surfacing ambient pressure exactly equals the
// compartment's M-value, and at gf=0 it equals the compartment's own
// loading (no tolerance at all).
func ToleratedAmbientPressure(tc TissueCompartment, cs CoefficientSet, compartment int, gf float64) float64 {
	coefs := coefficientTables[cs][compartment]
	a, b := combinedCoefficients(tc, coefs)
	p := tc.TotalPressure()
	return (p - a*gf) / (gf/b + 1.0 - gf)
}

// ToleratedLoading returns the compartment's tolerated inert-gas loading
// at a given ambient pressure pAmb, M(P) = a + P/b — the direct form of
// the M-value line, as opposed to MValue's inverted form. Used by the
// repetitive-dive layer's pressure-group quantization, which compares a
// compartment's current loading against its tolerated loading at the
// surface.
func ToleratedLoading(tc TissueCompartment, cs CoefficientSet, compartment int, pAmb float64) float64 {
	coefs := coefficientTables[cs][compartment]
	a, b := combinedCoefficients(tc, coefs)
	return a + pAmb/b
}

// GradientFactors configures the low/high conservatism bracket applied
// across the ascent, as percentages (e.g. Low: 30, High: 85 for "30/85").
type GradientFactors struct {
	Low  int
	High int
}

// Validate checks that both factors lie in [10, 100] and Low <= High, per
// the engine's gradient-factor invariants.
func (gf GradientFactors) Validate() error {
	if gf.Low < 10 || gf.Low > 100 || gf.High < 10 || gf.High > 100 {
		return decoerr.Wrapf(decoerr.ErrInvalidGradientFactors,
			"gradient factors must be in [10,100], got low=%d high=%d", gf.Low, gf.High)
	}
	if gf.Low > gf.High {
		return decoerr.Wrapf(decoerr.ErrInvalidGradientFactors,
			"low gradient factor (%d) must not exceed high (%d)", gf.Low, gf.High)
	}
	return nil
}

// At resolves the fractional (0..1) gradient factor to apply at the
// diver's current depth, linearly interpolated between Low (at
// firstStopDepth) and High (at the surface, depth 0). Depths at or
// beyond firstStopDepth use Low; at or shallower than the surface use
// High. firstStopDepth of 0 (no decompression obligation) resolves to
// High everywhere.
func (gf GradientFactors) At(depth, firstStopDepth float64) float64 {
	low := float64(gf.Low) / 100.0
	high := float64(gf.High) / 100.0

	if firstStopDepth <= 0 {
		return high
	}
	if depth >= firstStopDepth {
		return low
	}
	if depth <= 0 {
		return high
	}

	frac := depth / firstStopDepth
	return high - frac*(high-low)
}

// Ceiling returns the shallowest depth (rounded up to the spec's 3 m stop
// grid by the caller, not here) a single compartment tolerates given a
// resolved gradient factor. A ceiling <= 0 means the compartment imposes
// no decompression obligation.
func Ceiling(tc TissueCompartment, cs CoefficientSet, compartment int, gf float64) float64 {
	tolPamb := ToleratedAmbientPressure(tc, cs, compartment, gf)
	return pressureToCeilingDepth(tolPamb)
}

func pressureToCeilingDepth(pamb float64) float64 {
	if pamb <= units.SurfacePressure {
		return 0.0
	}
	return (pamb - units.SurfacePressure) / units.BarPerMeterSalt
}

// ControllingCeiling scans every compartment and returns the deepest
// (most restrictive) ceiling across all 16, along with the 0-based index
// of the controlling compartment.
func ControllingCeiling(tissues Tissues, cs CoefficientSet, gf float64) (ceiling float64, compartment int) {
	for i := range tissues {
		c := Ceiling(tissues[i], cs, i, gf)
		if c > ceiling {
			ceiling = c
			compartment = i
		}
	}
	return ceiling, compartment
}
