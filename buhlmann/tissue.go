package buhlmann

import (
	"math"

	"github.com/subsurfacelabs/decoengine/internal/units"
)

// TissueCompartment holds the inert-gas partial pressures, in bar, loaded
// into one of the 16 theoretical tissue compartments.
type TissueCompartment struct {
	PN2 float64
	PHe float64
}

// Tissues is the full 16-compartment state of a diver's tissue loading.
type Tissues [CompartmentCount]TissueCompartment

// NewTissues returns the tissue state of a diver who has been breathing air
// at the surface long enough to equilibrate fully, the universal starting
// point for a fresh (non-repetitive) dive.
func NewTissues() Tissues {
	surfaceN2 := units.InspiredPressure(units.SurfacePressure, units.SurfaceN2Fraction)
	var t Tissues
	for i := range t {
		t[i] = TissueCompartment{PN2: surfaceN2, PHe: 0.0}
	}
	return t
}

// schreinerEquation computes the inert-gas loading of a single compartment
// after exposure to a constant or linearly-changing ambient partial
// pressure, following Bühlmann's formulation of Schreiner's equation:
//
//	P = Pio + R*(t - 1/k) - (Pio - Pi - R/k)*e^(-k*t)
//
// where Pio is the initial inspired inert-gas partial pressure, Pi is the
// compartment's initial loading, R is the rate of change of inspired
// partial pressure per minute, t is the exposure time in minutes, and k is
// ln(2)/halfTime.
func schreinerEquation(pio, pi, r, t, halfTime float64) float64 {
	k := math.Ln2 / halfTime
	return pio + r*(t-1.0/k) - (pio-pi-r/k)*math.Exp(-k*t)
}

// ConstantDepthUpdate loads every compartment in tissues for duration
// minutes at a fixed depth breathing gas, using coefficient set cs. It
// returns a new Tissues value; the input is left unmodified.
func ConstantDepthUpdate(tissues Tissues, cs CoefficientSet, fn2, fhe, depth, duration float64) Tissues {
	pAmb := units.DepthToPressure(depth)
	pion2 := units.InspiredPressure(pAmb, fn2)
	piohe := units.InspiredPressure(pAmb, fhe)

	var out Tissues
	coefs := coefficientTables[cs]
	for i := range tissues {
		out[i].PN2 = schreinerEquation(pion2, tissues[i].PN2, 0.0, duration, coefs[i].n2HalfTime)
		out[i].PHe = schreinerEquation(piohe, tissues[i].PHe, 0.0, duration, coefs[i].heHalfTime)
	}
	return out
}

// ChangingDepthUpdate loads every compartment in tissues for duration
// minutes while depth changes linearly from fromDepth to toDepth (an
// ascent or descent at constant rate), using coefficient set cs. It
// returns a new Tissues value; the input is left unmodified.
func ChangingDepthUpdate(tissues Tissues, cs CoefficientSet, fn2, fhe, fromDepth, toDepth, duration float64) Tissues {
	if duration <= 0 {
		return tissues
	}

	pAmb0 := units.DepthToPressure(fromDepth)
	pAmb1 := units.DepthToPressure(toDepth)

	pioN2_0 := units.InspiredPressure(pAmb0, fn2)
	pioN2_1 := units.InspiredPressure(pAmb1, fn2)
	pioHe0 := units.InspiredPressure(pAmb0, fhe)
	pioHe1 := units.InspiredPressure(pAmb1, fhe)

	rN2 := (pioN2_1 - pioN2_0) / duration
	rHe := (pioHe1 - pioHe0) / duration

	var out Tissues
	coefs := coefficientTables[cs]
	for i := range tissues {
		out[i].PN2 = schreinerEquation(pioN2_0, tissues[i].PN2, rN2, duration, coefs[i].n2HalfTime)
		out[i].PHe = schreinerEquation(pioHe0, tissues[i].PHe, rHe, duration, coefs[i].heHalfTime)
	}
	return out
}

// TotalPressure returns the sum of a compartment's N2 and He loadings,
// used wherever the model treats the two gases as additive toward a
// combined ceiling (they load and off-gas independently; only their sum
// drives tolerated ambient pressure).
func (tc TissueCompartment) TotalPressure() float64 {
	return tc.PN2 + tc.PHe
}
