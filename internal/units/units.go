// Package units holds the physical constants and depth/pressure
// conversions shared by every other package in the engine. Grounded on
// helpers.Pressure/helpers.Depth from the teacher dive-planner package,
// generalized from its simplified 10 m-per-bar approximation to the
// spec's saltwater-calibrated constants.
package units

import "math"

// Physical constants (C1). All pressures are absolute, in bar; all depths
// are in metres of seawater.
const (
	// SurfacePressure is standard atmospheric pressure at sea level.
	SurfacePressure = 1.01325

	// WaterVapourPressure is the partial pressure of water vapour in the
	// alveoli, constant regardless of ambient pressure.
	WaterVapourPressure = 0.0627

	// BarPerMeterSalt is the hydrostatic pressure gradient in saltwater.
	BarPerMeterSalt = 0.09985

	// DescentRate is the default descent rate in metres/minute.
	DescentRate = 20.0

	// AscentRate is the default ascent rate in metres/minute.
	AscentRate = 9.0

	// SafetyStopDepth is the default safety-stop depth in metres.
	SafetyStopDepth = 5.0

	// SafetyStopTime is the default safety-stop duration in minutes.
	SafetyStopTime = 3.0

	// GasSwitchTime is the time in minutes charged against runtime when
	// switching decompression gases mid-stop.
	GasSwitchTime = 1.0

	// StopGrid is the depth increment in metres between decompression
	// stops.
	StopGrid = 3.0

	// MaxSegments bounds the number of segments accepted by the
	// multi-level scheduler.
	MaxSegments = 10

	// MaxDepth is the default maximum depth accepted by input validation.
	MaxDepth = 100.0

	// IterationCap guards the stop-finding loop against divergence.
	IterationCap = 10000

	// SurfaceN2Fraction is the fraction of nitrogen in dry air used to
	// equilibrate tissues at the surface.
	SurfaceN2Fraction = 0.79
)

// DepthToPressure converts a depth in metres to an absolute pressure in
// bar.
func DepthToPressure(depth float64) float64 {
	return SurfacePressure + depth*BarPerMeterSalt
}

// PressureToDepth converts an absolute pressure in bar to a depth in
// metres, clamped to a minimum of zero (the surface).
func PressureToDepth(pressure float64) float64 {
	d := (pressure - SurfacePressure) / BarPerMeterSalt
	return math.Max(d, 0.0)
}

// InspiredPressure returns the partial pressure of a gas component at
// ambient pressure pAmb once water-vapour pressure has been subtracted.
func InspiredPressure(pAmb, fGas float64) float64 {
	return (pAmb - WaterVapourPressure) * fGas
}

// RoundUpToGrid rounds depth up to the next multiple of StopGrid metres,
// conservative direction for ascent-ceiling to decompression-stop
// conversions.
func RoundUpToGrid(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return math.Ceil(depth/StopGrid) * StopGrid
}
