// Package helpers collects small numeric and unit-conversion utilities
// shared across the engine and its demo CLI. Depth/pressure conversion
// lives in internal/units now that it must follow the spec's
// saltwater-calibrated constants; this package keeps the teacher's
// tolerance comparison and imperial/metric conversions, which apply
// unchanged regardless of which pressure model is in use.
package helpers

import "math"

// EqualFloat64 compares two float64 values to see if they are close enough
// together, within a defined threshold, to be considered equal.
func EqualFloat64(a, b float64) bool {
	const float64EqualityThreshold float64 = 1e-9
	return math.Abs(a-b) <= float64EqualityThreshold
}

// WithinTolerance is like EqualFloat64 but with a caller-supplied
// threshold, used for the engine's documented 0.01 m ascent-safety
// tolerance.
func WithinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// DescOrAsc indicates whether a diver is descending (positive depth delta,
// 1.0 is returned), ascending (negative depth delta, -1.0 is returned), or
// staying at the same level (0 is returned) when moving from one depth to
// another.
func DescOrAsc(fromD, toD float64) float64 {
	switch {
	case EqualFloat64(fromD, toD):
		return 0.0
	case fromD < toD:
		return 1.0
	default:
		return -1.0
	}
}

func MetresToFeet(depth float64) float64 {
	return depth * 3.281
}

func FeetToMetres(depth float64) float64 {
	return depth / 3.281
}

func LitresToCubicFeet(volume float64) float64 {
	return volume * 0.03531
}

func CubicFeetToLitres(volume float64) float64 {
	return volume / 0.03531
}

func BarToPSI(pressure float64) float64 {
	return pressure * 14.5038
}

func PSIToBar(pressure float64) float64 {
	return pressure / 14.5038
}
