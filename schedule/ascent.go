package schedule

import (
	"math"

	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/helpers"
	"github.com/subsurfacelabs/decoengine/internal/units"
)

// ascentTolerance is the numerical slack applied to ceiling-vs-target-depth
// comparisons, matching the engine's documented ascent-safety tolerance.
const ascentTolerance = 0.01

const coefficientSet = buhlmann.ZHL16C

// ascentResult carries everything the stop-finding loop produced, for the
// caller (ComputeProfile/ComputeMultilevelProfile) to fold into a
// DiveProfile.
type ascentResult struct {
	tissues  buhlmann.Tissues
	stops    []DecompressionStop
	switches []GasSwitch
	runtime  float64
	gas      gasmix.GasMix
	diverged bool
}

// ascentSafe reports whether the controlling ceiling for tissues, at
// gradient factor gf, is at or above (shallower than or equal to)
// targetDepth within ascentTolerance.
func ascentSafe(tissues buhlmann.Tissues, gf, targetDepth float64) bool {
	ceiling, _ := buhlmann.ControllingCeiling(tissues, coefficientSet, gf)
	return ceiling <= targetDepth || helpers.WithinTolerance(ceiling, targetDepth, ascentTolerance)
}

// runAscent drives the stop-finding control loop (spec C5 steps 4-7) from
// depth to the surface, starting from tissues already loaded through the
// descent and bottom/segment phases. maxDepthSeen gates whether a safety
// stop is warranted (only dives deeper than 10 m get one). Tissues that
// could surface directly at gfHigh (the NDL boundary) take the
// no-decompression path; otherwise the first stop is located at gfLow.
func runAscent(
	tissues buhlmann.Tissues,
	depth, runtime float64,
	currentGas gasmix.GasMix,
	inventory gasmix.GasInventory,
	gf buhlmann.GradientFactors,
	ascentRate, maxDepthSeen float64,
) ascentResult {
	gfLowFraction := float64(gf.Low) / 100.0

	rawCeiling, _ := buhlmann.ControllingCeiling(tissues, coefficientSet, gfLowFraction)
	firstStopDepth := units.RoundUpToGrid(rawCeiling)
	if firstStopDepth > depth-units.StopGrid {
		firstStopDepth = math.Max(depth-units.StopGrid, 0)
	}

	result := ascentResult{tissues: tissues, runtime: runtime, gas: currentGas}

	if firstStopDepth <= 0 || ascentSafe(tissues, float64(gf.High)/100.0, 0) {
		result = ascendAndMaybeSafetyStop(result, depth, 0, ascentRate, maxDepthSeen)
		return result
	}

	// Ascend to the first stop.
	ascentTime := (depth - firstStopDepth) / ascentRate
	result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
		result.gas.FN2, result.gas.FHe, depth, firstStopDepth, ascentTime)
	result.runtime += ascentTime

	currentDepth := firstStopDepth
	safetyStopDone := false
	iterations := 0

	for currentDepth > 0 {
		iterations++
		if iterations > units.IterationCap {
			result.diverged = true
			break
		}

		nextDepth := currentDepth - units.StopGrid
		if nextDepth < 0 {
			nextDepth = 0
		}

		// a. Evaluate a gas switch.
		var switchRecord *GasSwitch
		best, found := gasmix.BestGasForDepth(currentDepth, inventory.AllGases(), 1.6)
		if found && gasmix.SwitchWorthwhile(result.gas, best) {
			sw := GasSwitch{Depth: currentDepth, FromGas: result.gas, ToGas: best, Reason: SwitchOptimal}
			switchRecord = &sw
			result.switches = append(result.switches, sw)
			result.tissues = buhlmann.ConstantDepthUpdate(result.tissues, coefficientSet,
				best.FN2, best.FHe, currentDepth, units.GasSwitchTime)
			result.runtime += units.GasSwitchTime
			result.gas = best
		}

		// b. Hold until the next shallower depth is safe to ascend to.
		gfHere := gf.At(currentDepth, firstStopDepth)
		stopDuration := 0.0
		for !ascentSafe(result.tissues, gfHere, nextDepth) {
			iterations++
			if iterations > units.IterationCap {
				result.diverged = true
				break
			}
			result.tissues = buhlmann.ConstantDepthUpdate(result.tissues, coefficientSet,
				result.gas.FN2, result.gas.FHe, currentDepth, 1.0)
			stopDuration++
			result.runtime++
		}
		if result.diverged {
			break
		}

		// c. Emit the stop.
		if stopDuration > 0 {
			result.stops = append(result.stops, DecompressionStop{
				Depth: currentDepth, Duration: stopDuration, Runtime: result.runtime,
				GasMix: result.gas, GasSwitch: switchRecord,
			})
		}

		// d. Safety stop, inserted once, between the 6 m stop and the
		// 3 m/surface transition.
		if !safetyStopDone && currentDepth <= 6 && maxDepthSeen > 10 {
			if currentDepth != units.SafetyStopDepth {
				t := math.Abs(currentDepth-units.SafetyStopDepth) / ascentRate
				result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
					result.gas.FN2, result.gas.FHe, currentDepth, units.SafetyStopDepth, t)
				result.runtime += t
			}
			if stopDuration < units.SafetyStopTime {
				result.tissues = buhlmann.ConstantDepthUpdate(result.tissues, coefficientSet,
					result.gas.FN2, result.gas.FHe, units.SafetyStopDepth, units.SafetyStopTime)
				result.runtime += units.SafetyStopTime
				result.stops = append(result.stops, DecompressionStop{
					Depth: units.SafetyStopDepth, Duration: units.SafetyStopTime,
					Runtime: result.runtime, GasMix: result.gas,
				})
			}
			safetyStopDone = true
			t := math.Abs(units.SafetyStopDepth-nextDepth) / ascentRate
			result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
				result.gas.FN2, result.gas.FHe, units.SafetyStopDepth, nextDepth, t)
			result.runtime += t
			currentDepth = nextDepth
			continue
		}

		// e. Ascend to the next depth.
		t := units.StopGrid / ascentRate
		result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
			result.gas.FN2, result.gas.FHe, currentDepth, nextDepth, t)
		result.runtime += t
		currentDepth = nextDepth
	}

	return result
}

// ascendAndMaybeSafetyStop handles the no-decompression-required path:
// ascend directly from depth to the surface, inserting the safety stop at
// 5 m if maxDepthSeen warrants one. When fromDepth is 0 (already at the
// surface) it returns result unchanged.
func ascendAndMaybeSafetyStop(result ascentResult, fromDepth, toDepth, ascentRate, maxDepthSeen float64) ascentResult {
	if fromDepth <= 0 {
		return result
	}

	if maxDepthSeen > 10 {
		tToStop := (fromDepth - units.SafetyStopDepth) / ascentRate
		result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
			result.gas.FN2, result.gas.FHe, fromDepth, units.SafetyStopDepth, tToStop)
		result.runtime += tToStop

		result.tissues = buhlmann.ConstantDepthUpdate(result.tissues, coefficientSet,
			result.gas.FN2, result.gas.FHe, units.SafetyStopDepth, units.SafetyStopTime)
		result.runtime += units.SafetyStopTime
		result.stops = append(result.stops, DecompressionStop{
			Depth: units.SafetyStopDepth, Duration: units.SafetyStopTime,
			Runtime: result.runtime, GasMix: result.gas,
		})

		tToSurface := units.SafetyStopDepth / ascentRate
		result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
			result.gas.FN2, result.gas.FHe, units.SafetyStopDepth, toDepth, tToSurface)
		result.runtime += tToSurface
		return result
	}

	t := (fromDepth - toDepth) / ascentRate
	result.tissues = buhlmann.ChangingDepthUpdate(result.tissues, coefficientSet,
		result.gas.FN2, result.gas.FHe, fromDepth, toDepth, t)
	result.runtime += t
	return result
}

// computeNDL simulates holding at depth on currentGas, one minute at a
// time, from tissues (the state immediately after descent, before any
// bottom time has accrued), until the GF-High ceiling first becomes
// positive. It returns the last time at which the ceiling was still zero.
func computeNDL(tissues buhlmann.Tissues, gas gasmix.GasMix, depth float64, gfHigh int) float64 {
	gfHighFraction := float64(gfHigh) / 100.0

	if !ascentSafe(tissues, gfHighFraction, 0) {
		return 0
	}

	const maxNDLMinutes = 1440.0
	minutes := 0.0
	current := tissues
	for minutes < maxNDLMinutes {
		next := buhlmann.ConstantDepthUpdate(current, coefficientSet, gas.FN2, gas.FHe, depth, 1.0)
		if !ascentSafe(next, gfHighFraction, 0) {
			break
		}
		current = next
		minutes++
	}
	return minutes
}
