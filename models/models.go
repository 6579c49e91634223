// Package models implements the alternative-model layer (spec component
// C10): VPM-B, RGBM, and US-Navy educational approximations expressed as
// parameter adjustments around package schedule's Bühlmann scheduler, plus
// a comparator that runs several models against the same parameters.
// Grounded on the teacher's DivePlan.DiveFactor family of dive-factor
// multipliers (DiveFactorEasy/Moderate/Tough/Stressful/SeriousStress),
// which are themselves an acknowledged fudge-factor approach to
// conservatism rather than distinct physics — the same spirit this
// package's model variants follow, now applied to gradient factors and
// stop durations instead of gas-consumption multipliers.
package models

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/subsurfacelabs/decoengine/schedule"
)

// Kind identifies one of the engine's alternative-model approximations.
type Kind int

const (
	// Buhlmann is the engine's native ZHL-16C gradient-factor model, run
	// unmodified; it is the baseline the other variants are compared
	// against.
	Buhlmann Kind = iota
	VPMBApprox
	RGBMApprox
	USNavyApprox
)

func (k Kind) String() string {
	switch k {
	case Buhlmann:
		return "ZHL-16C"
	case VPMBApprox:
		return "VPM-B (educational approximation, not validated)"
	case RGBMApprox:
		return "RGBM (educational approximation, not validated)"
	case USNavyApprox:
		return "US-Navy (indicative lookup, not validated)"
	}
	return "unknown"
}

// deeperStopThreshold is the depth below which VPM-B's approximation
// extends stop time, per spec §4.10.
const deeperStopThreshold = 15.0
const vpmDeepStopFactor = 1.2
const vpmGFLowBias = 10 // subtracted from gfLow to push the first stop one grid step deeper

// ComputeProfile runs p through the named model variant, returning a
// DiveProfile labeled with the variant's educational-approximation
// disclosure. priorDiveCount feeds RGBM's repetitive-dive penalty; it is
// ignored by the other variants.
func ComputeProfile(kind Kind, p schedule.DiveParameters, priorDiveCount int) (schedule.DiveProfile, error) {
	switch kind {
	case VPMBApprox:
		return computeVPMB(p)
	case RGBMApprox:
		return computeRGBM(p, priorDiveCount)
	case USNavyApprox:
		return computeUSNavy(p)
	default:
		return schedule.ComputeProfile(p)
	}
}

// computeVPMB biases the ceiling search one grid step deeper by lowering
// gfLow, then post-processes the resulting stops: any stop deeper than
// deeperStopThreshold has its duration extended by vpmDeepStopFactor,
// approximating VPM-B's emphasis on deep stops without modeling bubble
// dynamics.
func computeVPMB(p schedule.DiveParameters) (schedule.DiveProfile, error) {
	biased := p
	biased.GFLow = p.GFLow - vpmGFLowBias
	if biased.GFLow < 10 {
		biased.GFLow = 10
	}

	profile, err := schedule.ComputeProfile(biased)
	if err != nil {
		return schedule.DiveProfile{}, err
	}

	extendStopsDeeperThan(&profile, deeperStopThreshold, vpmDeepStopFactor)
	profile.ModelLabel = VPMBApprox.String()
	return profile, nil
}

// rgbmPenalty scales effective bottom time by a conservatism penalty
// that grows with the number of dives already made that day, per spec
// §4.10's 1.0/1.1/1.25/1.4 table.
func rgbmPenalty(priorDiveCount int) float64 {
	penalties := [...]float64{1.0, 1.1, 1.25, 1.4}
	if priorDiveCount < 0 {
		priorDiveCount = 0
	}
	if priorDiveCount >= len(penalties) {
		priorDiveCount = len(penalties) - 1
	}
	return penalties[priorDiveCount]
}

// computeRGBM fixes the gradient-factor pair to 30/70 and scales
// effective bottom time by the repetitive-dive penalty before handing
// off to the native scheduler.
func computeRGBM(p schedule.DiveParameters, priorDiveCount int) (schedule.DiveProfile, error) {
	adjusted := p
	adjusted.GFLow = 30
	adjusted.GFHigh = 70
	adjusted.BottomTime = p.BottomTime * rgbmPenalty(priorDiveCount)

	profile, err := schedule.ComputeProfile(adjusted)
	if err != nil {
		return schedule.DiveProfile{}, err
	}

	profile.ModelLabel = RGBMApprox.String()
	return profile, nil
}

// usNavyEntry is one row of the small indicative US-Navy-style lookup
// table: depth and bottom-time tiers mapped to a fixed total
// decompression time. It is explicitly not the published tables — see
// spec §9's open question on US-Navy fidelity.
type usNavyEntry struct {
	depth, bottomTime, totalDecompressionTime float64
}

var usNavyTable = []usNavyEntry{
	{depth: 18, bottomTime: 40, totalDecompressionTime: 0},
	{depth: 21, bottomTime: 30, totalDecompressionTime: 0},
	{depth: 27, bottomTime: 30, totalDecompressionTime: 8},
	{depth: 30, bottomTime: 25, totalDecompressionTime: 7},
	{depth: 30, bottomTime: 30, totalDecompressionTime: 14},
	{depth: 40, bottomTime: 20, totalDecompressionTime: 12},
	{depth: 40, bottomTime: 25, totalDecompressionTime: 21},
}

// computeUSNavy runs the native scheduler at a fixed 40/80
// gradient-factor pair, then looks the dive up in the small fixed table:
// if an entry lies within 1 m of depth and 2 min of bottom time (the
// first such entry in table order), the stops are rescaled to that
// entry's total decompression time. No interpolation between entries is
// done; a dive with no entry in tolerance keeps the 40/80 schedule.
func computeUSNavy(p schedule.DiveParameters) (schedule.DiveProfile, error) {
	adjusted := p
	adjusted.GFLow = 40
	adjusted.GFHigh = 80

	profile, err := schedule.ComputeProfile(adjusted)
	if err != nil {
		return schedule.DiveProfile{}, err
	}

	if entry, ok := nearestUSNavyEntry(p.Depth, p.BottomTime); ok {
		scaleDecompressionTime(&profile, entry.totalDecompressionTime)
	}

	profile.ModelLabel = USNavyApprox.String()
	return profile, nil
}

func nearestUSNavyEntry(depth, bottomTime float64) (usNavyEntry, bool) {
	const depthTolerance = 1.0
	const timeTolerance = 2.0
	for _, e := range usNavyTable {
		if absDiff(e.depth, depth) <= depthTolerance && absDiff(e.bottomTime, bottomTime) <= timeTolerance {
			return e, true
		}
	}
	return usNavyEntry{}, false
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// extendStopsDeeperThan multiplies the duration of every decompression
// stop deeper than threshold by factor, and recomputes runtime/totals so
// the profile stays internally consistent.
func extendStopsDeeperThan(profile *schedule.DiveProfile, threshold, factor float64) {
	var totalDeco float64
	runtimeShift := 0.0

	for i := range profile.DecompressionStops {
		s := &profile.DecompressionStops[i]
		if s.Depth > threshold {
			extended := s.Duration * factor
			runtimeShift += extended - s.Duration
			s.Duration = extended
		}
		s.Runtime += runtimeShift
		totalDeco += s.Duration
	}

	profile.TotalDecompressionTime = totalDeco
	profile.TotalDiveTime += runtimeShift
}

// scaleDecompressionTime rescales every stop's duration proportionally
// so the profile's total decompression time matches target, preserving
// the relative depth/duration shape the native scheduler produced. The
// profile is left unchanged when either its current total or target is
// zero.
func scaleDecompressionTime(profile *schedule.DiveProfile, target float64) {
	if profile.TotalDecompressionTime <= 0 || target <= 0 {
		return
	}
	ratio := target / profile.TotalDecompressionTime
	runtimeShift := 0.0

	for i := range profile.DecompressionStops {
		s := &profile.DecompressionStops[i]
		scaled := s.Duration * ratio
		runtimeShift += scaled - s.Duration
		s.Duration = scaled
		s.Runtime += runtimeShift
	}

	profile.TotalDecompressionTime = target
	profile.TotalDiveTime += runtimeShift
}

// ModelSummary is one model's headline totals within a comparison.
type ModelSummary struct {
	Label                  string  `bson:"label" json:"label"`
	TotalDiveTime          float64 `bson:"total_dive_time" json:"total_dive_time"`
	TotalDecompressionTime float64 `bson:"total_decompression_time" json:"total_decompression_time"`
}

// ComparisonResult is the aggregated output of running several models
// against the same parameters.
type ComparisonResult struct {
	Models                 []ModelSummary `bson:"models" json:"models"`
	SignificantDifferences []string       `bson:"significant_differences" json:"significant_differences"`
}

// significanceFactor is the number of standard deviations a model's
// total decompression time must deviate from the group mean to be
// flagged as significantly different.
const significanceFactor = 1.0

// CompareModels runs p through each requested model (with priorDiveCount
// feeding RGBM's penalty) and reports per-model totals plus any model
// whose total decompression time deviates from the group mean by more
// than significanceFactor standard deviations.
func CompareModels(p schedule.DiveParameters, kinds []Kind, priorDiveCount int) (ComparisonResult, error) {
	var result ComparisonResult
	decoTimes := make([]float64, 0, len(kinds))

	for _, k := range kinds {
		profile, err := ComputeProfile(k, p, priorDiveCount)
		if err != nil {
			return ComparisonResult{}, err
		}
		result.Models = append(result.Models, ModelSummary{
			Label:                  profile.ModelLabel,
			TotalDiveTime:          profile.TotalDiveTime,
			TotalDecompressionTime: profile.TotalDecompressionTime,
		})
		decoTimes = append(decoTimes, profile.TotalDecompressionTime)
	}

	if len(decoTimes) < 2 {
		return result, nil
	}

	mean := stat.Mean(decoTimes, nil)
	stdDev := stat.StdDev(decoTimes, nil)
	spread := floats.Max(decoTimes) - floats.Min(decoTimes)

	if stdDev > 0 && spread > 0 {
		for i, summary := range result.Models {
			if absDiff(decoTimes[i], mean) > significanceFactor*stdDev {
				result.SignificantDifferences = append(result.SignificantDifferences,
					summary.Label+" deviates significantly from the group's mean decompression time")
			}
		}
	}

	return result, nil
}
