package schedule

import (
	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/helpers"
	"github.com/subsurfacelabs/decoengine/internal/dlog"
)

// ComputeMultilevelProfile runs the multi-level decompression scheduler
// (spec component C6): each segment is processed in turn with a
// changing-depth transition at the descent or ascent rate between
// segments, then a constant-depth hold for the segment's own duration;
// the final segment hands off into the same stop-finding ascent used by
// ComputeProfile.
func ComputeMultilevelProfile(p MultiLevelDiveParameters) (DiveProfile, error) {
	if err := p.validate(); err != nil {
		return DiveProfile{}, err
	}

	tissues := buhlmann.NewTissues()
	gf := buhlmann.GradientFactors{Low: p.GFLow, High: p.GFHigh}

	var segments []DiveSegment
	var warnings []Warning

	currentDepth := 0.0
	runtime := 0.0
	maxDepth := 0.0
	currentGas := p.Inventory.BottomGas

	for i, seg := range p.Segments {
		switch helpers.DescOrAsc(currentDepth, seg.Depth) {
		case 1.0:
			rate := p.DescentRate
			transitionTime := (seg.Depth - currentDepth) / rate
			tissues = buhlmann.ChangingDepthUpdate(tissues, coefficientSet,
				seg.GasMix.FN2, seg.GasMix.FHe, currentDepth, seg.Depth, transitionTime)
			runtime += transitionTime
			segments = append(segments, DiveSegment{Depth: seg.Depth, Duration: transitionTime, GasMix: seg.GasMix, Kind: Descent})

			if i > 0 {
				warnings = append(warnings, Warning{
					Level: Info, Message: "reverse profile",
					Details: "a later segment is deeper than the one preceding it",
				})
			}
		case -1.0:
			rate := p.AscentRate
			transitionTime := (currentDepth - seg.Depth) / rate
			tissues = buhlmann.ChangingDepthUpdate(tissues, coefficientSet,
				seg.GasMix.FN2, seg.GasMix.FHe, currentDepth, seg.Depth, transitionTime)
			runtime += transitionTime
			segments = append(segments, DiveSegment{Depth: seg.Depth, Duration: transitionTime, GasMix: seg.GasMix, Kind: Ascent})
		}

		tissues = buhlmann.ConstantDepthUpdate(tissues, coefficientSet,
			seg.GasMix.FN2, seg.GasMix.FHe, seg.Depth, seg.Duration)
		runtime += seg.Duration
		segments = append(segments, DiveSegment{Depth: seg.Depth, Duration: seg.Duration, GasMix: seg.GasMix, Kind: Bottom})

		currentDepth = seg.Depth
		currentGas = seg.GasMix
		if seg.Depth > maxDepth {
			maxDepth = seg.Depth
		}
	}

	dlog.Debugf("compute_multilevel_profile: segments=%d maxDepth=%.1fm runtime=%.1fmin",
		len(p.Segments), maxDepth, runtime)

	result := runAscent(tissues, currentDepth, runtime, currentGas, p.Inventory, gf, p.AscentRate, maxDepth)

	totalDecompressionTime := 0.0
	for _, s := range result.stops {
		totalDecompressionTime += s.Duration
		segments = append(segments, DiveSegment{Depth: s.Depth, Duration: s.Duration, GasMix: s.GasMix, Kind: Deco})
	}

	profile := DiveProfile{
		ID:                     newProfileID(),
		ModelLabel:             "ZHL-16C",
		Segments:               segments,
		DecompressionStops:     result.stops,
		GasSwitches:            result.switches,
		TotalDiveTime:          result.runtime,
		TotalDecompressionTime: totalDecompressionTime,
		NoDecompressionLimit:   0,
		TissueCompartments:     result.tissues,
		MaxDepth:               maxDepth,
		AverageDepth:           averageDepth(segments),
		Warnings:               warnings,
	}

	profile.Warnings = append(profile.Warnings, assembleWarnings(p.Inventory.BottomGas, result, profile, p.maxPPO2())...)
	if result.diverged {
		profile.Warnings = append(profile.Warnings, Warning{
			Level: Danger, Message: "calculation diverged",
			Details: "stop-finding loop exceeded its iteration cap; schedule is best-effort",
		})
	}

	return profile, nil
}
