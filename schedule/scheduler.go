package schedule

import (
	"fmt"

	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/internal/dlog"
)

// ComputeProfile runs the single-level decompression scheduler (spec
// component C5): descent, bottom time, stop-finding ascent, and warning
// assembly. It returns a typed decoerr error if p fails validation before
// any tissue state is touched; once validation passes it always returns a
// DiveProfile, folding operational issues into Warnings instead of errors.
func ComputeProfile(p DiveParameters) (DiveProfile, error) {
	if err := p.validate(); err != nil {
		return DiveProfile{}, err
	}

	tissues := buhlmann.NewTissues()
	gf := buhlmann.GradientFactors{Low: p.GFLow, High: p.GFHigh}

	descentDuration := p.Depth / p.DescentRate
	tissues = buhlmann.ChangingDepthUpdate(tissues, coefficientSet,
		p.BottomGas.FN2, p.BottomGas.FHe, 0, p.Depth, descentDuration)
	runtime := descentDuration

	tissuesAfterDescent := tissues
	ndl := computeNDL(tissuesAfterDescent, p.BottomGas, p.Depth, p.GFHigh)

	tissues = buhlmann.ConstantDepthUpdate(tissues, coefficientSet,
		p.BottomGas.FN2, p.BottomGas.FHe, p.Depth, p.BottomTime)
	runtime += p.BottomTime

	dlog.Debugf("compute_profile: descent=%.1fmin bottom=%.1fmin depth=%.1fm runtime=%.1fmin ndl=%.1fmin",
		descentDuration, p.BottomTime, p.Depth, runtime, ndl)

	segments := []DiveSegment{
		{Depth: p.Depth, Duration: descentDuration, GasMix: p.BottomGas, Kind: Descent},
		{Depth: p.Depth, Duration: p.BottomTime, GasMix: p.BottomGas, Kind: Bottom},
	}

	result := runAscent(tissues, p.Depth, runtime, p.BottomGas, p.inventory(), gf, p.AscentRate, p.Depth)

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
		NoDecompressionLimit:   ndl,
		TissueCompartments:     result.tissues,
		MaxDepth:               p.Depth,
		AverageDepth:           averageDepth(segments),
	}

	profile.Warnings = assembleWarnings(p.BottomGas, result, profile, p.maxPPO2())
	if result.diverged {
		profile.Warnings = append(profile.Warnings, Warning{
			Level: Danger, Message: "calculation diverged",
			Details: "stop-finding loop exceeded its iteration cap; schedule is best-effort",
		})
	}

	return profile, nil
}

// averageDepth is the duration-weighted mean depth across segments.
func averageDepth(segments []DiveSegment) float64 {
	var weighted, total float64
	for _, s := range segments {
		weighted += s.Depth * s.Duration
		total += s.Duration
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// assembleWarnings implements spec step 9: ppO2/END/deco-time advisories.
// It only inspects the already-computed profile and ascent result; it
// never mutates tissue state.
func assembleWarnings(bottomGas gasmix.GasMix, result ascentResult, profile DiveProfile, maxPPO2 float64) []Warning {
	var warnings []Warning

	ppo2AtMax := bottomGas.PPO2(profile.MaxDepth)
	switch {
	case ppo2AtMax > 1.6:
		warnings = append(warnings, Warning{
			Level: Danger, Message: "ppO2 exceeds 1.6 bar at bottom depth",
			Details: fmt.Sprintf("ppO2=%.2f at %.1fm", ppo2AtMax, profile.MaxDepth),
		})
	case ppo2AtMax > maxPPO2:
		warnings = append(warnings, Warning{
			Level: WarningLevelWarning, Message: "ppO2 exceeds configured working limit at bottom depth",
			Details: fmt.Sprintf("ppO2=%.2f at %.1fm, limit=%.2f", ppo2AtMax, profile.MaxDepth, maxPPO2),
		})
	}

	if end := bottomGas.END(profile.MaxDepth); end > 30.0 {
		warnings = append(warnings, Warning{
			Level: WarningLevelWarning, Message: "END exceeds 30 m at bottom depth",
			Details: fmt.Sprintf("END=%.1fm at %.1fm", end, profile.MaxDepth),
		})
	}

	for _, sw := range result.switches {
		ppo2 := sw.ToGas.PPO2(sw.Depth)
		if ppo2 > 1.6 {
			warnings = append(warnings, Warning{
				Level: Danger, Message: "ppO2 exceeds 1.6 bar after gas switch",
				Details: fmt.Sprintf("ppO2=%.2f at %.1fm after switching to %s", ppo2, sw.Depth, sw.ToGas.Name),
			})
		}
	}

	if profile.TotalDiveTime > 0 && profile.TotalDecompressionTime > 0.5*profile.TotalDiveTime {
		warnings = append(warnings, Warning{
			Level: Info, Message: "decompression time exceeds half of total dive time",
			Details: fmt.Sprintf("deco=%.1fmin total=%.1fmin", profile.TotalDecompressionTime, profile.TotalDiveTime),
		})
	}

	return warnings
}
