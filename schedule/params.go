package schedule

import (
	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/internal/units"
)

// DiveParameters describes a single-level, single-depth dive to
// ComputeProfile.
type DiveParameters struct {
	Depth      float64
	BottomTime float64
	BottomGas  gasmix.GasMix
	DecoGases  []gasmix.GasMix

	DescentRate float64
	AscentRate  float64

	GFLow  int
	GFHigh int

	// MaxPPO2 bounds the working ppO2 used for deco-gas eligibility
	// (1.6 at deco depths is hard-coded per spec; MaxPPO2 governs the
	// bottom-gas working limit used in warnings). Defaults to 1.4 when
	// zero.
	MaxPPO2 float64

	// MaxDepthLimit overrides the default input-validation ceiling
	// (units.MaxDepth) when non-zero, for callers who need a stricter
	// or looser bound than the default.
	MaxDepthLimit float64
}

func (p DiveParameters) maxPPO2() float64 {
	if p.MaxPPO2 <= 0 {
		return 1.4
	}
	return p.MaxPPO2
}

func (p DiveParameters) maxDepthLimit() float64 {
	if p.MaxDepthLimit <= 0 {
		return units.MaxDepth
	}
	return p.MaxDepthLimit
}

func (p DiveParameters) validate() error {
	if p.Depth < 0 || p.Depth > p.maxDepthLimit() {
		return decoerr.Wrapf(decoerr.ErrInvalidDepth,
			"depth must be in [0, %g], got %f", p.maxDepthLimit(), p.Depth)
	}
	if p.BottomTime < 0 {
		return decoerr.Wrapf(decoerr.ErrInvalidSegments,
			"bottom time must be non-negative, got %f", p.BottomTime)
	}
	if p.DescentRate <= 0 || p.AscentRate <= 0 {
		return decoerr.Wrapf(decoerr.ErrInvalidRates,
			"descent/ascent rates must be positive, got descent=%f ascent=%f", p.DescentRate, p.AscentRate)
	}
	if err := p.BottomGas.Validate(); err != nil {
		return err
	}
	for i, g := range p.DecoGases {
		if err := g.Validate(); err != nil {
			return decoerr.Wrapf(decoerr.ErrInvalidGasMix, "deco gas %d: %s", i, err)
		}
	}
	gf := buhlmann.GradientFactors{Low: p.GFLow, High: p.GFHigh}
	if err := gf.Validate(); err != nil {
		return err
	}
	return nil
}

func (p DiveParameters) inventory() gasmix.GasInventory {
	return gasmix.GasInventory{BottomGas: p.BottomGas, DecoGases: p.DecoGases}
}

// MultiLevelDiveParameters describes an ordered sequence of depth/duration
// segments to ComputeMultilevelProfile.
type MultiLevelDiveParameters struct {
	Segments []DiveSegment

	DescentRate float64
	AscentRate  float64

	GFLow  int
	GFHigh int

	Inventory gasmix.GasInventory
	MaxPPO2   float64

	MaxDepthLimit float64
}

func (p MultiLevelDiveParameters) maxPPO2() float64 {
	if p.MaxPPO2 <= 0 {
		return 1.4
	}
	return p.MaxPPO2
}

func (p MultiLevelDiveParameters) maxDepthLimit() float64 {
	if p.MaxDepthLimit <= 0 {
		return units.MaxDepth
	}
	return p.MaxDepthLimit
}

func (p MultiLevelDiveParameters) validate() error {
	if len(p.Segments) == 0 {
		return decoerr.Wrap(decoerr.ErrInvalidSegments, "at least one segment is required")
	}
	if len(p.Segments) > units.MaxSegments {
		return decoerr.Wrapf(decoerr.ErrInvalidSegments,
			"segment count must not exceed %d, got %d", units.MaxSegments, len(p.Segments))
	}
	for i, s := range p.Segments {
		if s.Depth <= 0 || s.Depth > p.maxDepthLimit() {
			return decoerr.Wrapf(decoerr.ErrInvalidDepth,
				"segment %d depth must be in (0, %g], got %f", i, p.maxDepthLimit(), s.Depth)
		}
		if s.Duration <= 0 {
			return decoerr.Wrapf(decoerr.ErrInvalidSegments,
				"segment %d duration must be positive, got %f", i, s.Duration)
		}
		if err := s.GasMix.Validate(); err != nil {
			return decoerr.Wrapf(decoerr.ErrInvalidGasMix, "segment %d: %s", i, err)
		}
	}
	if p.DescentRate <= 0 || p.AscentRate <= 0 {
		return decoerr.Wrapf(decoerr.ErrInvalidRates,
			"descent/ascent rates must be positive, got descent=%f ascent=%f", p.DescentRate, p.AscentRate)
	}
	if err := p.Inventory.Validate(); err != nil {
		return err
	}
	gf := buhlmann.GradientFactors{Low: p.GFLow, High: p.GFHigh}
	if err := gf.Validate(); err != nil {
		return err
	}
	return nil
}
