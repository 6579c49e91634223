// Package gasmix implements pressure-and-gas-physics utilities (spec
// component C2): depth/pressure conversions live in internal/units, this
// package covers gas-mix representation, MOD/END/PPO2, and gas-selection
// policy. Grounded on the teacher dive-planner's gasmix package, extended
// with the helium-aware selection/switch policy the spec's gas-inventory
// model requires.
package gasmix

import (
	"fmt"
	"math"

	"github.com/subsurfacelabs/decoengine/decoerr"
	"github.com/subsurfacelabs/decoengine/internal/units"
)

const fractionTolerance = 1e-6

// GasMix represents a breathing gas mixture with fractions of Oxygen,
// Nitrogen, and Helium that must sum to 1 within fractionTolerance. Name is
// an optional display label (e.g. "EAN32", "Trimix 21/35").
type GasMix struct {
	FO2  float64
	FN2  float64
	FHe  float64
	Name string
}

// MixType classifies a GasMix by its composition.
type MixType int

const (
	Unknown MixType = iota
	Air
	Nitrox
	Heliox
	Trimix
)

func (mt MixType) String() string {
	switch mt {
	case Air:
		return "Air"
	case Nitrox:
		return "Nitrox"
	case Heliox:
		return "Heliox"
	case Trimix:
		return "Trimix"
	}
	return "Unknown"
}

// New constructs and validates a GasMix directly from fractions. Most
// callers prefer the NewAir/NewNitrox/NewTrimix/NewHeliox convenience
// constructors below, but New is useful when fractions are already known
// (e.g. deserializing a DiveProfile).
func New(fo2, fn2, fhe float64, name string) (GasMix, error) {
	gm := GasMix{FO2: fo2, FN2: fn2, FHe: fhe, Name: name}
	if err := gm.validate(); err != nil {
		return GasMix{}, err
	}
	return gm, nil
}

// Validate re-checks a GasMix's fraction invariants, useful for values that
// arrive from a caller (deserialized, or built via the struct literal)
// rather than through one of the package's constructors.
func (gm GasMix) Validate() error {
	return gm.validate()
}

func (gm GasMix) validate() error {
	if gm.FO2 < 0 || gm.FN2 < 0 || gm.FHe < 0 {
		return decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"fractions must be non-negative: fO2=%f fN2=%f fHe=%f", gm.FO2, gm.FN2, gm.FHe)
	}
	sum := gm.FO2 + gm.FN2 + gm.FHe
	if math.Abs(sum-1.0) > fractionTolerance {
		return decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"fractions must sum to 1 (+/- %g), got %f", fractionTolerance, sum)
	}
	return nil
}

// NewAir is a convenience constructor for a mix of pure air.
func NewAir() GasMix {
	return GasMix{FO2: 0.21, FN2: 0.79, Name: "Air"}
}

// NewNitrox constructs a Nitrox mix with a given oxygen fraction; the
// nitrogen fraction is derived.
func NewNitrox(fo2 float64) (GasMix, error) {
	if fo2 < 0.21 || fo2 > 1.0 {
		return GasMix{}, decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"nitrox fO2 must be between 0.21 and 1.0, got %f", fo2)
	}
	return New(fo2, 1.0-fo2, 0.0, fmt.Sprintf("EAN%d", int(math.Round(fo2*100))))
}

// NewTrimix constructs a Trimix mix with given oxygen and helium
// fractions; the nitrogen fraction is derived.
func NewTrimix(fo2, fhe float64) (GasMix, error) {
	if fo2 < 0.10 || fo2 > 0.98 {
		return GasMix{}, decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"trimix fO2 must be between 0.10 and 0.98, got %f", fo2)
	}
	if fhe < 0 || fhe > 0.90 {
		return GasMix{}, decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"trimix fHe must be between 0 and 0.90, got %f", fhe)
	}
	if fo2+fhe > 1.0 {
		return GasMix{}, decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"fO2 (%f) + fHe (%f) must not exceed 1.0", fo2, fhe)
	}
	return New(fo2, 1.0-(fo2+fhe), fhe, fmt.Sprintf("Trimix %d/%d", int(fo2*100), int(fhe*100)))
}

// NewHeliox constructs a Heliox (no nitrogen) mix with a given oxygen
// fraction; the helium fraction is derived.
func NewHeliox(fo2 float64) (GasMix, error) {
	if fo2 < 0.10 || fo2 >= 0.99 {
		return GasMix{}, decoerr.Wrapf(decoerr.ErrInvalidGasMix,
			"heliox fO2 must be between 0.10 and 0.99, got %f", fo2)
	}
	return New(fo2, 0.0, 1.0-fo2, fmt.Sprintf("Heliox %d", int(fo2*100)))
}

// BestNitroxForDepth returns the richest Nitrox mix whose MOD at maxPPO2
// is at least depth, its fO2 floored to a whole percentage point.
func BestNitroxForDepth(depth, maxPPO2 float64) (GasMix, error) {
	bestFO2 := maxPPO2 / units.DepthToPressure(depth)
	bestFO2 = math.Floor(bestFO2*100.0) / 100.0
	return NewNitrox(bestFO2)
}

// MixType reports the gas-mix family, air/nitrox/heliox/trimix.
func (gm GasMix) MixType() MixType {
	switch {
	case gm.FHe > 0 && gm.FN2 > 0:
		return Trimix
	case gm.FHe > 0 && gm.FN2 == 0:
		return Heliox
	case gm.FHe == 0 && gm.FO2 > 0.21+fractionTolerance:
		return Nitrox
	case gm.FHe == 0:
		return Air
	}
	return Unknown
}

// PPO2 returns the partial pressure of oxygen for the mix at depth.
func (gm GasMix) PPO2(depth float64) float64 {
	return gm.FO2 * units.DepthToPressure(depth)
}

// PPN2 returns the partial pressure of nitrogen for the mix at depth.
func (gm GasMix) PPN2(depth float64) float64 {
	return gm.FN2 * units.DepthToPressure(depth)
}

// PPHe returns the partial pressure of helium for the mix at depth.
func (gm GasMix) PPHe(depth float64) float64 {
	return gm.FHe * units.DepthToPressure(depth)
}

// InspiredO2 returns the alveolar partial pressure of oxygen at ambient
// pressure pAmb, after subtracting water-vapour pressure once (not per
// gas), per the spec's global water-vapour convention.
func (gm GasMix) InspiredO2(pAmb float64) float64 {
	return units.InspiredPressure(pAmb, gm.FO2)
}

const infiniteMOD = 1000.0

// MOD returns the mix's maximum operating depth for a given ceiling on
// PPO2. A mix with no oxygen at all (fO2 <= 0) has no MOD by this
// formula (division by zero); a large, documented sentinel depth is
// returned instead of an unbounded value. Every other mix, including
// air, has a genuine finite MOD.
func (gm GasMix) MOD(maxPPO2 float64) float64 {
	if gm.FO2 <= 0 {
		return infiniteMOD
	}
	return (maxPPO2/gm.FO2 - units.SurfacePressure) / units.BarPerMeterSalt
}

// MinSafeDepth returns the shallowest depth at which this mix delivers at
// least 0.16 bar of PPO2, guarding against hypoxia in very lean/helium-
// heavy mixes.
func (gm GasMix) MinSafeDepth() float64 {
	const hypoxicFloor = 0.16
	if gm.FO2 <= 0 {
		return infiniteMOD
	}
	d := (hypoxicFloor/gm.FO2 - units.SurfacePressure) / units.BarPerMeterSalt
	return math.Max(d, 0.0)
}

// END returns the equivalent narcotic depth of the mix at depth,
// referenced to air; helium is treated as non-narcotic, oxygen is
// treated as equally narcotic to nitrogen (the conventional diver-table
// approach), so air and nitrox mixes are self-referencing: END(depth)
// == depth.
func (gm GasMix) END(depth float64) float64 {
	narcoticFraction := gm.FO2 + gm.FN2
	pAmb := units.DepthToPressure(depth)
	airEquivalentPressure := narcoticFraction * pAmb
	return units.PressureToDepth(airEquivalentPressure)
}

// Role classifies a gas's function within a GasInventory.
type Role int

const (
	RoleBottom Role = iota
	RoleDeco
	RoleBailout
)

func (r Role) String() string {
	switch r {
	case RoleBottom:
		return "bottom"
	case RoleDeco:
		return "deco"
	case RoleBailout:
		return "bailout"
	}
	return "unknown"
}

// GasInventory is the set of gases available for a dive: one bottom gas
// plus an ordered set of deco gases.
type GasInventory struct {
	BottomGas GasMix
	DecoGases []GasMix
}

// Validate checks the no-duplicate and fO2-ordering invariants from the
// spec's GasInventory data model: deco gases must not duplicate each
// other's O2 fraction within 1%, and each must be richer in O2 than the
// bottom gas.
func (inv GasInventory) Validate() error {
	for i, g := range inv.DecoGases {
		if g.FO2 <= inv.BottomGas.FO2 {
			return decoerr.Wrapf(decoerr.ErrInvalidGasMix,
				"deco gas %d (fO2=%f) must exceed bottom gas fO2 (%f)", i, g.FO2, inv.BottomGas.FO2)
		}
		for j, other := range inv.DecoGases {
			if i == j {
				continue
			}
			if math.Abs(g.FO2-other.FO2) < 0.01 {
				return decoerr.Wrapf(decoerr.ErrInvalidGasMix,
					"deco gases %d and %d have duplicate fO2 within 1%%", i, j)
			}
		}
	}
	return nil
}

// AllGases returns the bottom gas followed by every deco gas.
func (inv GasInventory) AllGases() []GasMix {
	out := make([]GasMix, 0, 1+len(inv.DecoGases))
	out = append(out, inv.BottomGas)
	out = append(out, inv.DecoGases...)
	return out
}

// BestGasForDepth selects, from the candidates eligible at depth (MOD at
// maxPPO2 >= depth and MinSafeDepth <= depth), the one with the highest
// fO2, tie-broken by lowest fHe, tie-broken again by MOD closest to depth
// (safer in case of a slight overshoot).
func BestGasForDepth(depth float64, candidates []GasMix, maxPPO2 float64) (GasMix, bool) {
	var best GasMix
	found := false

	for _, g := range candidates {
		if g.MOD(maxPPO2) < depth {
			continue
		}
		if g.MinSafeDepth() > depth {
			continue
		}
		if !found {
			best, found = g, true
			continue
		}
		switch {
		case g.FO2 > best.FO2:
			best = g
		case g.FO2 == best.FO2 && g.FHe < best.FHe:
			best = g
		case g.FO2 == best.FO2 && g.FHe == best.FHe:
			if math.Abs(g.MOD(maxPPO2)-depth) < math.Abs(best.MOD(maxPPO2)-depth) {
				best = g
			}
		}
	}

	return best, found
}

// SwitchWorthwhile reports whether switching from one gas to another at a
// stop meaningfully improves decompression efficiency: the candidate must
// deliver materially more oxygen (>1% absolute) than the current gas.
func SwitchWorthwhile(from, to GasMix) bool {
	return to.FO2 > from.FO2+0.01
}

// GasSwitchDepth returns the MOD of gas at the deco PPO2 ceiling (1.6),
// i.e. the deepest depth at which it is legal to breathe it during
// decompression.
func GasSwitchDepth(gas GasMix) float64 {
	return gas.MOD(1.6)
}
