// Package schedule implements the decompression scheduler (spec
// components C5 and C6): full single-level and multi-level profile
// orchestration on top of package buhlmann's tissue model and package
// gasmix's gas-selection policy. Grounded on the teacher dive-planner's
// DivePlan/DSRTable/ChartProfile machinery, replacing its linear stops
// walk with a gradient-factor-driven stop-finding control loop.
package schedule

import (
	"github.com/google/uuid"

	"github.com/subsurfacelabs/decoengine/buhlmann"
	"github.com/subsurfacelabs/decoengine/gasmix"
)

// SegmentKind classifies a leg of a dive profile.
type SegmentKind int

const (
	Descent SegmentKind = iota
	Bottom
	Ascent
	Deco
)

func (k SegmentKind) String() string {
	switch k {
	case Descent:
		return "descent"
	case Bottom:
		return "bottom"
	case Ascent:
		return "ascent"
	case Deco:
		return "deco"
	}
	return "unknown"
}

// DiveSegment is one leg of a dive: a depth held or transitioned to, for a
// duration, on a given gas.
type DiveSegment struct {
	Depth    float64      `bson:"depth" json:"depth"`
	Duration float64      `bson:"duration" json:"duration"`
	GasMix   gasmix.GasMix `bson:"gas_mix" json:"gas_mix"`
	Kind     SegmentKind  `bson:"kind" json:"kind"`
}

// SwitchReason records why a GasSwitch happened.
type SwitchReason int

const (
	SwitchOptimal SwitchReason = iota
	SwitchModLimit
	SwitchDeco
)

func (r SwitchReason) String() string {
	switch r {
	case SwitchOptimal:
		return "optimal"
	case SwitchModLimit:
		return "mod_limit"
	case SwitchDeco:
		return "deco"
	}
	return "unknown"
}

// GasSwitch records a change of breathing gas during the ascent.
type GasSwitch struct {
	Depth    float64       `bson:"depth" json:"depth"`
	FromGas  gasmix.GasMix `bson:"from_gas" json:"from_gas"`
	ToGas    gasmix.GasMix `bson:"to_gas" json:"to_gas"`
	Reason   SwitchReason  `bson:"reason" json:"reason"`
}

// DecompressionStop is a single mandatory or safety stop in the ascent.
type DecompressionStop struct {
	Depth     float64    `bson:"depth" json:"depth"`
	Duration  float64    `bson:"duration" json:"duration"`
	Runtime   float64    `bson:"runtime" json:"runtime"`
	GasMix    gasmix.GasMix `bson:"gas_mix" json:"gas_mix"`
	GasSwitch *GasSwitch `bson:"gas_switch,omitempty" json:"gas_switch,omitempty"`
}

// WarningLevel classifies a Warning's severity.
type WarningLevel int

const (
	Info WarningLevel = iota
	WarningLevelWarning
	Danger
)

func (l WarningLevel) String() string {
	switch l {
	case Info:
		return "info"
	case WarningLevelWarning:
		return "warning"
	case Danger:
		return "danger"
	}
	return "unknown"
}

// Warning is a non-fatal, caller-renderable note attached to a DiveProfile.
type Warning struct {
	Level   WarningLevel `bson:"level" json:"level"`
	Message string       `bson:"message" json:"message"`
	Details string       `bson:"details" json:"details"`
}

// DiveProfile is the complete result of a profile computation: the
// ordered segments and decompression stops, totals, final tissue state,
// and any warnings raised along the way. It is a pure value; nothing in
// this package mutates a DiveProfile after it is returned.
type DiveProfile struct {
	ID         uuid.UUID `bson:"id" json:"id"`
	ModelLabel string    `bson:"model_label" json:"model_label"`

	Segments           []DiveSegment       `bson:"segments" json:"segments"`
	DecompressionStops []DecompressionStop `bson:"decompression_stops" json:"decompression_stops"`
	GasSwitches        []GasSwitch         `bson:"gas_switches" json:"gas_switches"`

	TotalDiveTime          float64 `bson:"total_dive_time" json:"total_dive_time"`
	TotalDecompressionTime float64 `bson:"total_decompression_time" json:"total_decompression_time"`
	NoDecompressionLimit   float64 `bson:"no_decompression_limit" json:"no_decompression_limit"`

	TissueCompartments buhlmann.Tissues `bson:"tissue_compartments" json:"tissue_compartments"`

	MaxDepth     float64 `bson:"max_depth" json:"max_depth"`
	AverageDepth float64 `bson:"average_depth" json:"average_depth"`

	Warnings []Warning `bson:"warnings" json:"warnings"`
}

// newProfileID stamps a fresh identifier for a computed profile. Split
// out so tests can observe that every successful call gets a distinct,
// non-zero ID without asserting on uuid internals.
func newProfileID() uuid.UUID {
	return uuid.New()
}
