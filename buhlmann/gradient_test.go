package buhlmann

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientFactorsValidate(t *testing.T) {
	tests := []struct {
		name    string
		gf      GradientFactors
		wantErr bool
	}{
		{name: "Typical 30/85", gf: GradientFactors{Low: 30, High: 85}, wantErr: false},
		{name: "Flat 100/100", gf: GradientFactors{Low: 100, High: 100}, wantErr: false},
		{name: "Low above high", gf: GradientFactors{Low: 90, High: 50}, wantErr: true},
		{name: "Zero low", gf: GradientFactors{Low: 0, High: 80}, wantErr: true},
		{name: "Over 100", gf: GradientFactors{Low: 30, High: 120}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.gf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGradientFactorsAt(t *testing.T) {
	gf := GradientFactors{Low: 30, High: 85}

	assert.InDelta(t, 0.85, gf.At(0.0, 21.0), 1e-9)
	assert.InDelta(t, 0.30, gf.At(21.0, 21.0), 1e-9)

	mid := gf.At(10.5, 21.0)
	assert.Greater(t, mid, 0.30)
	assert.Less(t, mid, 0.85)

	// No decompression obligation: GF High applies everywhere.
	assert.InDelta(t, 0.85, gf.At(15.0, 0.0), 1e-9)
}

func TestMValueIncreasesWithHalfTime(t *testing.T) {
	tc := TissueCompartment{PN2: 3.0, PHe: 0.0}
	mShallowCompartment := MValue(tc, ZHL16C, 0)
	mDeepCompartment := MValue(tc, ZHL16C, 15)

	// Slow compartments tolerate a higher ambient pressure for the same
	// loading than fast ones, reflecting their lower "a" and higher "b".
	assert.Greater(t, mDeepCompartment, mShallowCompartment)
}

func TestToleratedAmbientPressureGF100MatchesMValue(t *testing.T) {
	tc := TissueCompartment{PN2: 3.2, PHe: 0.1}
	for compartment := 0; compartment < CompartmentCount; compartment++ {
		mv := MValue(tc, ZHL16C, compartment)
		tol := ToleratedAmbientPressure(tc, ZHL16C, compartment, 1.0)
		assert.InDelta(t, mv, tol, 1e-9, "compartment %d", compartment)
	}
}

func TestToleratedAmbientPressureLowerGFIsMoreConservative(t *testing.T) {
	tc := TissueCompartment{PN2: 3.2, PHe: 0.1}
	conservative := ToleratedAmbientPressure(tc, ZHL16C, 5, 0.3)
	liberal := ToleratedAmbientPressure(tc, ZHL16C, 5, 0.9)

	// A higher tolerated ambient pressure means a deeper ceiling.
	assert.Greater(t, conservative, liberal)
}

func TestCeilingZeroWhenUnsaturated(t *testing.T) {
	tissues := NewTissues()
	ceiling, _ := ControllingCeiling(tissues, ZHL16C, 0.85)
	assert.Equal(t, 0.0, ceiling)
}

func TestControllingCeilingAfterLoading(t *testing.T) {
	tissues := ConstantDepthUpdate(NewTissues(), ZHL16C, 0.79, 0.0, 40.0, 25.0)
	ceiling, compartment := ControllingCeiling(tissues, ZHL16C, 0.85)

	require.GreaterOrEqual(t, ceiling, 0.0)
	require.GreaterOrEqual(t, compartment, 0)
	require.Less(t, compartment, CompartmentCount)

	tighter, _ := ControllingCeiling(tissues, ZHL16C, 0.30)
	assert.GreaterOrEqual(t, tighter, ceiling)
}
