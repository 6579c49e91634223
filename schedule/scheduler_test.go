package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurfacelabs/decoengine/gasmix"
)

func defaultParams(depth, bottomTime float64, gas gasmix.GasMix) DiveParameters {
	return DiveParameters{
		Depth:       depth,
		BottomTime:  bottomTime,
		BottomGas:   gas,
		DescentRate: 20.0,
		AscentRate:  9.0,
		GFLow:       30,
		GFHigh:      85,
	}
}

func TestComputeProfileNoDecoAir(t *testing.T) {
	air := gasmix.NewAir()
	profile, err := ComputeProfile(defaultParams(18.0, 40.0, air))
	require.NoError(t, err)

	assert.Empty(t, nonSafetyStops(profile.DecompressionStops))
	assert.GreaterOrEqual(t, profile.NoDecompressionLimit, 40.0)

	require.Len(t, profile.DecompressionStops, 1)
	assert.InDelta(t, 5.0, profile.DecompressionStops[0].Depth, 1e-9)
	assert.InDelta(t, 3.0, profile.DecompressionStops[0].Duration, 1e-9)

	for _, w := range profile.Warnings {
		assert.NotEqual(t, Danger, w.Level)
	}
}

func TestComputeProfileDecoAir(t *testing.T) {
	air := gasmix.NewAir()
	profile, err := ComputeProfile(defaultParams(30.0, 30.0, air))
	require.NoError(t, err)

	require.NotEmpty(t, nonSafetyStops(profile.DecompressionStops))
	firstStopDepth := nonSafetyStops(profile.DecompressionStops)[0].Depth
	assert.Contains(t, []float64{12.0, 9.0, 6.0}, firstStopDepth)
	assert.GreaterOrEqual(t, profile.TotalDecompressionTime, 5.0)
	assert.LessOrEqual(t, profile.TotalDecompressionTime, 30.0)
}

func TestComputeProfileNitroxBenefit(t *testing.T) {
	air := gasmix.NewAir()
	ean32, err := gasmix.NewNitrox(0.32)
	require.NoError(t, err)

	airProfile, err := ComputeProfile(defaultParams(25.0, 45.0, air))
	require.NoError(t, err)
	nitroxProfile, err := ComputeProfile(defaultParams(25.0, 45.0, ean32))
	require.NoError(t, err)

	assert.LessOrEqual(t, nitroxProfile.TotalDecompressionTime, airProfile.TotalDecompressionTime)
	assert.Greater(t, nitroxProfile.NoDecompressionLimit, airProfile.NoDecompressionLimit)
}

func TestComputeProfileMultiGasSwitch(t *testing.T) {
	air := gasmix.NewAir()
	ean50, err := gasmix.NewNitrox(0.50)
	require.NoError(t, err)
	o2, err := gasmix.NewNitrox(1.0)
	require.NoError(t, err)

	params := defaultParams(40.0, 25.0, air)
	params.DecoGases = []gasmix.GasMix{ean50, o2}

	profile, err := ComputeProfile(params)
	require.NoError(t, err)

	require.NotEmpty(t, profile.GasSwitches)

	var sawEAN50, sawO2 bool
	for _, sw := range profile.GasSwitches {
		if sw.ToGas.FO2 == ean50.FO2 && sw.Depth >= 18.0 && sw.Depth <= 24.0 {
			sawEAN50 = true
		}
		if sw.ToGas.FO2 == o2.FO2 && sw.Depth <= 6.0 {
			sawO2 = true
		}
	}
	assert.True(t, sawEAN50, "expected an EAN50 switch between 18m and 24m")
	assert.True(t, sawO2, "expected an O2 switch at or shallower than 6m")
}

func TestComputeProfileInvalidInputs(t *testing.T) {
	air := gasmix.NewAir()

	_, err := ComputeProfile(defaultParams(-5.0, 20.0, air))
	assert.Error(t, err)

	bad := defaultParams(18.0, 20.0, air)
	bad.DescentRate = 0
	_, err = ComputeProfile(bad)
	assert.Error(t, err)

	bad = defaultParams(18.0, 20.0, air)
	bad.GFLow, bad.GFHigh = 90, 50
	_, err = ComputeProfile(bad)
	assert.Error(t, err)
}

func TestComputeProfileInvariants(t *testing.T) {
	air := gasmix.NewAir()
	profile, err := ComputeProfile(defaultParams(30.0, 30.0, air))
	require.NoError(t, err)

	sum := 0.0
	prevRuntime := -1.0
	for _, s := range profile.DecompressionStops {
		sum += s.Duration
		assert.GreaterOrEqual(t, s.Runtime, prevRuntime)
		prevRuntime = s.Runtime

		mod := int(s.Depth) % 3
		if s.Depth != 5.0 {
			assert.Equal(t, 0, mod, "stop depth %v must be on the 3m grid", s.Depth)
		}
	}
	assert.InDelta(t, profile.TotalDecompressionTime, sum, 1e-9)
}

func TestComputeProfileIdempotentAtIdentity(t *testing.T) {
	air := gasmix.NewAir()
	params := defaultParams(0.001, 0.0, air)
	profile, err := ComputeProfile(params)
	require.NoError(t, err)

	assert.Empty(t, profile.DecompressionStops)
	assert.Equal(t, 0.0, profile.TotalDecompressionTime)
}

func TestComputeProfileMonotoneInGradientFactors(t *testing.T) {
	air := gasmix.NewAir()

	conservative := defaultParams(30.0, 30.0, air)
	conservative.GFLow, conservative.GFHigh = 20, 70

	liberal := defaultParams(30.0, 30.0, air)
	liberal.GFLow, liberal.GFHigh = 50, 95

	pc, err := ComputeProfile(conservative)
	require.NoError(t, err)
	pl, err := ComputeProfile(liberal)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pc.TotalDecompressionTime, pl.TotalDecompressionTime)
}

func TestComputeProfileMonotoneInBottomTime(t *testing.T) {
	air := gasmix.NewAir()

	short, err := ComputeProfile(defaultParams(30.0, 20.0, air))
	require.NoError(t, err)
	long, err := ComputeProfile(defaultParams(30.0, 40.0, air))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, long.TotalDecompressionTime, short.TotalDecompressionTime)
}

func TestComputeProfileMonotoneInDepth(t *testing.T) {
	air := gasmix.NewAir()

	shallow, err := ComputeProfile(defaultParams(25.0, 30.0, air))
	require.NoError(t, err)
	deep, err := ComputeProfile(defaultParams(35.0, 30.0, air))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, deep.TotalDecompressionTime, shallow.TotalDecompressionTime)
}

func TestComputeProfileNDLZeroWhenDecoRequired(t *testing.T) {
	air := gasmix.NewAir()
	profile, err := ComputeProfile(defaultParams(40.0, 30.0, air))
	require.NoError(t, err)

	if len(nonSafetyStops(profile.DecompressionStops)) > 0 {
		assert.Equal(t, 0.0, profile.NoDecompressionLimit)
	}
}

// nonSafetyStops filters out the 5 m safety stop, useful for asserting on
// mandatory decompression obligations specifically.
func nonSafetyStops(stops []DecompressionStop) []DecompressionStop {
	var out []DecompressionStop
	for _, s := range stops {
		if s.Depth != 5.0 {
			out = append(out, s)
		}
	}
	return out
}
