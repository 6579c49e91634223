package gasplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/schedule"
)

func segments(air gasmix.GasMix) []schedule.DiveSegment {
	return []schedule.DiveSegment{
		{Depth: 30.0, Duration: 2.0, GasMix: air, Kind: schedule.Descent},
		{Depth: 30.0, Duration: 20.0, GasMix: air, Kind: schedule.Bottom},
		{Depth: 30.0, Duration: 3.0, GasMix: air, Kind: schedule.Ascent},
		{Depth: 6.0, Duration: 5.0, GasMix: air, Kind: schedule.Deco},
	}
}

func TestComputeAirConsumptionSufficientGas(t *testing.T) {
	air := gasmix.NewAir()
	cylinders := []Cylinder{
		{Name: "back-gas", Volume: 24.0, StartPressure: 200.0, Role: gasmix.RoleBottom},
	}

	result, err := ComputeAirConsumption(segments(air), 20.0, 50.0, cylinders)
	require.NoError(t, err)

	assert.True(t, result.Sufficient)
	require.Len(t, result.Cylinders, 1)
	assert.Less(t, result.Cylinders[0].FinalPressure, cylinders[0].StartPressure)
	assert.Greater(t, result.Cylinders[0].PercentUsed, 0.0)
}

func TestComputeAirConsumptionDecoGasSeparateCylinder(t *testing.T) {
	air := gasmix.NewAir()
	ean50, err := gasmix.NewNitrox(0.50)
	require.NoError(t, err)

	segs := []schedule.DiveSegment{
		{Depth: 30.0, Duration: 20.0, GasMix: air, Kind: schedule.Bottom},
		{Depth: 6.0, Duration: 5.0, GasMix: ean50, Kind: schedule.Deco},
	}
	cylinders := []Cylinder{
		{Name: "back-gas", Volume: 24.0, StartPressure: 200.0, Role: gasmix.RoleBottom},
		{Name: "deco-bottle", Volume: 7.0, StartPressure: 200.0, Role: gasmix.RoleDeco},
	}

	result, err := ComputeAirConsumption(segs, 20.0, 50.0, cylinders)
	require.NoError(t, err)
	require.Len(t, result.Cylinders, 2)

	assert.Greater(t, result.Cylinders[0].FinalPressure, 50.0, "bottom cylinder stays above reserve on the bottom segment alone")
	assert.Less(t, result.Cylinders[0].FinalPressure, cylinders[0].StartPressure)
	assert.Less(t, result.Cylinders[1].FinalPressure, cylinders[1].StartPressure, "the deco cylinder, not the bottom one, absorbs the deco segment's demand")
}

func TestComputeAirConsumptionInsufficientGasFlagsReserve(t *testing.T) {
	air := gasmix.NewAir()
	cylinders := []Cylinder{
		{Name: "pony", Volume: 3.0, StartPressure: 50.0, Role: gasmix.RoleBottom},
	}

	result, err := ComputeAirConsumption(segments(air), 20.0, 50.0, cylinders)
	require.NoError(t, err)

	assert.False(t, result.Sufficient)
	assert.NotEmpty(t, result.Warnings)
	assert.True(t, result.Cylinders[0].BelowReserve)
}

func TestComputeAirConsumptionSpillsIntoNextMatchingCylinder(t *testing.T) {
	air := gasmix.NewAir()
	segs := []schedule.DiveSegment{
		{Depth: 20.0, Duration: 60.0, GasMix: air, Kind: schedule.Bottom},
	}
	cylinders := []Cylinder{
		{Name: "first", Volume: 3.0, StartPressure: 60.0, Role: gasmix.RoleBottom},
		{Name: "second", Volume: 24.0, StartPressure: 200.0, Role: gasmix.RoleBottom},
	}

	result, err := ComputeAirConsumption(segs, 20.0, 50.0, cylinders)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.Cylinders[0].FinalPressure, 1e-6, "first cylinder stops exactly at reserve")
	assert.Less(t, result.Cylinders[1].FinalPressure, cylinders[1].StartPressure, "overflow spilled into second cylinder")
}

func TestComputeAirConsumptionInvalidInputs(t *testing.T) {
	air := gasmix.NewAir()
	cylinders := []Cylinder{{Name: "back-gas", Volume: 24.0, StartPressure: 200.0, Role: gasmix.RoleBottom}}

	_, err := ComputeAirConsumption(segments(air), 0.0, 50.0, cylinders)
	assert.Error(t, err)

	_, err = ComputeAirConsumption(segments(air), 20.0, 50.0, nil)
	assert.Error(t, err)
}
