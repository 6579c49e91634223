package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurfacelabs/decoengine/gasmix"
)

func TestComputeMultilevelProfile(t *testing.T) {
	air := gasmix.NewAir()

	params := MultiLevelDiveParameters{
		Segments: []DiveSegment{
			{Depth: 40.0, Duration: 15.0, GasMix: air, Kind: Bottom},
			{Depth: 30.0, Duration: 10.0, GasMix: air, Kind: Bottom},
			{Depth: 20.0, Duration: 8.0, GasMix: air, Kind: Bottom},
		},
		DescentRate: 20.0,
		AscentRate:  9.0,
		GFLow:       30,
		GFHigh:      70,
		Inventory:   gasmix.GasInventory{BottomGas: air},
	}

	profile, err := ComputeMultilevelProfile(params)
	require.NoError(t, err)

	assert.InDelta(t, 40.0, profile.MaxDepth, 1e-9)

	for _, w := range profile.Warnings {
		assert.NotEqual(t, "reverse profile", w.Message)
	}

	assert.NotEmpty(t, nonSafetyStops(profile.DecompressionStops))
}

func TestComputeMultilevelProfileReverseProfileWarning(t *testing.T) {
	air := gasmix.NewAir()

	params := MultiLevelDiveParameters{
		Segments: []DiveSegment{
			{Depth: 20.0, Duration: 10.0, GasMix: air, Kind: Bottom},
			{Depth: 30.0, Duration: 10.0, GasMix: air, Kind: Bottom},
		},
		DescentRate: 20.0,
		AscentRate:  9.0,
		GFLow:       30,
		GFHigh:      85,
		Inventory:   gasmix.GasInventory{BottomGas: air},
	}

	profile, err := ComputeMultilevelProfile(params)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, profile.MaxDepth, 1e-9)

	var sawReverseProfileWarning bool
	for _, w := range profile.Warnings {
		if w.Message == "reverse profile" {
			sawReverseProfileWarning = true
		}
	}
	assert.True(t, sawReverseProfileWarning)
}

func TestComputeMultilevelProfileValidation(t *testing.T) {
	_, err := ComputeMultilevelProfile(MultiLevelDiveParameters{})
	assert.Error(t, err)

	air := gasmix.NewAir()
	tooMany := make([]DiveSegment, 11)
	for i := range tooMany {
		tooMany[i] = DiveSegment{Depth: 20.0, Duration: 5.0, GasMix: air}
	}
	_, err = ComputeMultilevelProfile(MultiLevelDiveParameters{
		Segments: tooMany, DescentRate: 20, AscentRate: 9, GFLow: 30, GFHigh: 85,
		Inventory: gasmix.GasInventory{BottomGas: air},
	})
	assert.Error(t, err)
}
