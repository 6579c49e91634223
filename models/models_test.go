package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/schedule"
)

func deepDiveParams() schedule.DiveParameters {
	return schedule.DiveParameters{
		Depth:       30.0,
		BottomTime:  30.0,
		BottomGas:   gasmix.NewAir(),
		DescentRate: 20.0,
		AscentRate:  9.0,
		GFLow:       30,
		GFHigh:      85,
	}
}

func TestComputeProfileBuhlmannBaseline(t *testing.T) {
	profile, err := ComputeProfile(Buhlmann, deepDiveParams(), 0)
	require.NoError(t, err)
	assert.Equal(t, "ZHL-16C", profile.ModelLabel)
}

func TestComputeProfileVPMBLabelsApproximation(t *testing.T) {
	profile, err := ComputeProfile(VPMBApprox, deepDiveParams(), 0)
	require.NoError(t, err)
	assert.Contains(t, profile.ModelLabel, "educational approximation")
}

func TestComputeProfileVPMBExtendsDeepStops(t *testing.T) {
	baseline, err := ComputeProfile(Buhlmann, deepDiveParams(), 0)
	require.NoError(t, err)
	vpmb, err := ComputeProfile(VPMBApprox, deepDiveParams(), 0)
	require.NoError(t, err)

	if baseline.TotalDecompressionTime > 0 {
		assert.GreaterOrEqual(t, vpmb.TotalDecompressionTime, baseline.TotalDecompressionTime)
	}
}

func TestComputeProfileRGBMPenaltyIncreasesWithPriorDives(t *testing.T) {
	first, err := ComputeProfile(RGBMApprox, deepDiveParams(), 0)
	require.NoError(t, err)
	third, err := ComputeProfile(RGBMApprox, deepDiveParams(), 2)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, third.TotalDiveTime, first.TotalDiveTime)
	assert.Contains(t, third.ModelLabel, "RGBM")
}

func TestComputeProfileUSNavyUsesTableWhenMatched(t *testing.T) {
	params := deepDiveParams()
	params.Depth = 30.0
	params.BottomTime = 30.0

	profile, err := ComputeProfile(USNavyApprox, params, 0)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, profile.TotalDecompressionTime, 1e-6)
	assert.Contains(t, profile.ModelLabel, "indicative")
}

func TestComputeProfileUSNavyFallsBackOffTable(t *testing.T) {
	params := deepDiveParams()
	params.Depth = 33.0
	params.BottomTime = 17.0

	profile, err := ComputeProfile(USNavyApprox, params, 0)
	require.NoError(t, err)
	assert.Contains(t, profile.ModelLabel, "indicative")
}

func TestCompareModelsReturnsAllSummaries(t *testing.T) {
	result, err := CompareModels(deepDiveParams(), []Kind{Buhlmann, VPMBApprox, RGBMApprox, USNavyApprox}, 0)
	require.NoError(t, err)
	assert.Len(t, result.Models, 4)
}

func TestCompareModelsRequiresNoDifferenceSignalForIdenticalInputs(t *testing.T) {
	result, err := CompareModels(deepDiveParams(), []Kind{Buhlmann}, 0)
	require.NoError(t, err)
	assert.Empty(t, result.SignificantDifferences)
}

func TestComputeProfilePropagatesValidationError(t *testing.T) {
	bad := deepDiveParams()
	bad.DescentRate = 0
	_, err := ComputeProfile(VPMBApprox, bad, 0)
	assert.Error(t, err)
}
