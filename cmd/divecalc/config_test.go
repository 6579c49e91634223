package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDiveConfigReadsTestdataFile(t *testing.T) {
	cfg, err := loadDiveConfig("testdata/dive.toml")
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Depth)
	assert.Equal(t, 25.0, cfg.BottomTime)
	assert.Equal(t, "air", cfg.BottomGas.Name)
	assert.Equal(t, 0.21, cfg.BottomGas.FO2)
	require.Len(t, cfg.DecoGases, 1)
	assert.Equal(t, "EAN50", cfg.DecoGases[0].Name)
}

func TestLoadDiveConfigMissingFile(t *testing.T) {
	_, err := loadDiveConfig("testdata/does-not-exist.toml")
	assert.Error(t, err)
}

func TestToDiveParametersAppliesDefaults(t *testing.T) {
	cfg := diveConfig{
		Depth:      20.0,
		BottomTime: 15.0,
		BottomGas:  gasMixConfig{Name: "air", FO2: 0.21},
	}

	params, err := cfg.toDiveParameters()
	require.NoError(t, err)

	assert.Equal(t, 20.0, params.DescentRate)
	assert.Equal(t, 9.0, params.AscentRate)
	assert.Equal(t, 30, params.GFLow)
	assert.Equal(t, 85, params.GFHigh)
}

func TestToDiveParametersRejectsInvalidGasMix(t *testing.T) {
	cfg := diveConfig{
		Depth:      20.0,
		BottomTime: 15.0,
		BottomGas:  gasMixConfig{Name: "bad", FO2: 1.5},
	}

	_, err := cfg.toDiveParameters()
	assert.Error(t, err)
}

func TestToDiveParametersConvertsDecoGases(t *testing.T) {
	cfg := diveConfig{
		Depth:      30.0,
		BottomTime: 25.0,
		BottomGas:  gasMixConfig{Name: "air", FO2: 0.21},
		DecoGases: []gasMixConfig{
			{Name: "EAN50", FO2: 0.50},
			{Name: "oxygen", FO2: 1.0},
		},
	}

	params, err := cfg.toDiveParameters()
	require.NoError(t, err)
	require.Len(t, params.DecoGases, 2)
	assert.Equal(t, "EAN50", params.DecoGases[0].Name)
	assert.Equal(t, "oxygen", params.DecoGases[1].Name)
}
