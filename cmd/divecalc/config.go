package main

import (
	"github.com/BurntSushi/toml"

	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/schedule"
)

// gasMixConfig is the TOML shape of a breathing gas: a name (used only
// for display) plus its oxygen and helium fractions; nitrogen is
// derived so the file never needs to balance fractions by hand.
type gasMixConfig struct {
	Name string  `toml:"name"`
	FO2  float64 `toml:"fo2"`
	FHe  float64 `toml:"fhe"`
}

func (g gasMixConfig) toGasMix() (gasmix.GasMix, error) {
	return gasmix.New(g.FO2, 1.0-g.FO2-g.FHe, g.FHe, g.Name)
}

// diveConfig is the on-disk TOML representation of a single-level dive
// plan, the input format for the `profile` subcommand.
type diveConfig struct {
	Depth      float64        `toml:"depth"`
	BottomTime float64        `toml:"bottom_time"`
	BottomGas  gasMixConfig   `toml:"bottom_gas"`
	DecoGases  []gasMixConfig `toml:"deco_gas"`

	DescentRate float64 `toml:"descent_rate"`
	AscentRate  float64 `toml:"ascent_rate"`

	GFLow  int `toml:"gf_low"`
	GFHigh int `toml:"gf_high"`
}

// loadDiveConfig decodes a TOML dive-parameters file from path.
func loadDiveConfig(path string) (diveConfig, error) {
	var cfg diveConfig
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// toDiveParameters converts the decoded TOML config into the engine's
// own DiveParameters, applying the CLI's rate/GF defaults wherever the
// file leaves a field at its zero value.
func (c diveConfig) toDiveParameters() (schedule.DiveParameters, error) {
	bottomGas, err := c.BottomGas.toGasMix()
	if err != nil {
		return schedule.DiveParameters{}, err
	}

	decoGases := make([]gasmix.GasMix, 0, len(c.DecoGases))
	for _, g := range c.DecoGases {
		gm, err := g.toGasMix()
		if err != nil {
			return schedule.DiveParameters{}, err
		}
		decoGases = append(decoGases, gm)
	}

	p := schedule.DiveParameters{
		Depth:       c.Depth,
		BottomTime:  c.BottomTime,
		BottomGas:   bottomGas,
		DecoGases:   decoGases,
		DescentRate: c.DescentRate,
		AscentRate:  c.AscentRate,
		GFLow:       c.GFLow,
		GFHigh:      c.GFHigh,
	}
	if p.DescentRate <= 0 {
		p.DescentRate = 20.0
	}
	if p.AscentRate <= 0 {
		p.AscentRate = 9.0
	}
	if p.GFLow <= 0 {
		p.GFLow = 30
	}
	if p.GFHigh <= 0 {
		p.GFHigh = 85
	}
	return p, nil
}
