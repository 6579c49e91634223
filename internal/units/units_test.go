package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepthPressureRoundTrip(t *testing.T) {
	tests := []float64{0.0, 5.0, 18.0, 40.0, 99.5}

	for _, depth := range tests {
		p := DepthToPressure(depth)
		got := PressureToDepth(p)
		assert.InDelta(t, depth, got, 1e-9)
	}
}

func TestDepthToPressureAtSurface(t *testing.T) {
	assert.InDelta(t, SurfacePressure, DepthToPressure(0.0), 1e-9)
}

func TestPressureToDepthClampsAtSurface(t *testing.T) {
	assert.Equal(t, 0.0, PressureToDepth(SurfacePressure-0.5))
}

func TestInspiredPressure(t *testing.T) {
	got := InspiredPressure(4.0, 0.21)
	want := (4.0 - WaterVapourPressure) * 0.21
	assert.InDelta(t, want, got, 1e-9)
}

func TestRoundUpToGrid(t *testing.T) {
	tests := []struct {
		name  string
		depth float64
		want  float64
	}{
		{name: "Zero", depth: 0.0, want: 0.0},
		{name: "Negative", depth: -3.0, want: 0.0},
		{name: "Exact multiple", depth: 9.0, want: 9.0},
		{name: "Rounds up", depth: 7.1, want: 9.0},
		{name: "Just under grid", depth: 8.999, want: 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundUpToGrid(tt.depth), 1e-9)
		})
	}
}
