package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualFloat64(t *testing.T) {
	assert.True(t, EqualFloat64(1.0, 1.0+1e-12))
	assert.False(t, EqualFloat64(1.0, 1.1))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(12.0, 12.005, 0.01))
	assert.False(t, WithinTolerance(12.0, 12.02, 0.01))
}

func TestDescOrAsc(t *testing.T) {
	tests := []struct {
		name  string
		fromD float64
		toD   float64
		want  float64
	}{
		{name: "Descending", fromD: 10.0, toD: 20.0, want: 1.0},
		{name: "Ascending", fromD: 20.0, toD: 10.0, want: -1.0},
		{name: "Level", fromD: 15.0, toD: 15.0, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescOrAsc(tt.fromD, tt.toD))
		})
	}
}

func TestImperialConversions(t *testing.T) {
	assert.InDelta(t, 32.81, MetresToFeet(10.0), 1e-6)
	assert.InDelta(t, 10.0, FeetToMetres(MetresToFeet(10.0)), 1e-6)
	assert.InDelta(t, 100.0, CubicFeetToLitres(LitresToCubicFeet(100.0)), 1e-6)
	assert.InDelta(t, 14.5038, BarToPSI(1.0), 1e-6)
	assert.InDelta(t, 1.0, PSIToBar(BarToPSI(1.0)), 1e-6)
}
