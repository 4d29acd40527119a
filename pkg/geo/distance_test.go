package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(40.0, -75.0, 40.0, -75.0))
	})

	t.Run("one degree of latitude is roughly 111km", func(t *testing.T) {
		d := Haversine(0, 0, 1, 0)
		assert.InDelta(t, 111195, d, 200)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(40.0, -75.0, 40.001, -75.001)
		b := Haversine(40.001, -75.001, 40.0, -75.0)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("short hop in Philadelphia", func(t *testing.T) {
		// 0.001 degrees of latitude is about 111m.
		d := Haversine(40.0, -75.0, 40.001, -75.0)
		assert.InDelta(t, 111.2, d, 1.0)
	})
}

func TestBearing(t *testing.T) {
	t.Run("due north", func(t *testing.T) {
		assert.InDelta(t, 0.0, Bearing(0, 0, 1, 0), 0.01)
	})

	t.Run("due east", func(t *testing.T) {
		assert.InDelta(t, 90.0, Bearing(0, 0, 0, 1), 0.01)
	})

	t.Run("due south", func(t *testing.T) {
		assert.InDelta(t, 180.0, Bearing(1, 0, 0, 0), 0.01)
	})
}

func TestWalkingDuration(t *testing.T) {
	assert.Equal(t, 0, WalkingDuration(0))
	assert.Equal(t, 1, WalkingDuration(1))
	assert.Equal(t, 1, WalkingDuration(80))
	assert.Equal(t, 2, WalkingDuration(81))
	assert.Equal(t, 10, WalkingDuration(800))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(40.0, -75.0))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(0, -181))
}
