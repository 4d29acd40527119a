package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePolyline(t *testing.T) {
	// Reference vector from the polyline format documentation
	points := decodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, points[0].Longitude, 1e-5)
	assert.InDelta(t, 40.7, points[1].Latitude, 1e-5)
	assert.InDelta(t, -120.95, points[1].Longitude, 1e-5)
	assert.InDelta(t, 43.252, points[2].Latitude, 1e-5)
	assert.InDelta(t, -126.453, points[2].Longitude, 1e-5)
}

func TestDecodePolyline_Empty(t *testing.T) {
	assert.Empty(t, decodePolyline(""))
}

func TestDecodePolyline_TruncatedInput(t *testing.T) {
	// Must not panic on input cut off mid-value
	assert.NotPanics(t, func() {
		decodePolyline("_p~iF")
	})
}
