package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// TESTS: OpenRouteService provider
// ========================================

func TestORSComputeLeg_NormalizesResponse(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"routes": [{
				"summary": {"distance": 512.3, "duration": 61.0},
				"geometry": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@",
				"segments": [{
					"distance": 512.3,
					"duration": 61.0,
					"steps": [
						{"distance": 400, "duration": 50, "type": 11, "instruction": "Head north"},
						{"distance": 112.3, "duration": 11, "type": 1, "instruction": "Turn right"}
					]
				}]
			}]
		}`))
	}))
	defer server.Close()

	provider := NewORSProvider(server.URL, "test-key", 5*time.Second)

	leg, err := provider.ComputeLeg(context.Background(),
		Coordinate{Latitude: 38.5, Longitude: -120.2},
		Coordinate{Latitude: 43.252, Longitude: -126.453},
		ModeWalking,
	)
	require.NoError(t, err)

	assert.Equal(t, "/v2/directions/foot-walking", gotPath)
	assert.Equal(t, "test-key", gotAuth)

	// 61 seconds rounds up to 2 minutes
	assert.Equal(t, 2, leg.DurationMinutes)
	assert.Equal(t, 512.3, leg.DistanceMeters)

	// Encoded polyline decodes to a lat-first coordinate list
	require.Len(t, leg.Geometry, 3)
	assert.InDelta(t, 38.5, leg.Geometry[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, leg.Geometry[0].Longitude, 1e-5)

	require.Len(t, leg.Steps, 2)
	assert.Equal(t, "depart", leg.Steps[0].Maneuver)
	assert.Equal(t, "turn-right", leg.Steps[1].Maneuver)
	assert.Equal(t, ProviderORS, leg.Provider)
}

func TestORSComputeLeg_NotFoundMeansNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 2009, "message": "Route could not be found"}}`))
	}))
	defer server.Close()

	provider := NewORSProvider(server.URL, "test-key", 5*time.Second)

	_, err := provider.ComputeLeg(context.Background(),
		Coordinate{Latitude: 40.0, Longitude: -75.0},
		Coordinate{Latitude: 51.5, Longitude: 0.1},
		ModeWalking,
	)

	assert.ErrorIs(t, err, ErrNoRouteFound)
}

func TestORSComputeLeg_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewORSProvider(server.URL, "test-key", 5*time.Second)

	_, err := provider.ComputeLeg(context.Background(),
		Coordinate{Latitude: 40.0, Longitude: -75.0},
		Coordinate{Latitude: 40.001, Longitude: -75.001},
		ModeWalking,
	)

	assert.ErrorIs(t, err, ErrRoutingUnavailable)
}

func TestORSProfiles(t *testing.T) {
	assert.Equal(t, "foot-walking", orsProfile(ModeWalking))
	assert.Equal(t, "cycling-regular", orsProfile(ModeCycling))
	assert.Equal(t, "driving-car", orsProfile(ModeDriving))
}
