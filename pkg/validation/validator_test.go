package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Latitude  *float64 `validate:"required,latitude"`
	Longitude *float64 `validate:"required,longitude"`
	Mode      string   `validate:"omitempty,travel_mode"`
	FreeText  string   `validate:"required,max=10"`
}

func floatPtr(v float64) *float64 { return &v }

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&testRequest{
		Latitude:  floatPtr(40.0),
		Longitude: floatPtr(-75.0),
		Mode:      "walking",
		FreeText:  "short",
	})
	assert.NoError(t, err)
}

func TestValidateStruct_MissingRequired(t *testing.T) {
	err := ValidateStruct(&testRequest{FreeText: "short"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "latitude")
	assert.Contains(t, verr.Fields, "longitude")
}

func TestValidateStruct_OutOfRangeCoordinates(t *testing.T) {
	err := ValidateStruct(&testRequest{
		Latitude:  floatPtr(95.0),
		Longitude: floatPtr(-181.0),
		FreeText:  "short",
	})
	require.Error(t, err)

	verr := err.(*ValidationError)
	assert.Contains(t, verr.Fields["latitude"], "valid latitude")
	assert.Contains(t, verr.Fields["longitude"], "valid longitude")
}

func TestValidateStruct_TravelMode(t *testing.T) {
	err := ValidateStruct(&testRequest{
		Latitude:  floatPtr(40.0),
		Longitude: floatPtr(-75.0),
		Mode:      "teleport",
		FreeText:  "short",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walking, cycling, driving")
}
