package geo

import "math"

const (
	earthRadiusM = 6371000.0

	// walkingSpeedMPM is the assumed walking pace in metres per minute used
	// for straight-line duration estimates.
	walkingSpeedMPM = 80.0
)

// Haversine calculates the great-circle distance in metres between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// Bearing returns the initial bearing in degrees (0..360) from the first
// coordinate towards the second.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(deg+360.0, 360.0)
}

// WalkingDuration returns the estimated walking time in whole minutes for a
// distance in metres, rounded up.
func WalkingDuration(distanceM float64) int {
	if distanceM <= 0 {
		return 0
	}
	return int(math.Ceil(distanceM / walkingSpeedMPM))
}

// ValidCoordinate reports whether a latitude/longitude pair is within valid
// ranges.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
