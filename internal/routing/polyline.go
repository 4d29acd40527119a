package routing

// decodePolyline converts an encoded polyline string into a coordinate list.
// Standard Google encoding with 1e-5 precision, which is what
// OpenRouteService returns for non-GeoJSON geometry.
func decodePolyline(encoded string) []Coordinate {
	var points []Coordinate
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		// Latitude delta
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lat -= result >> 1
		} else {
			lat += result >> 1
		}

		// Longitude delta
		shift, result = 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lng -= result >> 1
		} else {
			lng += result >> 1
		}

		points = append(points, Coordinate{
			Latitude:  float64(lat) * 1e-5,
			Longitude: float64(lng) * 1e-5,
		})
	}

	return points
}
