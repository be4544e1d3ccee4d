package geo

import "math"

// earthRadiusMeters is the mean Earth radius used for haversine distance.
const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance between two coordinates in
// meters, rounded to the nearest integer. Identical points yield 0.
func Haversine(a, b Point) int {
	if a == b {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))

	return int(math.Round(d))
}

// BoundingBox returns the min/max latitude and longitude of a box that
// contains every point within radiusMeters of center. It is a coarse
// prefilter for nearby-place queries; exact distance is checked with
// Haversine afterwards.
func BoundingBox(center Point, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	// One degree of latitude is ~111,320 m everywhere; longitude degrees
	// shrink with the cosine of the latitude.
	latDelta := radiusMeters / 111320.0
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusMeters / (111320.0 * cosLat)

	return center.Lat - latDelta, center.Lat + latDelta,
		center.Lng - lngDelta, center.Lng + lngDelta
}
