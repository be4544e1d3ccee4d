package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_IdenticalPoints(t *testing.T) {
	pts := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 37.5665, Lng: 126.9780},
		{Lat: -33.8688, Lng: 151.2093},
	}
	for _, p := range pts {
		assert.Equal(t, 0, Haversine(p, p))
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	a := Point{Lat: 48.8566, Lng: 2.3522}
	b := Point{Lat: 51.5074, Lng: -0.1278}
	assert.Equal(t, Haversine(a, b), Haversine(b, a))
}

func TestHaversine_KnownDistances(t *testing.T) {
	// 0.001 degrees of latitude is about 111.2 m.
	a := Point{Lat: 37.5665, Lng: 126.9780}
	b := Point{Lat: 37.5675, Lng: 126.9780}
	assert.InDelta(t, 111, Haversine(a, b), 1)

	// Paris to London is roughly 344 km.
	paris := Point{Lat: 48.8566, Lng: 2.3522}
	london := Point{Lat: 51.5074, Lng: -0.1278}
	assert.InDelta(t, 343_500, Haversine(paris, london), 1_500)
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	center := Point{Lat: 37.5665, Lng: 126.9780}
	minLat, maxLat, minLng, maxLng := BoundingBox(center, 200)

	assert.Less(t, minLat, center.Lat)
	assert.Greater(t, maxLat, center.Lat)
	assert.Less(t, minLng, center.Lng)
	assert.Greater(t, maxLng, center.Lng)

	// A point 150 m north must fall inside the box.
	north := Point{Lat: center.Lat + 150.0/111320.0, Lng: center.Lng}
	assert.GreaterOrEqual(t, north.Lat, minLat)
	assert.LessOrEqual(t, north.Lat, maxLat)
}
