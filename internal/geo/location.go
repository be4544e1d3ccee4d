// Package geo decodes submission geometry and provides geodesic distance
// helpers for duplicate matching.
package geo

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrGeometryParse marks a raw location that could not be decoded as
// either textual or binary point geometry. Submissions carrying such a
// location are left pending for manual review.
var ErrGeometryParse = errors.New("geo: unparseable geometry")

// wkbPointLen is the size of a little-endian WKB point: 1 byte order,
// 4 bytes geometry type, two 8-byte IEEE-754 doubles.
const wkbPointLen = 21

// sridHeaderLen is the 4-byte SRID prefix some stores prepend to WKB.
const sridHeaderLen = 4

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseLocation decodes a submission's raw geometry into a Point. It
// tries the textual "POINT(lng lat)" form first, then hex-encoded WKB
// (with or without a leading SRID header), then raw binary WKB.
func ParseLocation(raw string) (Point, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Point{}, eris.Wrap(ErrGeometryParse, "empty raw location")
	}

	if g, err := wkt.Unmarshal(raw); err == nil {
		return pointFromGeom(g)
	}

	data, err := hex.DecodeString(raw)
	if err != nil {
		data = []byte(raw)
	}
	if len(data) == wkbPointLen+sridHeaderLen {
		data = data[sridHeaderLen:]
	}

	g, err := wkb.Unmarshal(data)
	if err != nil {
		return Point{}, eris.Wrapf(ErrGeometryParse, "decode wkb: %v", err)
	}
	return pointFromGeom(g)
}

func pointFromGeom(g geom.T) (Point, error) {
	pt, ok := g.(*geom.Point)
	if !ok {
		return Point{}, eris.Wrapf(ErrGeometryParse, "geometry is %T, want point", g)
	}
	return Point{Lat: pt.Y(), Lng: pt.X()}, nil
}
