// Package geo parses and validates farm coordinates. The default bounding
// box is Greece; a deployment elsewhere passes its own Bounds.
package geo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Bounds is a lat/lng bounding box used to disambiguate coordinate order.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// GreeceBounds covers mainland Greece and the islands.
var GreeceBounds = Bounds{
	North: 41.8,
	South: 34.8,
	East:  29.7,
	West:  19.3,
}

var pairRe = regexp.MustCompile(`^([+-]?\d+\.?\d*)[,\s]+([+-]?\d+\.?\d*)$`)

// Contains reports whether the point is inside the box.
func (b Bounds) Contains(lng, lat float64) bool {
	return lng >= b.West && lng <= b.East && lat >= b.South && lat <= b.North
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{
		Lng: (b.West + b.East) / 2,
		Lat: (b.South + b.North) / 2,
	}
}

// Parse accepts a free-text pair of decimal numbers separated by comma or
// whitespace, in either "lat,lng" or "lng,lat" order. The bounding box
// decides which number is latitude; when neither or both orderings fit, the
// input is ambiguous and parsing fails.
func (b Bounds) Parse(s string) (Point, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Point{}, false
	}

	// Strip everything except digits, separators and signs (degree marks etc.)
	var cleaned strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' || r == '+' || r == ' ' {
			cleaned.WriteRune(r)
		}
	}

	m := pairRe.FindStringSubmatch(strings.TrimSpace(cleaned.String()))
	if m == nil {
		return Point{}, false
	}

	first, err1 := strconv.ParseFloat(m[1], 64)
	second, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return Point{}, false
	}

	latFirst := first >= b.South && first <= b.North && second >= b.West && second <= b.East
	lngFirst := second >= b.South && second <= b.North && first >= b.West && first <= b.East

	switch {
	case latFirst && !lngFirst:
		return Point{Lng: second, Lat: first}, true
	case lngFirst && !latFirst:
		return Point{Lng: first, Lat: second}, true
	}
	return Point{}, false
}

// ParseCoordinates parses against the Greece bounds.
func ParseCoordinates(s string) (Point, bool) {
	return GreeceBounds.Parse(s)
}

// WithinBounds reports whether the pair falls inside the Greece bounds.
func WithinBounds(lng, lat float64) bool {
	return GreeceBounds.Contains(lng, lat)
}

// FormatCoordinates renders a point as "lat, lng" for display.
func FormatCoordinates(lng, lat float64, precision int) string {
	return fmt.Sprintf("%.*f, %.*f", precision, lat, precision, lng)
}

// ZoomForArea maps a farm's area in stremmata to a map zoom tier.
func ZoomForArea(areaStremmata *float64) int {
	if areaStremmata == nil || *areaStremmata <= 0 {
		return 14
	}
	a := *areaStremmata
	switch {
	case a < 10:
		return 16
	case a < 50:
		return 15
	case a < 200:
		return 14
	case a < 500:
		return 13
	}
	return 12
}
