package frontend

import (
	"github.com/samirrijal/restofinder/internal/core/domain"
	"github.com/samirrijal/restofinder/internal/pkg/geospatial"
)

// SingleMarkerRadius pads the bounds around a lone marker, roughly a
// street-level zoom.
const SingleMarkerRadius = 500.0

// DefaultCenter is the map center before any results arrive.
var DefaultCenter = domain.GeoPoint{Lat: 40.7128, Lng: -74.0060}

// Marker is one pin on the results map.
type Marker struct {
	PlaceID     string
	Title       string
	Position    domain.GeoPoint
	Highlighted bool
}

// Markers returns a pin for every item with coordinates, in list order.
// The item whose place id equals hoveredID is highlighted.
func Markers(items []domain.RestaurantSummary, hoveredID string) []Marker {
	markers := make([]Marker, 0, len(items))
	for _, it := range items {
		if it.Location == nil {
			continue
		}
		markers = append(markers, Marker{
			PlaceID:     it.PlaceID,
			Title:       it.Name,
			Position:    *it.Location,
			Highlighted: hoveredID != "" && it.PlaceID == hoveredID,
		})
	}
	return markers
}

// FitBounds returns the box enclosing all markers. A single marker gets a
// box of SingleMarkerRadius around it. ok is false when there are no markers.
func FitBounds(markers []Marker) (domain.Bounds, bool) {
	if len(markers) == 1 {
		return geospatial.Around(markers[0].Position, SingleMarkerRadius), true
	}
	points := make([]domain.GeoPoint, len(markers))
	for i, m := range markers {
		points[i] = m.Position
	}
	return geospatial.Enclosing(points)
}

// Center returns the middle of b.
func Center(b domain.Bounds) domain.GeoPoint {
	return geospatial.Center(b)
}

// DistanceMeters is the great-circle distance from origin to the
// restaurant. ok is false when the restaurant has no coordinates.
func DistanceMeters(origin domain.GeoPoint, r domain.RestaurantSummary) (float64, bool) {
	if r.Location == nil {
		return 0, false
	}
	return geospatial.Distance(origin, *r.Location), true
}
