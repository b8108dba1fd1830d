// Package geospatial has the map math used by the results view.
package geospatial

import (
	"math"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// Mean Earth radius and the length of one degree of latitude, in meters.
const (
	earthRadius     = 6371000.0
	metersPerDegree = 111320.0
)

// Distance is the great-circle distance between a and b in meters.
func Distance(a, b domain.GeoPoint) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLng := math.Sin(radians(b.Lng-a.Lng) / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Around returns the box reaching radius meters from center in each
// cardinal direction.
func Around(center domain.GeoPoint, radius float64) domain.Bounds {
	dLat := radius / metersPerDegree
	dLng := radius / (metersPerDegree * math.Cos(radians(center.Lat)))
	return domain.Bounds{
		MinLat: center.Lat - dLat,
		MinLng: center.Lng - dLng,
		MaxLat: center.Lat + dLat,
		MaxLng: center.Lng + dLng,
	}
}

// Enclosing returns the smallest box holding every point. ok is false for
// an empty slice.
func Enclosing(points []domain.GeoPoint) (b domain.Bounds, ok bool) {
	if len(points) == 0 {
		return domain.Bounds{}, false
	}
	b = domain.Bounds{MinLat: points[0].Lat, MinLng: points[0].Lng, MaxLat: points[0].Lat, MaxLng: points[0].Lng}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}
	return b, true
}

// Center is the midpoint of b.
func Center(b domain.Bounds) domain.GeoPoint {
	return domain.GeoPoint{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
