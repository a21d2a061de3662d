// Package geo computes great-circle distances between viewers and book owners
// and resolves the viewer's own position.
package geo

import (
	"fmt"
	"math"

	"bookswap/internal/domain/entity"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371.0

// worldBound is the valid WGS84 range.
var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Haversine calculates the great circle distance between two points in kilometers.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Distance is Haversine over orb points.
func Distance(a, b orb.Point) float64 {
	return Haversine(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// FormatDistance renders km as "<n>m away" below one kilometer and "<n.n>km away" otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm away", int(math.Round(km*1000)))
	}

	return fmt.Sprintf("%.1fkm away", km)
}

// Annotate returns the distance label between viewer and owner, or "" when either is unknown.
func Annotate(viewer, owner *entity.Location) string {
	if viewer == nil || owner == nil {
		return ""
	}

	return FormatDistance(Distance(viewer.Point(), owner.Point()))
}

// Valid checks if a point is within valid geographic bounds.
func Valid(p orb.Point) bool {
	// Reject NaN or infinities early
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return worldBound.Contains(p)
}
