// Package entity contains the core business objects of the project.
package entity

import "github.com/paulmach/orb"

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts the location to an orb.Point (x = longitude, y = latitude).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LocationStatus describes how the viewer's location was obtained.
type LocationStatus int

const (
	// LocationInitializing means resolution has not finished yet.
	LocationInitializing LocationStatus = iota
	// LocationFound means the host reported real coordinates.
	LocationFound
	// LocationBlocked means the host denied access or timed out; a fallback is used.
	LocationBlocked
	// LocationUnavailable means the host has no location capability; a fallback is used.
	LocationUnavailable
)

// String returns the status name.
func (s LocationStatus) String() string {
	switch s {
	case LocationFound:
		return "Found"
	case LocationBlocked:
		return "Blocked"
	case LocationUnavailable:
		return "Unavailable"
	default:
		return "Initializing"
	}
}

// Label returns the human-readable status shown next to the book list.
func (s LocationStatus) Label() string {
	switch s {
	case LocationFound:
		return "Location found"
	case LocationBlocked:
		return "Location blocked"
	case LocationUnavailable:
		return "Location unavailable"
	default:
		return "Initializing..."
	}
}
