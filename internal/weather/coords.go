package weather

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vbonduro/fishedex/internal/domain"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

var pinpointPattern = regexp.MustCompile(`^(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)$`)

// ParsePinpoint reads a "<lat>,<lng>" string. It reports false for anything
// malformed or out of range.
func ParsePinpoint(s string) (Coordinates, bool) {
	m := pinpointPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: lat, Longitude: lng}, true
}

// ResolveCoordinates prefers stored coordinates and falls back to parsing
// the pinpoint.
func ResolveCoordinates(lat, lng *float64, pinpoint string) (Coordinates, error) {
	if lat != nil && lng != nil {
		return Coordinates{Latitude: *lat, Longitude: *lng}, nil
	}
	if c, ok := ParsePinpoint(pinpoint); ok {
		return c, nil
	}
	return Coordinates{}, domain.Validationf("Cannot fetch weather: location must have coordinates. Add coordinates (lat,lng) for this spot.")
}
