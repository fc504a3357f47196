package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
)

func TestParsePinpointValid(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
	}{
		{"45.5,-122.6", 45.5, -122.6},
		{"  45.5 , -122.6  ", 45.5, -122.6},
		{"0,0", 0, 0},
		{"90,180", 90, 180},
		{"-90,-180", -90, -180},
	}
	for _, tt := range tests {
		c, ok := ParsePinpoint(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.lat, c.Latitude, tt.in)
		assert.Equal(t, tt.lng, c.Longitude, tt.in)
	}
}

func TestParsePinpointInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"45.5",
		"45.5;-122.6",
		"45.5,-122.6,10",
		"north of the bridge",
		"90.1,0",
		"-90.5,0",
		"0,180.01",
		"0,-181",
		"+45,10",
		".5,10",
		"45.5 -122.6",
	} {
		_, ok := ParsePinpoint(in)
		assert.False(t, ok, "%q", in)
	}
}

func TestParsePinpointRoundTrip(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.25 {
		for lng := -180.0; lng <= 180; lng += 13.5 {
			c, ok := ParsePinpoint(fmt.Sprintf("%g,%g", lat, lng))
			require.True(t, ok)
			assert.Equal(t, lat, c.Latitude)
			assert.Equal(t, lng, c.Longitude)
		}
	}
}

func TestResolveCoordinatesPrefersStored(t *testing.T) {
	lat, lng := 10.0, 20.0
	c, err := ResolveCoordinates(&lat, &lng, "45.5,-122.6")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: 10, Longitude: 20}, c)
}

func TestResolveCoordinatesFallsBackToPinpoint(t *testing.T) {
	lat := 10.0
	c, err := ResolveCoordinates(&lat, nil, "45.5,-122.6")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: 45.5, Longitude: -122.6}, c)
}

func TestResolveCoordinatesMissing(t *testing.T) {
	_, err := ResolveCoordinates(nil, nil, "by the old dock")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
