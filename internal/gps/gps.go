// Package gps turns raw EXIF GPS tags into signed decimal-degree coordinates.
package gps

import (
	"errors"
	"fmt"

	"github.com/bstardust/phonfo/internal/logger"
)

// ErrNoCoordinates means the tag set lacks a latitude or longitude
var ErrNoCoordinates = errors.New("no GPS coordinates")

// TagSet holds the GPS tags needed to locate an image.
// A nil field means the tag is absent.
type TagSet struct {
	Latitude     RationalSource
	Longitude    RationalSource
	LatitudeRef  *string
	LongitudeRef *string
}

// Ref returns a pointer to s, for building a TagSet
func Ref(s string) *string {
	return &s
}

// Coordinate is a position in signed decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// Decode converts ts into a Coordinate. Both axes must be present;
// a missing hemisphere reference leaves the magnitude positive.
func Decode(ts *TagSet) (Coordinate, error) {
	if ts == nil || ts.Latitude == nil || ts.Longitude == nil {
		return Coordinate{}, ErrNoCoordinates
	}

	lat, err := ToDegrees(ts.Latitude)
	if err != nil {
		return Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := ToDegrees(ts.Longitude)
	if err != nil {
		return Coordinate{}, fmt.Errorf("longitude: %w", err)
	}

	if ts.LatitudeRef != nil && *ts.LatitudeRef != "N" {
		lat = -lat
	}
	if ts.LongitudeRef != nil && *ts.LongitudeRef != "E" {
		lon = -lon
	}

	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// Resolve is Decode for callers that only care whether a position exists.
// Malformed values are logged and reported as absent.
func Resolve(ts *TagSet) (Coordinate, bool) {
	c, err := Decode(ts)
	if err != nil {
		if !errors.Is(err, ErrNoCoordinates) {
			logger.Warn("Failed to process GPS data: %v", err)
		}
		return Coordinate{}, false
	}
	return c, true
}
