package geo

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lllypuk/catmap/internal/domain/errs"
)

// TypePoint is the only GeoJSON geometry type supported for cat locations.
const TypePoint = "Point"

const (
	minLat = -90.0
	maxLat = 90.0
	minLng = -180.0
	maxLng = 180.0
)

// Point is a WGS84 position. Serialized as GeoJSON with coordinates in [lng, lat] order.
type Point struct {
	Lng float64
	Lat float64
}

// GeoJSON is the wire shape of a Point.
type GeoJSON struct {
	Type        string    `json:"type"        bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewPoint creates a validated point.
func NewPoint(lng, lat float64) (Point, error) {
	p := Point{Lng: lng, Lat: lat}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// FromGeoJSON builds a point from a GeoJSON type and a [lng, lat] pair.
func FromGeoJSON(typ string, coordinates []float64) (Point, error) {
	if typ != TypePoint {
		return Point{}, fmt.Errorf("%w: location type must be %q, got %q", errs.ErrInvalidInput, TypePoint, typ)
	}
	if len(coordinates) != 2 {
		return Point{}, fmt.Errorf("%w: location needs exactly 2 coordinates, got %d",
			errs.ErrInvalidInput, len(coordinates))
	}
	return NewPoint(coordinates[0], coordinates[1])
}

// Validate checks latitude and longitude ranges. NaN and infinities are rejected.
func (p Point) Validate() error {
	if !finite(p.Lat) || !finite(p.Lng) {
		return fmt.Errorf("%w: coordinates must be finite numbers", errs.ErrInvalidInput)
	}
	if p.Lat < minLat || p.Lat > maxLat {
		return fmt.Errorf("%w: latitude %v out of range [%v, %v]", errs.ErrInvalidInput, p.Lat, minLat, maxLat)
	}
	if p.Lng < minLng || p.Lng > maxLng {
		return fmt.Errorf("%w: longitude %v out of range [%v, %v]", errs.ErrInvalidInput, p.Lng, minLng, maxLng)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Coordinates returns the GeoJSON coordinate pair.
func (p Point) Coordinates() []float64 {
	return []float64{p.Lng, p.Lat}
}

// GeoJSON returns the wire representation.
func (p Point) GeoJSON() GeoJSON {
	return GeoJSON{Type: TypePoint, Coordinates: p.Coordinates()}
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.GeoJSON())
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var g GeoJSON
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	parsed, err := FromGeoJSON(g.Type, g.Coordinates)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
