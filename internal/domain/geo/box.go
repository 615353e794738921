package geo

import (
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/errs"
)

// Box is an axis-aligned rectangle defined by its south-west and north-east corners.
type Box struct {
	BottomLeft Point
	TopRight   Point
}

// NewBox validates both corners and their ordering.
// Boxes crossing the antimeridian are not supported: bottomLeft must not exceed topRight on either axis.
func NewBox(bottomLeft, topRight Point) (Box, error) {
	if err := bottomLeft.Validate(); err != nil {
		return Box{}, fmt.Errorf("bottomLeft: %w", err)
	}
	if err := topRight.Validate(); err != nil {
		return Box{}, fmt.Errorf("topRight: %w", err)
	}
	if bottomLeft.Lat > topRight.Lat || bottomLeft.Lng > topRight.Lng {
		return Box{}, fmt.Errorf("%w: bottomLeft must be south-west of topRight", errs.ErrInvalidInput)
	}
	return Box{BottomLeft: bottomLeft, TopRight: topRight}, nil
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.Lng >= b.BottomLeft.Lng && p.Lng <= b.TopRight.Lng &&
		p.Lat >= b.BottomLeft.Lat && p.Lat <= b.TopRight.Lat
}

// Corners returns the box as two [lng, lat] pairs, bottom-left first.
func (b Box) Corners() [][]float64 {
	return [][]float64{b.BottomLeft.Coordinates(), b.TopRight.Coordinates()}
}
