package cat

import (
	"fmt"
	"strings"
	"time"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// Cat is a photographed cat pinned to a location and owned by a user.
type Cat struct {
	id        objectid.ID
	name      string
	weight    float64
	birthdate time.Time
	owner     objectid.ID
	location  geo.Point
	filename  string
	createdAt time.Time
	updatedAt time.Time
}

// NewCat creates a validated cat with a fresh id
func NewCat(
	name string,
	weight float64,
	birthdate time.Time,
	owner objectid.ID,
	location geo.Point,
	filename string,
) (*Cat, error) {
	name = strings.TrimSpace(name)
	filename = strings.TrimSpace(filename)

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateWeight(weight); err != nil {
		return nil, err
	}
	if err := validateBirthdate(birthdate); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, fmt.Errorf("%w: owner is required", errs.ErrInvalidInput)
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", errs.ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &Cat{
		id:        objectid.New(),
		name:      name,
		weight:    weight,
		birthdate: birthdate.UTC(),
		owner:     owner,
		location:  location,
		filename:  filename,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a cat from storage
func Reconstruct(
	id objectid.ID,
	name string,
	weight float64,
	birthdate time.Time,
	owner objectid.ID,
	location geo.Point,
	filename string,
	createdAt, updatedAt time.Time,
) *Cat {
	return &Cat{
		id:        id,
		name:      name,
		weight:    weight,
		birthdate: birthdate,
		owner:     owner,
		location:  location,
		filename:  filename,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

func (c *Cat) ID() objectid.ID {
	return c.id
}

func (c *Cat) Name() string {
	return c.name
}

func (c *Cat) Weight() float64 {
	return c.weight
}

func (c *Cat) Birthdate() time.Time {
	return c.birthdate
}

func (c *Cat) Owner() objectid.ID {
	return c.owner
}

func (c *Cat) Location() geo.Point {
	return c.location
}

func (c *Cat) Filename() string {
	return c.filename
}

func (c *Cat) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Cat) UpdatedAt() time.Time {
	return c.updatedAt
}

// Changes is a partial update. Owner, location and filename are immutable.
type Changes struct {
	Name      *string
	Weight    *float64
	Birthdate *time.Time
}

// IsEmpty reports whether no field is set
func (ch Changes) IsEmpty() bool {
	return ch.Name == nil && ch.Weight == nil && ch.Birthdate == nil
}

// Validate checks every field that is set
func (ch Changes) Validate() error {
	if ch.Name != nil {
		if err := validateName(strings.TrimSpace(*ch.Name)); err != nil {
			return err
		}
	}
	if ch.Weight != nil {
		if err := validateWeight(*ch.Weight); err != nil {
			return err
		}
	}
	if ch.Birthdate != nil {
		if err := validateBirthdate(*ch.Birthdate); err != nil {
			return err
		}
	}
	return nil
}

// Apply validates and applies the changes in place
func (c *Cat) Apply(ch Changes) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	if ch.IsEmpty() {
		return nil
	}
	if ch.Name != nil {
		c.name = strings.TrimSpace(*ch.Name)
	}
	if ch.Weight != nil {
		c.weight = *ch.Weight
	}
	if ch.Birthdate != nil {
		c.birthdate = ch.Birthdate.UTC()
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: cat_name is required", errs.ErrInvalidInput)
	}
	return nil
}

func validateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", errs.ErrInvalidInput)
	}
	return nil
}

func validateBirthdate(birthdate time.Time) error {
	if birthdate.IsZero() {
		return fmt.Errorf("%w: birthdate is required", errs.ErrInvalidInput)
	}
	if birthdate.After(time.Now()) {
		return fmt.Errorf("%w: birthdate cannot be in the future", errs.ErrInvalidInput)
	}
	return nil
}
