package cat

import "time"

// CreateCatCommand - creation of a cat
type CreateCatCommand struct {
	Name         string
	Weight       float64
	Birthdate    time.Time
	OwnerID      string
	LocationType string
	Coordinates  []float64 // [lng, lat]
	Filename     string
}

func (c CreateCatCommand) CommandName() string { return "CreateCat" }

// UpdateCatCommand - partial update, nil fields are left untouched
type UpdateCatCommand struct {
	CatID     string
	Name      *string
	Weight    *float64
	Birthdate *time.Time
}

func (c UpdateCatCommand) CommandName() string { return "UpdateCat" }

// DeleteCatCommand - removal of a cat
type DeleteCatCommand struct {
	CatID string
}

func (c DeleteCatCommand) CommandName() string { return "DeleteCat" }
