package cat

import "github.com/lllypuk/catmap/internal/domain/geo"

// ListCatsQuery - every cat
type ListCatsQuery struct{}

func (q ListCatsQuery) QueryName() string { return "ListCats" }

// GetCatQuery - retrieval of a cat by ID
type GetCatQuery struct {
	CatID string
}

func (q GetCatQuery) QueryName() string { return "GetCat" }

// ListCatsByOwnerQuery - cats of one owner
type ListCatsByOwnerQuery struct {
	OwnerID string
}

func (q ListCatsByOwnerQuery) QueryName() string { return "ListCatsByOwner" }

// ListCatsByAreaQuery - cats inside a rectangle
type ListCatsByAreaQuery struct {
	TopRight   geo.Point
	BottomLeft geo.Point
}

func (q ListCatsByAreaQuery) QueryName() string { return "ListCatsByArea" }
