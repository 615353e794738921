package graphqlhandler

import (
	"time"

	catapp "github.com/lllypuk/catmap/internal/application/cat"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// UserResponse is the GraphQL User.
type UserResponse struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// LocationResponse is a GeoJSON point.
type LocationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// CatResponse is the GraphQL Cat with its owner resolved.
type CatResponse struct {
	ID        string           `json:"id"`
	CatName   string           `json:"cat_name"`
	Weight    float64          `json:"weight"`
	Birthdate time.Time        `json:"birthdate"`
	Owner     *UserResponse    `json:"owner"`
	Location  LocationResponse `json:"location"`
	Filename  string           `json:"filename"`
}

// MessageResponse is returned in place of a result when there is none.
type MessageResponse struct {
	Message string `json:"message"`
}

// CatListResponse wraps a non-empty list of cats.
type CatListResponse struct {
	Cats []*CatResponse `json:"cats"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:       u.ID().String(),
		UserName: u.UserName(),
		Email:    u.Email(),
	}
}

// ToCatResponse converts a cat view.
func ToCatResponse(v catapp.View) *CatResponse {
	c := v.Cat
	loc := c.Location().GeoJSON()
	return &CatResponse{
		ID:        c.ID().String(),
		CatName:   c.Name(),
		Weight:    c.Weight(),
		Birthdate: c.Birthdate(),
		Owner:     ToUserResponse(v.Owner),
		Location: LocationResponse{
			Type:        loc.Type,
			Coordinates: loc.Coordinates,
		},
		Filename: c.Filename(),
	}
}

func toCatResponses(views []catapp.View) []*CatResponse {
	out := make([]*CatResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToCatResponse(v))
	}
	return out
}
