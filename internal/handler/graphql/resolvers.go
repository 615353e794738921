package graphqlhandler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"

	catapp "github.com/lllypuk/catmap/internal/application/cat"
	userapp "github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
)

// CatService defines the interface for cat operations.
// Declared on the consumer side per project guidelines.
type CatService interface {
	ListCats(ctx context.Context, query catapp.ListCatsQuery) (catapp.ListResult, error)
	GetCat(ctx context.Context, query catapp.GetCatQuery) (catapp.Result, error)
	ListCatsByOwner(ctx context.Context, query catapp.ListCatsByOwnerQuery) (catapp.ListResult, error)
	ListCatsByArea(ctx context.Context, query catapp.ListCatsByAreaQuery) (catapp.ListResult, error)
	CreateCat(ctx context.Context, cmd catapp.CreateCatCommand) (catapp.Result, error)
	UpdateCat(ctx context.Context, cmd catapp.UpdateCatCommand) (catapp.Result, error)
	DeleteCat(ctx context.Context, cmd catapp.DeleteCatCommand) (catapp.Result, error)
}

// UserService defines the interface for user operations.
// Declared on the consumer side per project guidelines.
type UserService interface {
	CreateUser(ctx context.Context, cmd userapp.CreateUserCommand) (userapp.Result, error)
	GetUser(ctx context.Context, query userapp.GetUserQuery) (userapp.Result, error)
	ListUsers(ctx context.Context, query userapp.ListUsersQuery) (userapp.UsersListResult, error)
	UpdateUser(ctx context.Context, cmd userapp.UpdateUserCommand) (userapp.Result, error)
	DeleteUser(ctx context.Context, cmd userapp.DeleteUserCommand) (userapp.Result, error)
}

// Resolver holds the field resolvers of the schema.
type Resolver struct {
	cats   CatService
	users  UserService
	logger *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(cats CatService, users UserService, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cats: cats, users: users, logger: logger}
}

// fail converts err to a GraphQL error, logging unexpected ones.
func (r *Resolver) fail(p graphql.ResolveParams, err error) (any, error) {
	gqlErr, internal := classify(err)
	if internal {
		r.logger.ErrorContext(p.Context, "graphql resolver failed",
			slog.String("field", p.Info.FieldName),
			slog.String("error", err.Error()),
		)
	}
	return nil, gqlErr
}

func sentinel(ctx context.Context, message string) *MessageResponse {
	markSentinel(ctx)
	return &MessageResponse{Message: message}
}

func (r *Resolver) catResult(p graphql.ResolveParams, res catapp.Result, err error) (any, error) {
	if err != nil {
		return r.fail(p, err)
	}
	if res.IsEmpty() {
		return sentinel(p.Context, res.Message), nil
	}
	return ToCatResponse(res.Value), nil
}

func (r *Resolver) catListResult(p graphql.ResolveParams, res catapp.ListResult, err error) (any, error) {
	if err != nil {
		return r.fail(p, err)
	}
	if res.IsEmpty() {
		return sentinel(p.Context, res.Message), nil
	}
	return &CatListResponse{Cats: toCatResponses(res.Items)}, nil
}

func (r *Resolver) userResult(p graphql.ResolveParams, res userapp.Result, err error) (any, error) {
	if err != nil {
		return r.fail(p, err)
	}
	if res.IsEmpty() {
		return sentinel(p.Context, res.Message), nil
	}
	return ToUserResponse(res.Value), nil
}

// Cats resolves Query.cats.
func (r *Resolver) Cats(p graphql.ResolveParams) (any, error) {
	res, err := r.cats.ListCats(p.Context, catapp.ListCatsQuery{})
	if err != nil {
		return r.fail(p, err)
	}
	return toCatResponses(res.Items), nil
}

// CatByID resolves Query.catById.
func (r *Resolver) CatByID(p graphql.ResolveParams) (any, error) {
	res, err := r.cats.GetCat(p.Context, catapp.GetCatQuery{CatID: stringArg(p, "id")})
	if err != nil {
		return r.fail(p, err)
	}
	return ToCatResponse(res.Value), nil
}

// CatsByOwner resolves Query.catsByOwner.
func (r *Resolver) CatsByOwner(p graphql.ResolveParams) (any, error) {
	res, err := r.cats.ListCatsByOwner(p.Context, catapp.ListCatsByOwnerQuery{OwnerID: stringArg(p, "ownerId")})
	return r.catListResult(p, res, err)
}

// CatsByArea resolves Query.catsByArea.
func (r *Resolver) CatsByArea(p graphql.ResolveParams) (any, error) {
	topRight, err := coordinatesArg(p.Args["topRight"])
	if err != nil {
		return r.fail(p, fmt.Errorf("topRight: %w", err))
	}
	bottomLeft, err := coordinatesArg(p.Args["bottomLeft"])
	if err != nil {
		return r.fail(p, fmt.Errorf("bottomLeft: %w", err))
	}

	res, err := r.cats.ListCatsByArea(p.Context, catapp.ListCatsByAreaQuery{
		TopRight:   topRight,
		BottomLeft: bottomLeft,
	})
	return r.catListResult(p, res, err)
}

// Users resolves Query.users.
func (r *Resolver) Users(p graphql.ResolveParams) (any, error) {
	res, err := r.users.ListUsers(p.Context, userapp.ListUsersQuery{})
	if err != nil {
		return r.fail(p, err)
	}
	out := make([]*UserResponse, 0, len(res.Users))
	for _, u := range res.Users {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// UserByID resolves Query.userById.
func (r *Resolver) UserByID(p graphql.ResolveParams) (any, error) {
	res, err := r.users.GetUser(p.Context, userapp.GetUserQuery{UserID: stringArg(p, "id")})
	if err != nil {
		return r.fail(p, err)
	}
	return ToUserResponse(res.Value), nil
}

// CreateCat resolves Mutation.createCat.
func (r *Resolver) CreateCat(p graphql.ResolveParams) (any, error) {
	locType, coords, err := locationArg(p.Args["location"])
	if err != nil {
		return r.fail(p, fmt.Errorf("location: %w", err))
	}
	// NonNull in the schema, checked again so a schema change cannot pass zero values
	birthdate, ok := p.Args["birthdate"].(time.Time)
	if !ok {
		return r.fail(p, NewBadUserInput("birthdate is required"))
	}
	weight, ok := toFloat64(p.Args["weight"])
	if !ok {
		return r.fail(p, NewBadUserInput("weight is required"))
	}

	res, err := r.cats.CreateCat(p.Context, catapp.CreateCatCommand{
		Name:         stringArg(p, "cat_name"),
		Weight:       weight,
		Birthdate:    birthdate,
		OwnerID:      stringArg(p, "owner"),
		LocationType: locType,
		Coordinates:  coords,
		Filename:     stringArg(p, "filename"),
	})
	return r.catResult(p, res, err)
}

// UpdateCat resolves Mutation.updateCat. Omitted fields stay unchanged.
func (r *Resolver) UpdateCat(p graphql.ResolveParams) (any, error) {
	cmd := catapp.UpdateCatCommand{CatID: stringArg(p, "id")}
	if v, ok := p.Args["cat_name"].(string); ok {
		cmd.Name = &v
	}
	if v, ok := toFloat64(p.Args["weight"]); ok {
		cmd.Weight = &v
	}
	if v, ok := p.Args["birthdate"].(time.Time); ok {
		cmd.Birthdate = &v
	}

	res, err := r.cats.UpdateCat(p.Context, cmd)
	return r.catResult(p, res, err)
}

// DeleteCat resolves Mutation.deleteCat.
func (r *Resolver) DeleteCat(p graphql.ResolveParams) (any, error) {
	res, err := r.cats.DeleteCat(p.Context, catapp.DeleteCatCommand{CatID: stringArg(p, "id")})
	return r.catResult(p, res, err)
}

// CreateUser resolves Mutation.createUser.
func (r *Resolver) CreateUser(p graphql.ResolveParams) (any, error) {
	res, err := r.users.CreateUser(p.Context, userapp.CreateUserCommand{
		UserName: stringArg(p, "user_name"),
		Email:    stringArg(p, "email"),
	})
	return r.userResult(p, res, err)
}

// UpdateUser resolves Mutation.updateUser.
func (r *Resolver) UpdateUser(p graphql.ResolveParams) (any, error) {
	res, err := r.users.UpdateUser(p.Context, userapp.UpdateUserCommand{
		UserID:   stringArg(p, "id"),
		UserName: stringArg(p, "user_name"),
	})
	return r.userResult(p, res, err)
}

// DeleteUser resolves Mutation.deleteUser.
func (r *Resolver) DeleteUser(p graphql.ResolveParams) (any, error) {
	res, err := r.users.DeleteUser(p.Context, userapp.DeleteUserCommand{UserID: stringArg(p, "id")})
	return r.userResult(p, res, err)
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// coordinatesArg reads a Coordinates input object into a point. Ranges are checked by the use case.
func coordinatesArg(v any) (geo.Point, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: coordinates are required", errs.ErrInvalidInput)
	}
	lat, okLat := toFloat64(m["lat"])
	lng, okLng := toFloat64(m["lng"])
	if !okLat || !okLng {
		return geo.Point{}, fmt.Errorf("%w: lat and lng are required", errs.ErrInvalidInput)
	}
	return geo.Point{Lng: lng, Lat: lat}, nil
}

// locationArg reads a LocationInput object. Range checks are left to the use case.
func locationArg(v any) (string, []float64, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("%w: location is required", errs.ErrInvalidInput)
	}
	typ, _ := m["type"].(string)
	raw, _ := m["coordinates"].([]any)
	coords := make([]float64, 0, len(raw))
	for _, c := range raw {
		f, ok := toFloat64(c)
		if !ok {
			return "", nil, fmt.Errorf("%w: coordinates must be numbers", errs.ErrInvalidInput)
		}
		coords = append(coords, f)
	}
	return typ, coords, nil
}
