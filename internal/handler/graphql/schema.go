package graphqlhandler

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the cat and user schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user_name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"type":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"coordinates": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Float)))},
		},
	})

	catType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Cat",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"cat_name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"weight":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"birthdate": &graphql.Field{Type: graphql.NewNonNull(DateScalar)},
			// null when the owner was deleted
			"owner": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, ok := p.Source.(*CatResponse)
					if !ok || c.Owner == nil {
						return nil, nil
					}
					return c.Owner, nil
				},
			},
			"location": &graphql.Field{Type: graphql.NewNonNull(locationType)},
			"filename": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	messageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	catListType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CatList",
		Fields: graphql.Fields{
			"cats": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(catType)))},
		},
	})

	catsResult := graphql.NewUnion(graphql.UnionConfig{
		Name:  "CatsResult",
		Types: []*graphql.Object{catListType, messageType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			if _, ok := p.Value.(*MessageResponse); ok {
				return messageType
			}
			return catListType
		},
	})

	catResult := graphql.NewUnion(graphql.UnionConfig{
		Name:  "CatResult",
		Types: []*graphql.Object{catType, messageType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			if _, ok := p.Value.(*MessageResponse); ok {
				return messageType
			}
			return catType
		},
	})

	userResult := graphql.NewUnion(graphql.UnionConfig{
		Name:  "UserResult",
		Types: []*graphql.Object{userType, messageType},
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			if _, ok := p.Value.(*MessageResponse); ok {
				return messageType
			}
			return userType
		},
	})

	locationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"coordinates": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Float)))},
		},
	})

	coordinatesInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "Coordinates",
		Fields: graphql.InputObjectConfigFieldMap{
			"lat": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"lng": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"cats": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(catType))),
				Resolve: r.Cats,
			},
			"catById": &graphql.Field{
				Type:    catType,
				Args:    idArgs,
				Resolve: r.CatByID,
			},
			"catsByOwner": &graphql.Field{
				Type: catsResult,
				Args: graphql.FieldConfigArgument{
					"ownerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.CatsByOwner,
			},
			"catsByArea": &graphql.Field{
				Type: catsResult,
				Args: graphql.FieldConfigArgument{
					"topRight":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(coordinatesInput)},
					"bottomLeft": &graphql.ArgumentConfig{Type: graphql.NewNonNull(coordinatesInput)},
				},
				Resolve: r.CatsByArea,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.Users,
			},
			"userById": &graphql.Field{
				Type:    userType,
				Args:    idArgs,
				Resolve: r.UserByID,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCat": &graphql.Field{
				Type: catResult,
				Args: graphql.FieldConfigArgument{
					"cat_name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"weight":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"owner":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"filename":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"birthdate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(DateScalar)},
					"location":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(locationInput)},
				},
				Resolve: r.CreateCat,
			},
			"updateCat": &graphql.Field{
				Type: catResult,
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"cat_name":  &graphql.ArgumentConfig{Type: graphql.String},
					"weight":    &graphql.ArgumentConfig{Type: graphql.Float},
					"birthdate": &graphql.ArgumentConfig{Type: DateScalar},
				},
				Resolve: r.UpdateCat,
			},
			"deleteCat": &graphql.Field{
				Type:    catResult,
				Args:    idArgs,
				Resolve: r.DeleteCat,
			},
			"createUser": &graphql.Field{
				Type: userResult,
				Args: graphql.FieldConfigArgument{
					"user_name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.CreateUser,
			},
			"updateUser": &graphql.Field{
				Type: userResult,
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"user_name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.UpdateUser,
			},
			"deleteUser": &graphql.Field{
				Type:    userResult,
				Args:    idArgs,
				Resolve: r.DeleteUser,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
