package graphqlhandler_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/lllypuk/catmap/internal/application/user"
	graphqlhandler "github.com/lllypuk/catmap/internal/handler/graphql"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/memory"
	"github.com/lllypuk/catmap/internal/service"
)

func TestResolver_CreateCat_MissingScalars(t *testing.T) {
	users := memory.NewUserRepository()
	cats := memory.NewCatRepository()
	resolver := graphqlhandler.NewResolver(
		service.NewCatService(cats, userapp.NewOwnerResolver(users)),
		service.NewUserService(users),
		slog.New(slog.DiscardHandler),
	)

	base := func() map[string]any {
		return map[string]any{
			"cat_name":  "Tom",
			"owner":     "000000000000000000000000",
			"filename":  "tom.jpg",
			"weight":    4.2,
			"birthdate": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			"location":  map[string]any{"type": "Point", "coordinates": []any{24.9, 60.2}},
		}
	}

	for _, missing := range []string{"birthdate", "weight"} {
		t.Run(missing, func(t *testing.T) {
			args := base()
			delete(args, missing)

			res, err := resolver.CreateCat(graphql.ResolveParams{Context: context.Background(), Args: args})

			assert.Nil(t, res)
			var gqlErr *graphqlhandler.Error
			require.ErrorAs(t, err, &gqlErr)
			assert.Equal(t, graphqlhandler.CodeBadUserInput, gqlErr.Code)
			assert.Contains(t, gqlErr.Message, missing)

			count, countErr := cats.Count(context.Background())
			require.NoError(t, countErr)
			assert.Zero(t, count)
		})
	}
}
