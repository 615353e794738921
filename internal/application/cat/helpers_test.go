package cat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	catapp "github.com/lllypuk/catmap/internal/application/cat"
	userapp "github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/user"
	"github.com/lllypuk/catmap/internal/infrastructure/repository/memory"
)

var birthdate = time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC)

type fixture struct {
	cats   *memory.CatRepository
	users  *memory.UserRepository
	owners *userapp.OwnerResolver
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	return &fixture{
		cats:   memory.NewCatRepository(),
		users:  users,
		owners: userapp.NewOwnerResolver(users),
	}
}

func (f *fixture) addUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(name, name+"@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

func (f *fixture) createCat(t *testing.T, name string, owner *user.User, lng, lat float64) *cat.Cat {
	t.Helper()
	result, err := catapp.NewCreateCatUseCase(f.cats, f.owners).Execute(context.Background(), catapp.CreateCatCommand{
		Name:         name,
		Weight:       4,
		Birthdate:    birthdate,
		OwnerID:      owner.ID().String(),
		LocationType: "Point",
		Coordinates:  []float64{lng, lat},
		Filename:     name + ".jpg",
	})
	require.NoError(t, err)
	require.False(t, result.IsEmpty())
	return result.Value.Cat
}

// unacknowledgedCats drops every insert as if the write concern was unacknowledged.
type unacknowledgedCats struct {
	*memory.CatRepository
}

func (u unacknowledgedCats) Save(context.Context, *cat.Cat) error {
	return errNotAcknowledged
}
