package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

func TestOwnerResolver_ResolveOwner(t *testing.T) {
	repo := newMockUserRepository()
	alice := seedUser(repo, "alice", "alice@example.com")
	resolver := user.NewOwnerResolver(repo)

	owner, err := resolver.ResolveOwner(context.Background(), alice.ID())
	require.NoError(t, err)
	assert.Equal(t, "alice", owner.UserName())

	_, err = resolver.ResolveOwner(context.Background(), objectid.New())
	require.ErrorIs(t, err, user.ErrOwnerNotFound)
}

func TestOwnerResolver_ResolveOwners_SingleLookup(t *testing.T) {
	repo := newMockUserRepository()
	alice := seedUser(repo, "alice", "alice@example.com")
	bob := seedUser(repo, "bob", "bob@example.com")
	resolver := user.NewOwnerResolver(repo)

	owners, err := resolver.ResolveOwners(context.Background(),
		[]objectid.ID{alice.ID(), bob.ID(), alice.ID()})

	require.NoError(t, err)
	assert.Len(t, owners, 2)
	assert.Equal(t, "bob", owners[bob.ID()].UserName())
	assert.Equal(t, 1, repo.findByIDsCall)
}

func TestOwnerResolver_ResolveOwners_Missing(t *testing.T) {
	repo := newMockUserRepository()
	alice := seedUser(repo, "alice", "alice@example.com")
	resolver := user.NewOwnerResolver(repo)

	_, err := resolver.ResolveOwners(context.Background(), []objectid.ID{alice.ID(), objectid.New()})

	require.ErrorIs(t, err, user.ErrOwnerNotFound)
}

func TestOwnerResolver_LookupOwners_BestEffort(t *testing.T) {
	repo := newMockUserRepository()
	alice := seedUser(repo, "alice", "alice@example.com")
	resolver := user.NewOwnerResolver(repo)
	ghost := objectid.New()

	owners, err := resolver.LookupOwners(context.Background(), []objectid.ID{alice.ID(), ghost})

	require.NoError(t, err)
	assert.Contains(t, owners, alice.ID())
	assert.NotContains(t, owners, ghost)
}

func TestOwnerResolver_LookupOwners_Empty(t *testing.T) {
	repo := newMockUserRepository()
	resolver := user.NewOwnerResolver(repo)

	owners, err := resolver.LookupOwners(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, owners)
	assert.Zero(t, repo.findByIDsCall)
}
