package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

func TestDeleteUserUseCase_Execute_ReturnsDeletedRecord(t *testing.T) {
	repo := newMockUserRepository()
	existing := seedUser(repo, "alice", "alice@example.com")
	useCase := user.NewDeleteUserUseCase(repo)

	result, err := useCase.Execute(context.Background(), user.DeleteUserCommand{UserID: existing.ID().String()})

	require.NoError(t, err)
	require.False(t, result.IsEmpty())
	assert.Equal(t, existing.ID(), result.Value.ID())

	_, err = repo.FindByID(context.Background(), existing.ID())
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDeleteUserUseCase_Execute_NotFound(t *testing.T) {
	useCase := user.NewDeleteUserUseCase(newMockUserRepository())

	for _, id := range []string{objectid.New().String(), "123"} {
		result, err := useCase.Execute(context.Background(), user.DeleteUserCommand{UserID: id})

		require.NoError(t, err)
		assert.Equal(t, user.MessageNotDeleted, result.Message)
	}
}
