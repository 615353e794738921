package user

import (
	"context"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/user"
)

// ListUsersUseCase returns every user
type ListUsersUseCase struct {
	userRepo QueryRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase
func NewListUsersUseCase(userRepo QueryRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists users
func (uc *ListUsersUseCase) Execute(
	ctx context.Context,
	_ ListUsersQuery,
) (UsersListResult, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return UsersListResult{}, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*user.User{}
	}

	return UsersListResult{Users: users}, nil
}
