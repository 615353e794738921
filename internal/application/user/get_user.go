package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// GetUserUseCase handles retrieval of a user by ID
type GetUserUseCase struct {
	userRepo QueryRepository
}

// NewGetUserUseCase creates New GetUserUseCase
func NewGetUserUseCase(userRepo QueryRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute looks the user up. Malformed ids are reported as not found.
func (uc *GetUserUseCase) Execute(
	ctx context.Context,
	query GetUserQuery,
) (Result, error) {
	id, err := objectid.Parse(query.UserID)
	if err != nil {
		return Result{}, ErrUserNotFound
	}

	usr, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Result{}, ErrUserNotFound
		}
		return Result{}, fmt.Errorf("failed to find user: %w", err)
	}

	return newResult(usr), nil
}
