package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// DeleteUserUseCase removes a user. Owned cats are not cascaded and become orphans.
type DeleteUserUseCase struct {
	userRepo CommandRepository
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase
func NewDeleteUserUseCase(userRepo CommandRepository) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo}
}

// Execute deletes the user and returns the removed record
func (uc *DeleteUserUseCase) Execute(
	ctx context.Context,
	cmd DeleteUserCommand,
) (Result, error) {
	id, err := objectid.Parse(cmd.UserID)
	if err != nil {
		return emptyResult(MessageNotDeleted), nil
	}

	usr, err := uc.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return emptyResult(MessageNotDeleted), nil
		}
		return Result{}, fmt.Errorf("failed to delete user: %w", err)
	}

	return newResult(usr), nil
}
