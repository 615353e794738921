package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// UpdateUserUseCase renames a user
type UpdateUserUseCase struct {
	userRepo Repository
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase
func NewUpdateUserUseCase(userRepo Repository) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo}
}

// Execute renames the user and returns the updated record.
// An unknown or malformed id yields an empty result.
func (uc *UpdateUserUseCase) Execute(
	ctx context.Context,
	cmd UpdateUserCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	id, err := objectid.Parse(cmd.UserID)
	if err != nil {
		return emptyResult(MessageNotUpdated), nil
	}

	usr, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return emptyResult(MessageNotUpdated), nil
		}
		return Result{}, fmt.Errorf("failed to find user: %w", err)
	}

	if renameErr := usr.Rename(cmd.UserName); renameErr != nil {
		return Result{}, fmt.Errorf("validation failed: %w", renameErr)
	}

	if updateErr := uc.userRepo.Update(ctx, usr); updateErr != nil {
		if errors.Is(updateErr, errs.ErrNotFound) {
			return emptyResult(MessageNotUpdated), nil
		}
		return Result{}, fmt.Errorf("failed to update user: %w", updateErr)
	}

	return newResult(usr), nil
}

func (uc *UpdateUserUseCase) validate(cmd UpdateUserCommand) error {
	name := strings.TrimSpace(cmd.UserName)
	if err := appcore.ValidateRequired("user_name", name); err != nil {
		return err
	}
	return appcore.ValidateMaxLength("user_name", name, appcore.MaxNameLength)
}
