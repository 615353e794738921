package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// CreateUserUseCase handles creation of a new user
type CreateUserUseCase struct {
	userRepo Repository
}

// NewCreateUserUseCase creates a new CreateUserUseCase
func NewCreateUserUseCase(userRepo Repository) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo}
}

// Execute creates the user. An unacknowledged write yields an empty result, not an error.
func (uc *CreateUserUseCase) Execute(
	ctx context.Context,
	cmd CreateUserCommand,
) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := user.NewUser(cmd.UserName, cmd.Email)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create user: %w", err)
	}

	if saveErr := uc.userRepo.Save(ctx, usr); saveErr != nil {
		if errors.Is(saveErr, errs.ErrNotAcknowledged) {
			return emptyResult(MessageNotAdded), nil
		}
		return Result{}, fmt.Errorf("failed to save user: %w", saveErr)
	}

	return newResult(usr), nil
}

func (uc *CreateUserUseCase) validate(cmd CreateUserCommand) error {
	name := strings.TrimSpace(cmd.UserName)
	if err := appcore.ValidateRequired("user_name", name); err != nil {
		return err
	}
	if err := appcore.ValidateMaxLength("user_name", name, appcore.MaxNameLength); err != nil {
		return err
	}
	return appcore.ValidateEmail("email", strings.TrimSpace(cmd.Email))
}
