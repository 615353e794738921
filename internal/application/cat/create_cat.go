package cat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lllypuk/catmap/internal/application/appcore"
	userapp "github.com/lllypuk/catmap/internal/application/user"
	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// CreateCatUseCase handles creation of a new cat
type CreateCatUseCase struct {
	catRepo CommandRepository
	owners  OwnerResolver
}

// NewCreateCatUseCase creates a new CreateCatUseCase
func NewCreateCatUseCase(catRepo CommandRepository, owners OwnerResolver) *CreateCatUseCase {
	return &CreateCatUseCase{catRepo: catRepo, owners: owners}
}

// Execute validates the input, checks the owner exists and stores the cat
func (uc *CreateCatUseCase) Execute(ctx context.Context, cmd CreateCatCommand) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	location, err := geo.FromGeoJSON(cmd.LocationType, cmd.Coordinates)
	if err != nil {
		return Result{}, fmt.Errorf("validation failed: %w",
			appcore.NewValidationError("location", err.Error()))
	}

	ownerID := objectid.ID(cmd.OwnerID)
	owner, err := uc.owners.ResolveOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, userapp.ErrOwnerNotFound) {
			return Result{}, fmt.Errorf("validation failed: %w",
				appcore.NewValidationError("owner", "user does not exist"))
		}
		return Result{}, err
	}

	c, err := cat.NewCat(cmd.Name, cmd.Weight, cmd.Birthdate, ownerID, location, cmd.Filename)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create cat: %w", err)
	}

	if saveErr := uc.catRepo.Save(ctx, c); saveErr != nil {
		if errors.Is(saveErr, errs.ErrNotAcknowledged) {
			return emptyResult(MessageNotAdded), nil
		}
		return Result{}, fmt.Errorf("failed to save cat: %w", saveErr)
	}

	return newResult(View{Cat: c, Owner: owner}), nil
}

func (uc *CreateCatUseCase) validate(cmd CreateCatCommand) error {
	name := strings.TrimSpace(cmd.Name)
	if err := appcore.ValidateRequired("cat_name", name); err != nil {
		return err
	}
	if err := appcore.ValidateMaxLength("cat_name", name, appcore.MaxNameLength); err != nil {
		return err
	}
	if err := appcore.ValidatePositiveFloat("weight", cmd.Weight); err != nil {
		return err
	}
	if err := appcore.ValidateDateNotFuture("birthdate", cmd.Birthdate); err != nil {
		return err
	}
	if err := appcore.ValidateObjectID("owner", cmd.OwnerID); err != nil {
		return err
	}
	return appcore.ValidateRequired("filename", strings.TrimSpace(cmd.Filename))
}
