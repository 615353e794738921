package cat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// UpdateCatUseCase applies a partial update to a cat
type UpdateCatUseCase struct {
	catRepo Repository
	owners  OwnerResolver
}

// NewUpdateCatUseCase creates a new UpdateCatUseCase
func NewUpdateCatUseCase(catRepo Repository, owners OwnerResolver) *UpdateCatUseCase {
	return &UpdateCatUseCase{catRepo: catRepo, owners: owners}
}

// Execute updates the cat and returns it with its owner.
// An unknown or malformed id yields an empty result.
func (uc *UpdateCatUseCase) Execute(ctx context.Context, cmd UpdateCatCommand) (Result, error) {
	if err := uc.validate(cmd); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	id, err := objectid.Parse(cmd.CatID)
	if err != nil {
		return emptyResult(MessageNotUpdated), nil
	}

	c, err := uc.catRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return emptyResult(MessageNotUpdated), nil
		}
		return Result{}, fmt.Errorf("failed to find cat: %w", err)
	}

	// orphans are rejected before anything is written
	view, err := attachOwner(ctx, uc.owners, c)
	if err != nil {
		return Result{}, err
	}

	changes := cat.Changes{Name: cmd.Name, Weight: cmd.Weight, Birthdate: cmd.Birthdate}
	if applyErr := c.Apply(changes); applyErr != nil {
		return Result{}, fmt.Errorf("validation failed: %w", applyErr)
	}

	if updateErr := uc.catRepo.Update(ctx, c); updateErr != nil {
		if errors.Is(updateErr, errs.ErrNotFound) {
			return emptyResult(MessageNotUpdated), nil
		}
		return Result{}, fmt.Errorf("failed to update cat: %w", updateErr)
	}

	return newResult(view), nil
}

func (uc *UpdateCatUseCase) validate(cmd UpdateCatCommand) error {
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if err := appcore.ValidateRequired("cat_name", name); err != nil {
			return err
		}
		if err := appcore.ValidateMaxLength("cat_name", name, appcore.MaxNameLength); err != nil {
			return err
		}
	}
	if cmd.Weight != nil {
		if err := appcore.ValidatePositiveFloat("weight", *cmd.Weight); err != nil {
			return err
		}
	}
	if cmd.Birthdate != nil {
		if err := appcore.ValidateDateNotFuture("birthdate", *cmd.Birthdate); err != nil {
			return err
		}
	}
	return nil
}
