package cat

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// DeleteCatUseCase removes a cat
type DeleteCatUseCase struct {
	catRepo CommandRepository
	owners  OwnerResolver
}

// NewDeleteCatUseCase creates a new DeleteCatUseCase
func NewDeleteCatUseCase(catRepo CommandRepository, owners OwnerResolver) *DeleteCatUseCase {
	return &DeleteCatUseCase{catRepo: catRepo, owners: owners}
}

// Execute deletes the cat and returns it. Orphans are deleted too, with a nil owner.
func (uc *DeleteCatUseCase) Execute(ctx context.Context, cmd DeleteCatCommand) (Result, error) {
	id, err := objectid.Parse(cmd.CatID)
	if err != nil {
		return emptyResult(MessageNotDeleted), nil
	}

	c, err := uc.catRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return emptyResult(MessageNotDeleted), nil
		}
		return Result{}, fmt.Errorf("failed to delete cat: %w", err)
	}

	owners, err := uc.owners.LookupOwners(ctx, []objectid.ID{c.Owner()})
	if err != nil {
		return Result{}, err
	}
	return newResult(View{Cat: c, Owner: owners[c.Owner()]}), nil
}
