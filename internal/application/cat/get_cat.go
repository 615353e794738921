package cat

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// GetCatUseCase handles retrieval of a cat by ID
type GetCatUseCase struct {
	catRepo QueryRepository
	owners  OwnerResolver
}

// NewGetCatUseCase creates a new GetCatUseCase
func NewGetCatUseCase(catRepo QueryRepository, owners OwnerResolver) *GetCatUseCase {
	return &GetCatUseCase{catRepo: catRepo, owners: owners}
}

// Execute looks the cat up and resolves its owner
func (uc *GetCatUseCase) Execute(ctx context.Context, query GetCatQuery) (Result, error) {
	id, err := objectid.Parse(query.CatID)
	if err != nil {
		return Result{}, ErrCatNotFound
	}

	c, err := uc.catRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Result{}, ErrCatNotFound
		}
		return Result{}, fmt.Errorf("failed to find cat: %w", err)
	}

	view, err := attachOwner(ctx, uc.owners, c)
	if err != nil {
		return Result{}, err
	}
	return newResult(view), nil
}
