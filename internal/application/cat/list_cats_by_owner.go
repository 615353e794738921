package cat

import (
	"context"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// ListCatsByOwnerUseCase returns the cats of one owner
type ListCatsByOwnerUseCase struct {
	catRepo QueryRepository
	owners  OwnerResolver
}

// NewListCatsByOwnerUseCase creates a new ListCatsByOwnerUseCase
func NewListCatsByOwnerUseCase(catRepo QueryRepository, owners OwnerResolver) *ListCatsByOwnerUseCase {
	return &ListCatsByOwnerUseCase{catRepo: catRepo, owners: owners}
}

// Execute lists the owner's cats. No cats, or a malformed owner id, yields a message.
func (uc *ListCatsByOwnerUseCase) Execute(ctx context.Context, query ListCatsByOwnerQuery) (ListResult, error) {
	ownerID, err := objectid.Parse(query.OwnerID)
	if err != nil {
		return emptyListResult(MessageNoCatForOwner), nil
	}

	cats, err := uc.catRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list cats by owner: %w", err)
	}
	if len(cats) == 0 {
		return emptyListResult(MessageNoCatForOwner), nil
	}

	views, err := attachOwners(ctx, uc.owners, cats)
	if err != nil {
		return ListResult{}, err
	}
	return newListResult(views), nil
}
