package cat

import (
	"context"
	"fmt"
)

// ListCatsUseCase returns every cat with its owner
type ListCatsUseCase struct {
	catRepo QueryRepository
	owners  OwnerResolver
}

// NewListCatsUseCase creates a new ListCatsUseCase
func NewListCatsUseCase(catRepo QueryRepository, owners OwnerResolver) *ListCatsUseCase {
	return &ListCatsUseCase{catRepo: catRepo, owners: owners}
}

// Execute lists cats. The list may be empty; it never carries a message.
func (uc *ListCatsUseCase) Execute(ctx context.Context, _ ListCatsQuery) (ListResult, error) {
	cats, err := uc.catRepo.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list cats: %w", err)
	}

	views, err := attachOwners(ctx, uc.owners, cats)
	if err != nil {
		return ListResult{}, err
	}
	return newListResult(views), nil
}
