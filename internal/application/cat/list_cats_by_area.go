package cat

import (
	"context"
	"fmt"

	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/geo"
)

// ListCatsByAreaUseCase returns cats located inside a rectangle
type ListCatsByAreaUseCase struct {
	catRepo QueryRepository
	owners  OwnerResolver
}

// NewListCatsByAreaUseCase creates a new ListCatsByAreaUseCase
func NewListCatsByAreaUseCase(catRepo QueryRepository, owners OwnerResolver) *ListCatsByAreaUseCase {
	return &ListCatsByAreaUseCase{catRepo: catRepo, owners: owners}
}

// Execute lists cats inside the box spanned by the two corners
func (uc *ListCatsByAreaUseCase) Execute(ctx context.Context, query ListCatsByAreaQuery) (ListResult, error) {
	box, err := geo.NewBox(query.BottomLeft, query.TopRight)
	if err != nil {
		return ListResult{}, fmt.Errorf("validation failed: %w",
			appcore.NewValidationError("area", err.Error()))
	}

	cats, err := uc.catRepo.ListWithinBox(ctx, box)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list cats in area: %w", err)
	}
	if len(cats) == 0 {
		return emptyListResult(MessageNoCatInArea), nil
	}

	views, err := attachOwners(ctx, uc.owners, cats)
	if err != nil {
		return ListResult{}, err
	}
	return newListResult(views), nil
}
