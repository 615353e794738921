package service

import (
	"context"

	catapp "github.com/lllypuk/catmap/internal/application/cat"
)

// CatService provides cat-related business operations.
type CatService struct {
	listCatsUC        *catapp.ListCatsUseCase
	getCatUC          *catapp.GetCatUseCase
	listCatsByOwnerUC *catapp.ListCatsByOwnerUseCase
	listCatsByAreaUC  *catapp.ListCatsByAreaUseCase
	createCatUC       *catapp.CreateCatUseCase
	updateCatUC       *catapp.UpdateCatUseCase
	deleteCatUC       *catapp.DeleteCatUseCase
}

// NewCatService wires every cat use case over the given repository and owner resolver.
func NewCatService(catRepo catapp.Repository, owners catapp.OwnerResolver) *CatService {
	return &CatService{
		listCatsUC:        catapp.NewListCatsUseCase(catRepo, owners),
		getCatUC:          catapp.NewGetCatUseCase(catRepo, owners),
		listCatsByOwnerUC: catapp.NewListCatsByOwnerUseCase(catRepo, owners),
		listCatsByAreaUC:  catapp.NewListCatsByAreaUseCase(catRepo, owners),
		createCatUC:       catapp.NewCreateCatUseCase(catRepo, owners),
		updateCatUC:       catapp.NewUpdateCatUseCase(catRepo, owners),
		deleteCatUC:       catapp.NewDeleteCatUseCase(catRepo, owners),
	}
}

// ListCats lists every cat.
func (s *CatService) ListCats(ctx context.Context, query catapp.ListCatsQuery) (catapp.ListResult, error) {
	return s.listCatsUC.Execute(ctx, query)
}

// GetCat gets a cat by ID.
func (s *CatService) GetCat(ctx context.Context, query catapp.GetCatQuery) (catapp.Result, error) {
	return s.getCatUC.Execute(ctx, query)
}

// ListCatsByOwner lists the cats of one owner.
func (s *CatService) ListCatsByOwner(
	ctx context.Context,
	query catapp.ListCatsByOwnerQuery,
) (catapp.ListResult, error) {
	return s.listCatsByOwnerUC.Execute(ctx, query)
}

// ListCatsByArea lists the cats inside a rectangle.
func (s *CatService) ListCatsByArea(
	ctx context.Context,
	query catapp.ListCatsByAreaQuery,
) (catapp.ListResult, error) {
	return s.listCatsByAreaUC.Execute(ctx, query)
}

// CreateCat creates a cat.
func (s *CatService) CreateCat(ctx context.Context, cmd catapp.CreateCatCommand) (catapp.Result, error) {
	return s.createCatUC.Execute(ctx, cmd)
}

// UpdateCat updates a cat.
func (s *CatService) UpdateCat(ctx context.Context, cmd catapp.UpdateCatCommand) (catapp.Result, error) {
	return s.updateCatUC.Execute(ctx, cmd)
}

// DeleteCat deletes a cat.
func (s *CatService) DeleteCat(ctx context.Context, cmd catapp.DeleteCatCommand) (catapp.Result, error) {
	return s.deleteCatUC.Execute(ctx, cmd)
}
