package cat

import "github.com/lllypuk/catmap/internal/application/appcore"

var (
	_ appcore.Query = ListCatsQuery{}
	_ appcore.Query = GetCatQuery{}
	_ appcore.Query = ListCatsByOwnerQuery{}
	_ appcore.Query = ListCatsByAreaQuery{}

	_ appcore.Command = CreateCatCommand{}
	_ appcore.Command = UpdateCatCommand{}
	_ appcore.Command = DeleteCatCommand{}

	_ appcore.UseCase[ListCatsQuery, ListResult]        = (*ListCatsUseCase)(nil)
	_ appcore.UseCase[GetCatQuery, Result]              = (*GetCatUseCase)(nil)
	_ appcore.UseCase[ListCatsByOwnerQuery, ListResult] = (*ListCatsByOwnerUseCase)(nil)
	_ appcore.UseCase[ListCatsByAreaQuery, ListResult]  = (*ListCatsByAreaUseCase)(nil)
	_ appcore.UseCase[CreateCatCommand, Result]         = (*CreateCatUseCase)(nil)
	_ appcore.UseCase[UpdateCatCommand, Result]         = (*UpdateCatUseCase)(nil)
	_ appcore.UseCase[DeleteCatCommand, Result]         = (*DeleteCatUseCase)(nil)
)
