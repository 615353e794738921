package user

import "github.com/lllypuk/catmap/internal/application/appcore"

var (
	_ appcore.Query   = GetUserQuery{}
	_ appcore.Query   = ListUsersQuery{}
	_ appcore.Command = CreateUserCommand{}
	_ appcore.Command = UpdateUserCommand{}
	_ appcore.Command = DeleteUserCommand{}

	_ appcore.UseCase[GetUserQuery, Result]            = (*GetUserUseCase)(nil)
	_ appcore.UseCase[ListUsersQuery, UsersListResult] = (*ListUsersUseCase)(nil)
	_ appcore.UseCase[CreateUserCommand, Result]       = (*CreateUserUseCase)(nil)
	_ appcore.UseCase[UpdateUserCommand, Result]       = (*UpdateUserUseCase)(nil)
	_ appcore.UseCase[DeleteUserCommand, Result]       = (*DeleteUserUseCase)(nil)
)
