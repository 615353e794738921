// Package service provides business logic services that orchestrate use cases.
package service

import (
	"context"

	userapp "github.com/lllypuk/catmap/internal/application/user"
)

// UserService provides user-related business operations.
type UserService struct {
	createUserUC *userapp.CreateUserUseCase
	getUserUC    *userapp.GetUserUseCase
	listUsersUC  *userapp.ListUsersUseCase
	updateUserUC *userapp.UpdateUserUseCase
	deleteUserUC *userapp.DeleteUserUseCase
}

// NewUserService wires every user use case over the given repository.
func NewUserService(userRepo userapp.Repository) *UserService {
	return &UserService{
		createUserUC: userapp.NewCreateUserUseCase(userRepo),
		getUserUC:    userapp.NewGetUserUseCase(userRepo),
		listUsersUC:  userapp.NewListUsersUseCase(userRepo),
		updateUserUC: userapp.NewUpdateUserUseCase(userRepo),
		deleteUserUC: userapp.NewDeleteUserUseCase(userRepo),
	}
}

// CreateUser creates a user.
func (s *UserService) CreateUser(ctx context.Context, cmd userapp.CreateUserCommand) (userapp.Result, error) {
	return s.createUserUC.Execute(ctx, cmd)
}

// GetUser gets a user by ID.
func (s *UserService) GetUser(ctx context.Context, query userapp.GetUserQuery) (userapp.Result, error) {
	return s.getUserUC.Execute(ctx, query)
}

// ListUsers lists all users.
func (s *UserService) ListUsers(ctx context.Context, query userapp.ListUsersQuery) (userapp.UsersListResult, error) {
	return s.listUsersUC.Execute(ctx, query)
}

// UpdateUser renames a user.
func (s *UserService) UpdateUser(ctx context.Context, cmd userapp.UpdateUserCommand) (userapp.Result, error) {
	return s.updateUserUC.Execute(ctx, cmd)
}

// DeleteUser deletes a user.
func (s *UserService) DeleteUser(ctx context.Context, cmd userapp.DeleteUserCommand) (userapp.Result, error) {
	return s.deleteUserUC.Execute(ctx, cmd)
}
