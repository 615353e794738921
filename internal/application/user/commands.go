package user

// CreateUserCommand - creation of a user
type CreateUserCommand struct {
	UserName string
	Email    string
}

func (c CreateUserCommand) CommandName() string { return "CreateUser" }

// UpdateUserCommand - rename of a user, email is preserved
type UpdateUserCommand struct {
	UserID   string
	UserName string
}

func (c UpdateUserCommand) CommandName() string { return "UpdateUser" }

// DeleteUserCommand - removal of a user. Cats owned by the user are left in place.
type DeleteUserCommand struct {
	UserID string
}

func (c DeleteUserCommand) CommandName() string { return "DeleteUser" }
