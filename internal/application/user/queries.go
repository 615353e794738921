package user

// GetUserQuery - retrieval of a user by ID
type GetUserQuery struct {
	UserID string
}

func (q GetUserQuery) QueryName() string { return "GetUser" }

// ListUsersQuery - every user
type ListUsersQuery struct{}

func (q ListUsersQuery) QueryName() string { return "ListUsers" }
