package user

import (
	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// Messages returned instead of a user when a write did not happen.
const (
	MessageNotAdded   = "User not added"
	MessageNotUpdated = "User not updated"
	MessageNotDeleted = "User not deleted"
)

// Result - result of an operation on a single user
type Result struct {
	appcore.Result[*user.User]
}

// UsersListResult - result of listing users
type UsersListResult struct {
	Users []*user.User
}

func newResult(u *user.User) Result {
	return Result{Result: appcore.NewResult(u)}
}

func emptyResult(message string) Result {
	return Result{Result: appcore.EmptyResult[*user.User](message)}
}
