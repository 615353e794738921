package cat

import (
	"github.com/lllypuk/catmap/internal/application/appcore"
	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// Messages returned instead of cats when there is nothing to return.
const (
	MessageNoCatForOwner = "No cat belongs to this owner"
	MessageNoCatInArea   = "No cat found in this area"
	MessageNotAdded      = "Cat not added"
	MessageNotUpdated    = "Cat not updated"
	MessageNotDeleted    = "Cat not deleted"
)

// View is a cat together with its resolved owner.
// Owner is nil only for a deleted orphan.
type View struct {
	Cat   *cat.Cat
	Owner *user.User
}

// Result - result of an operation on a single cat
type Result struct {
	appcore.Result[View]
}

// ListResult - result of an operation on several cats
type ListResult struct {
	appcore.ListResult[View]
}

func newResult(v View) Result {
	return Result{Result: appcore.NewResult(v)}
}

func emptyResult(message string) Result {
	return Result{Result: appcore.EmptyResult[View](message)}
}

func newListResult(views []View) ListResult {
	return ListResult{ListResult: appcore.NewListResult(views)}
}

func emptyListResult(message string) ListResult {
	return ListResult{ListResult: appcore.EmptyListResult[View](message)}
}
