package user

import (
	"context"

	"github.com/lllypuk/catmap/internal/domain/objectid"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// CommandRepository is the write side of the users store.
// Declared here, next to its consumers.
type CommandRepository interface {
	// Save inserts a new user. Returns errs.ErrNotAcknowledged if the store did not confirm the write.
	Save(ctx context.Context, u *user.User) error

	// Update replaces an existing user. Returns errs.ErrNotFound if it does not exist.
	Update(ctx context.Context, u *user.User) error

	// Delete removes the user and returns the deleted record.
	Delete(ctx context.Context, id objectid.ID) (*user.User, error)
}

// QueryRepository is the read side of the users store.
type QueryRepository interface {
	// FindByID finds a user by ID, errs.ErrNotFound when absent
	FindByID(ctx context.Context, id objectid.ID) (*user.User, error)

	// FindByIDs returns the users that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []objectid.ID) ([]*user.User, error)

	// List returns all users
	List(ctx context.Context) ([]*user.User, error)

	Count(ctx context.Context) (int64, error)
}

// Repository is the full store contract.
type Repository interface {
	CommandRepository
	QueryRepository
}
