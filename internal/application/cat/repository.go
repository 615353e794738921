package cat

import (
	"context"

	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// CommandRepository is the write side of the cats store.
// Declared here, next to its consumers.
type CommandRepository interface {
	// Save inserts a new cat. Returns errs.ErrNotAcknowledged if the store did not confirm the write.
	Save(ctx context.Context, c *cat.Cat) error

	// Update replaces an existing cat. Returns errs.ErrNotFound if it does not exist.
	Update(ctx context.Context, c *cat.Cat) error

	// Delete removes the cat and returns the deleted record.
	Delete(ctx context.Context, id objectid.ID) (*cat.Cat, error)
}

// QueryRepository is the read side of the cats store.
type QueryRepository interface {
	FindByID(ctx context.Context, id objectid.ID) (*cat.Cat, error)
	List(ctx context.Context) ([]*cat.Cat, error)
	ListByOwner(ctx context.Context, owner objectid.ID) ([]*cat.Cat, error)

	// ListWithinBox returns cats whose location lies inside box, edges included
	ListWithinBox(ctx context.Context, box geo.Box) ([]*cat.Cat, error)

	Count(ctx context.Context) (int64, error)
}

// Repository is the full store contract.
type Repository interface {
	CommandRepository
	QueryRepository
}

// OwnerResolver resolves cat owners. Implemented by the user application package.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, id objectid.ID) (*user.User, error)
	ResolveOwners(ctx context.Context, ids []objectid.ID) (map[objectid.ID]*user.User, error)
	LookupOwners(ctx context.Context, ids []objectid.ID) (map[objectid.ID]*user.User, error)
}
