package user

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// OwnerResolver turns owner ids stored on cats into users.
type OwnerResolver struct {
	userRepo QueryRepository
}

// NewOwnerResolver creates a new OwnerResolver
func NewOwnerResolver(userRepo QueryRepository) *OwnerResolver {
	return &OwnerResolver{userRepo: userRepo}
}

// ResolveOwner returns the owner or ErrOwnerNotFound.
func (r *OwnerResolver) ResolveOwner(ctx context.Context, id objectid.ID) (*user.User, error) {
	usr, err := r.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, id)
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	return usr, nil
}

// ResolveOwners resolves a batch of owner ids with a single lookup.
// Fails with ErrOwnerNotFound naming the first missing id.
func (r *OwnerResolver) ResolveOwners(ctx context.Context, ids []objectid.ID) (map[objectid.ID]*user.User, error) {
	owners, err := r.LookupOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := owners[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, id)
		}
	}
	return owners, nil
}

// LookupOwners is the best-effort variant of ResolveOwners: missing owners are simply absent from the map.
func (r *OwnerResolver) LookupOwners(ctx context.Context, ids []objectid.ID) (map[objectid.ID]*user.User, error) {
	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	owners := make(map[objectid.ID]*user.User, len(unique))
	if len(unique) == 0 {
		return owners, nil
	}

	users, err := r.userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owners: %w", err)
	}
	for _, u := range users {
		owners[u.ID()] = u
	}
	return owners, nil
}
