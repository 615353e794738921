// Package memory holds map-backed repositories used in mock mode and in tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/objectid"
	"github.com/lllypuk/catmap/internal/domain/user"
)

// UserRepository keeps users in a map guarded by a RWMutex.
type UserRepository struct {
	mu    sync.RWMutex
	users map[objectid.ID]*user.User
}

// NewUserRepository creates an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[objectid.ID]*user.User)}
}

// Save inserts a user
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID()]; exists {
		return errs.ErrAlreadyExists
	}
	r.users[u.ID()] = cloneUser(u)
	return nil
}

// Update replaces an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID()]; !exists {
		return errs.ErrNotFound
	}
	r.users[u.ID()] = cloneUser(u)
	return nil
}

// Delete removes a user and returns it
func (r *UserRepository) Delete(ctx context.Context, id objectid.ID) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return nil, errs.ErrNotFound
	}
	delete(r.users, id)
	return u, nil
}

// FindByID returns a copy of the stored user
func (r *UserRepository) FindByID(ctx context.Context, id objectid.ID) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, errs.ErrNotFound
	}
	return cloneUser(u), nil
}

// FindByIDs returns the users that exist among ids
func (r *UserRepository) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, exists := r.users[id]; exists {
			found = append(found, cloneUser(u))
		}
	}
	return found, nil
}

// List returns every user in insertion order
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, cloneUser(u))
	}
	slices.SortFunc(list, func(a, b *user.User) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return list, nil
}

// Count returns the number of stored users
func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func cloneUser(u *user.User) *user.User {
	return user.Reconstruct(u.ID(), u.UserName(), u.Email(), u.CreatedAt(), u.UpdatedAt())
}
