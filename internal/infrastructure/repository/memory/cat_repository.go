package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/errs"
	"github.com/lllypuk/catmap/internal/domain/geo"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// CatRepository keeps cats in a map guarded by a RWMutex.
type CatRepository struct {
	mu   sync.RWMutex
	cats map[objectid.ID]*cat.Cat
}

// NewCatRepository creates an empty repository
func NewCatRepository() *CatRepository {
	return &CatRepository{cats: make(map[objectid.ID]*cat.Cat)}
}

// Save inserts a cat
func (r *CatRepository) Save(ctx context.Context, c *cat.Cat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cats[c.ID()]; exists {
		return errs.ErrAlreadyExists
	}
	r.cats[c.ID()] = cloneCat(c)
	return nil
}

// Update replaces an existing cat
func (r *CatRepository) Update(ctx context.Context, c *cat.Cat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cats[c.ID()]; !exists {
		return errs.ErrNotFound
	}
	r.cats[c.ID()] = cloneCat(c)
	return nil
}

// Delete removes a cat and returns it
func (r *CatRepository) Delete(ctx context.Context, id objectid.ID) (*cat.Cat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.cats[id]
	if !exists {
		return nil, errs.ErrNotFound
	}
	delete(r.cats, id)
	return c, nil
}

// FindByID returns a copy of the stored cat
func (r *CatRepository) FindByID(ctx context.Context, id objectid.ID) (*cat.Cat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cats[id]
	if !exists {
		return nil, errs.ErrNotFound
	}
	return cloneCat(c), nil
}

// List returns every cat
func (r *CatRepository) List(ctx context.Context) ([]*cat.Cat, error) {
	return r.filter(ctx, func(*cat.Cat) bool { return true })
}

// ListByOwner returns the cats of one owner
func (r *CatRepository) ListByOwner(ctx context.Context, owner objectid.ID) ([]*cat.Cat, error) {
	return r.filter(ctx, func(c *cat.Cat) bool { return c.Owner() == owner })
}

// ListWithinBox returns the cats inside box, edges included
func (r *CatRepository) ListWithinBox(ctx context.Context, box geo.Box) ([]*cat.Cat, error) {
	return r.filter(ctx, func(c *cat.Cat) bool { return box.Contains(c.Location()) })
}

// Count returns the number of stored cats
func (r *CatRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.cats)), nil
}

// filter returns matching cats ordered by id, which follows insertion order for ObjectIDs.
func (r *CatRepository) filter(ctx context.Context, match func(*cat.Cat) bool) ([]*cat.Cat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*cat.Cat, 0)
	for _, c := range r.cats {
		if match(c) {
			result = append(result, cloneCat(c))
		}
	}
	slices.SortFunc(result, func(a, b *cat.Cat) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return result, nil
}

func cloneCat(c *cat.Cat) *cat.Cat {
	return cat.Reconstruct(
		c.ID(), c.Name(), c.Weight(), c.Birthdate(), c.Owner(),
		c.Location(), c.Filename(), c.CreatedAt(), c.UpdatedAt(),
	)
}
