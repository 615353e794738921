package cat

import (
	"context"
	"fmt"

	"github.com/lllypuk/catmap/internal/domain/cat"
	"github.com/lllypuk/catmap/internal/domain/objectid"
)

// attachOwners resolves every owner in one batch. A missing owner fails the whole list.
func attachOwners(ctx context.Context, owners OwnerResolver, cats []*cat.Cat) ([]View, error) {
	ids := make([]objectid.ID, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.Owner())
	}

	resolved, err := owners.ResolveOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(cats))
	for _, c := range cats {
		views = append(views, View{Cat: c, Owner: resolved[c.Owner()]})
	}
	return views, nil
}

// attachOwner resolves the owner of a single cat
func attachOwner(ctx context.Context, owners OwnerResolver, c *cat.Cat) (View, error) {
	owner, err := owners.ResolveOwner(ctx, c.Owner())
	if err != nil {
		return View{}, fmt.Errorf("cat %s: %w", c.ID(), err)
	}
	return View{Cat: c, Owner: owner}, nil
}
