package catalog

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 512

// Service resolves product records for the storefront. Lookups go
// through an LRU cache so repeated favorites/cart renders do not
// re-query the catalog; momentarily stale reads are acceptable.
type Service interface {
	ProductByID(ctx context.Context, id string) (*Product, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]*Product, error)
}

type service struct {
	repo  Repository
	cache *lru.Cache[string, *Product]
}

func NewService(repo Repository) (Service, error) {
	cache, err := lru.New[string, *Product](cacheSize)
	if err != nil {
		return nil, err
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) ProductByID(ctx context.Context, id string) (*Product, error) {
	if p, ok := s.cache.Get(id); ok {
		return p, nil
	}

	p, err := s.repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		s.cache.Add(id, p)
	}
	return p, nil
}

// ProductsByIDs preserves the order of the requested ids; unknown ids
// are skipped.
func (s *service) ProductsByIDs(ctx context.Context, ids []string) ([]*Product, error) {
	found := make(map[string]*Product, len(ids))
	var missing []string

	for _, id := range ids {
		if p, ok := s.cache.Get(id); ok {
			found[id] = p
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := s.repo.ProductsByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, p := range fetched {
			found[p.ID] = p
			s.cache.Add(p.ID, p)
		}
	}

	products := make([]*Product, 0, len(found))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}
