// Package favorite keeps the wishlist of each shopper session.
package favorite

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

// Repository stores the favorite product ids of a session in the order they
// were added.
type Repository interface {
	Add(ctx context.Context, sessionID, productID string) ([]string, error)
	Remove(ctx context.Context, sessionID, productID string) ([]string, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	favorites map[string][]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{favorites: make(map[string][]string)}
}

func (r *InMemoryRepository) Add(_ context.Context, sessionID, productID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.favorites[sessionID]
	if slices.Contains(ids, productID) {
		return nil, ErrAlreadyFavorite
	}
	ids = append(ids, productID)
	r.favorites[sessionID] = ids
	return slices.Clone(ids), nil
}

func (r *InMemoryRepository) Remove(_ context.Context, sessionID, productID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.favorites[sessionID]
	i := slices.Index(ids, productID)
	if i < 0 {
		return nil, ErrNotFavorite
	}
	ids = slices.Delete(ids, i, i+1)
	r.favorites[sessionID] = ids
	return slices.Clone(ids), nil
}

func (r *InMemoryRepository) List(_ context.Context, sessionID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Clone(r.favorites[sessionID])
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
