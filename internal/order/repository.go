package order

import (
	"context"
	"slices"
	"sync"
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, ord Order) error
	GetByNumber(ctx context.Context, number string) (Order, error)
	// ListBySession returns the orders of one session, oldest first.
	ListBySession(ctx context.Context, sessionID string) ([]Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, ord Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.Items = slices.Clone(ord.Items)
	r.orders = append(r.orders, ord)
	return nil
}

func (r *InMemoryRepository) GetByNumber(_ context.Context, number string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.Number == number {
			o.Items = slices.Clone(o.Items)
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListBySession(_ context.Context, sessionID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.SessionID == sessionID {
			o.Items = slices.Clone(o.Items)
			out = append(out, o)
		}
	}
	return out, nil
}
