package product

import "errors"

var (
	ErrNotFound = errors.New("product not found")
)

// Repository is the read-only catalog the service queries. The catalog is
// loaded once at startup and never mutated afterwards.
type Repository interface {
	List() []Product
	GetByID(id string) (Product, error)
	GetBySlug(slug string) (Product, error)
}

// InMemoryRepository holds the catalog in process memory, indexed by id and
// slug. It is safe for concurrent readers since nothing writes after
// construction.
type InMemoryRepository struct {
	storage []Product
	byID    map[string]int
	bySlug  map[string]int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		byID:    make(map[string]int, len(seed)),
		bySlug:  make(map[string]int, len(seed)),
	}
	for _, p := range seed {
		r.byID[p.ID] = len(r.storage)
		r.bySlug[p.Slug] = len(r.storage)
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) List() []Product {
	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	if i, ok := r.byID[id]; ok {
		return r.storage[i], nil
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetBySlug(slug string) (Product, error) {
	if i, ok := r.bySlug[slug]; ok {
		return r.storage[i], nil
	}
	return Product{}, ErrNotFound
}
