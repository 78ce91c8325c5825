package product

import (
	"slices"
	"sync"
)

// Service answers catalog reads. The last query result is memoized since the
// catalog never changes while the process runs.
type Service struct {
	repo Repository

	mu       sync.Mutex
	lastKey  string
	lastView []Product
	hasLast  bool
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

// Query runs the catalog query engine over the whole catalog.
func (s *Service) Query(filters Filters, key SortKey) []Product {
	memoKey := filters.key() + "#" + string(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasLast || s.lastKey != memoKey {
		s.lastView = Query(s.repo.List(), filters, key)
		s.lastKey = memoKey
		s.hasLast = true
	}
	return slices.Clone(s.lastView)
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) BySlug(slug string) (Product, error) {
	return s.repo.GetBySlug(slug)
}

// BySlugs resolves slugs in order, skipping the ones not in the catalog.
func (s *Service) BySlugs(slugs []string) []Product {
	out := make([]Product, 0, len(slugs))
	for _, slug := range slugs {
		if p, err := s.repo.GetBySlug(slug); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit other products from p's category, in catalog
// order.
func (s *Service) Related(p Product, limit int) []Product {
	out := make([]Product, 0, limit)
	for _, other := range s.repo.List() {
		if len(out) >= limit {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out
}

// FilterOptions lists the values the catalog page offers as filters.
type FilterOptions struct {
	SkinTypes  []string  `json:"skinTypes"`
	Categories []string  `json:"categories"`
	Concerns   []string  `json:"concerns"`
	SortKeys   []SortKey `json:"sortKeys"`
}

func (s *Service) FilterOptions() FilterOptions {
	skin := slices.DeleteFunc(slices.Clone(SkinTypes), func(v string) bool { return v == "All" })
	return FilterOptions{
		SkinTypes:  skin,
		Categories: slices.Clone(Categories),
		Concerns:   slices.Clone(Concerns),
		SortKeys:   slices.Clone(sortKeys),
	}
}
