package product

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the ordering of a catalog query.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortNewest     SortKey = "newest"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
)

var sortKeys = []SortKey{SortPopularity, SortNewest, SortPriceLow, SortPriceHigh, SortRating}

// ParseSortKey maps a request value to a SortKey. Unknown or empty values
// fall back to popularity, ok reports whether the value was recognised.
func ParseSortKey(s string) (key SortKey, ok bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortKeys, k) {
		return k, true
	}
	return SortPopularity, false
}

// Filters narrows a catalog query. Within a group any match passes, every
// group must pass. An empty group passes everything.
type Filters struct {
	SkinTypes  []string `json:"skinTypes,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Concerns   []string `json:"concerns,omitempty"`
}

// key is a canonical form of f, used to memoize query results.
func (f Filters) key() string {
	norm := func(v []string) string {
		s := slices.Clone(v)
		slices.Sort(s)
		return strings.Join(slices.Compact(s), ",")
	}
	return norm(f.SkinTypes) + "|" + norm(f.Categories) + "|" + norm(f.Concerns)
}

func (f Filters) match(p Product) bool {
	if len(f.SkinTypes) > 0 && !intersects(f.SkinTypes, p.SkinTypes) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Concerns) > 0 && !intersects(f.Concerns, p.Concerns) {
		return false
	}
	return true
}

func intersects(want, have []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

// Query returns the products passing filters, ordered by key. The input is
// never modified; ties keep their input order.
func Query(products []Product, filters Filters, key SortKey) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if filters.match(p) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key SortKey) func(a, b Product) int {
	switch key {
	case SortPriceLow:
		return func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceHigh:
		return func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case SortNewest:
		return func(a, b Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortRating:
		return func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b Product) int { return cmp.Compare(b.Reviews, a.Reviews) }
	}
}
