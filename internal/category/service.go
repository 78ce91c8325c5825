package category

import "github.com/wichananm65/skincare-storefront/internal/product"

// Catalog is the product source categories are derived from.
type Catalog interface {
	List() []product.Product
}

// Service derives the category showcase from the catalog.
type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List returns up to `limit` categories in catalog filter order. Each one
// carries its product count and the image of its first product; categories
// without products are skipped.
func (s *Service) List(limit int) []CategoryItem {
	counts := map[string]int{}
	images := map[string]string{}
	for _, p := range s.catalog.List() {
		if counts[p.Category] == 0 {
			images[p.Category] = p.Image
		}
		counts[p.Category]++
	}

	out := make([]CategoryItem, 0, len(product.Categories))
	for _, name := range product.Categories {
		if len(out) == limit {
			break
		}
		if counts[name] == 0 {
			continue
		}
		out = append(out, CategoryItem{CategoryName: name, CategoryImg: images[name], ProductCount: counts[name]})
	}
	return out
}
