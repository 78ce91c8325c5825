package recommended

import "github.com/wichananm65/skincare-storefront/internal/product"

// DefaultFeatured is how many catalog entries the home page features.
const DefaultFeatured = 8

// Catalog is the slice of the product service the featured list needs.
type Catalog interface {
	List() []product.Product
}

// Service provides business logic for featured items: the first
// DefaultFeatured products in catalog order.
type Service struct {
	catalog Catalog
	size    int
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog, size: DefaultFeatured}
}

// List returns up to limit featured items starting at offset.
func (s *Service) List(limit int, offset int) Page {
	all := s.catalog.List()
	if len(all) > s.size {
		all = all[:s.size]
	}

	page := Page{Items: []RecommendedItem{}, Total: len(all), Limit: limit, Offset: offset}
	if offset < 0 || limit <= 0 || offset >= len(all) {
		return page
	}
	end := offset + min(limit, len(all)-offset)
	for _, p := range all[offset:end] {
		page.Items = append(page.Items, toItem(p))
	}
	return page
}

func toItem(p product.Product) RecommendedItem {
	return RecommendedItem{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Category:      p.Category,
		Image:         p.Image,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		IsNew:         p.IsNew,
		OnSale:        p.OnSale,
	}
}
