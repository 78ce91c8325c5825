package favorite

import (
	"context"
	"errors"

	"github.com/wichananm65/skincare-storefront/internal/product"
)

// Catalog resolves favorite ids to products.
type Catalog interface {
	GetByID(id string) (product.Product, error)
}

// Favorites is a session wishlist with its products resolved.
type Favorites struct {
	ProductIDs []string          `json:"productIds"`
	Products   []product.Product `json:"products"`
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) AddFavorite(ctx context.Context, sessionID, productID string) ([]string, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.repo.Add(ctx, sessionID, productID)
}

func (s *Service) RemoveFavorite(ctx context.Context, sessionID, productID string) ([]string, error) {
	return s.repo.Remove(ctx, sessionID, productID)
}

// GetFavorites lists the wishlist. Ids no longer in the catalog stay in
// ProductIDs but have no entry in Products.
func (s *Service) GetFavorites(ctx context.Context, sessionID string) (Favorites, error) {
	ids, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return Favorites{}, err
	}
	products := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := s.catalog.GetByID(id); err == nil {
			products = append(products, p)
		}
	}
	return Favorites{ProductIDs: ids, Products: products}, nil
}
