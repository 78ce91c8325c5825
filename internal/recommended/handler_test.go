package recommended

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/skincare-storefront/internal/product"
)

func newCatalog(t *testing.T) *product.Service {
	t.Helper()
	seed, err := product.Seed()
	require.NoError(t, err)
	return product.NewService(product.NewInMemoryRepository(seed))
}

func TestService_ListPaginatesFeatured(t *testing.T) {
	s := NewService(newCatalog(t))

	page := s.List(DefaultFeatured, 0)
	assert.Equal(t, 8, page.Total)
	require.Len(t, page.Items, 8)
	assert.Equal(t, "gentle-foaming-cleanser", page.Items[0].Slug)

	page = s.List(5, 5)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "6", page.Items[0].ID)

	page = s.List(5, 20)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestService_ListHugeLimit(t *testing.T) {
	s := NewService(newCatalog(t))

	page := s.List(math.MaxInt, 3)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "4", page.Items[0].ID)

	assert.Empty(t, s.List(math.MaxInt, -1).Items)
}

func TestFeaturedRoute_HugeLimit(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(newCatalog(t))).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/featured?limit=9223372036854775807&offset=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var page Page
	require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
	assert.Len(t, page.Items, 6)
}

func TestFeaturedRoute_DoesNotCollideWithProductSlug(t *testing.T) {
	catalog := newCatalog(t)
	app := fiber.New()
	// featured first, as the server wires it
	NewHandler(NewService(catalog)).RegisterPublicRoutes(app)
	product.NewHandler(catalog).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/featured?limit=2&offset=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var page Page
	require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "2", page.Items[0].ID)
	assert.Equal(t, 1, page.Offset)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/featured?limit=-3", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
	assert.Equal(t, DefaultFeatured, page.Limit)
}
