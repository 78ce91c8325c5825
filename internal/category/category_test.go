package category

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/skincare-storefront/internal/product"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	products, err := product.Seed()
	require.NoError(t, err)
	return NewService(product.NewService(product.NewInMemoryRepository(products)))
}

func TestService_List(t *testing.T) {
	items := seededService(t).List(100)
	require.NotEmpty(t, items)

	total := 0
	for i, it := range items {
		assert.Positive(t, it.ProductCount)
		assert.NotEmpty(t, it.CategoryImg)
		total += it.ProductCount
		if i > 0 {
			assert.Less(t, indexOf(items[i-1].CategoryName), indexOf(it.CategoryName), "catalog order")
		}
	}
	assert.Equal(t, 12, total)

	assert.Len(t, seededService(t).List(2), 2)
}

func indexOf(name string) int {
	for i, c := range product.Categories {
		if c == name {
			return i
		}
	}
	return -1
}

func TestGetCategories(t *testing.T) {
	app := fiber.New()
	NewHandler(seededService(t)).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var items []CategoryItem
	require.NoError(t, json.NewDecoder(res.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Cleanser", items[0].CategoryName)
}
