package product

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAppWithProductHandler(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewHandler(newSeededService(t)).RegisterPublicRoutes(app)
	return app
}

func TestProductRoutes_Registered(t *testing.T) {
	app := makeAppWithProductHandler(t)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, path := range []string{"/api/v1/products", "/api/v1/products/filters", "/api/v1/products/:slug"} {
		assert.True(t, routes[path], "expected route %s", path)
	}
}

func TestGetProducts_FiltersAndSort(t *testing.T) {
	app := makeAppWithProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/products?skinType=Oily&skinType=Dry&concern=Acne,Aging&sort=price-low", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
		Sort     string    `json:"sort"`
		Filters  Filters   `json:"filters"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "price-low", body.Sort)
	assert.Equal(t, []string{"Oily", "Dry"}, body.Filters.SkinTypes)
	assert.Equal(t, []string{"Acne", "Aging"}, body.Filters.Concerns)
	assert.Equal(t, len(body.Products), body.Total)
	require.NotEmpty(t, body.Products)
	assert.Equal(t, "11", body.Products[0].ID)
	for i := 1; i < len(body.Products); i++ {
		assert.False(t, body.Products[i].Price.LessThan(body.Products[i-1].Price))
	}
}

func TestGetProducts_UnknownSortFallsBack(t *testing.T) {
	app := makeAppWithProductHandler(t)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?sort=bogus", nil))
	require.NoError(t, err)
	var body struct {
		Products []Product `json:"products"`
		Sort     string    `json:"sort"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "popularity", body.Sort)
	assert.Len(t, body.Products, 12)
	assert.Equal(t, "2", body.Products[0].ID)
}

func TestGetProduct_DetailAndNotFound(t *testing.T) {
	app := makeAppWithProductHandler(t)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/hydrating-night-moisturizer", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var detail struct {
		ID      string    `json:"id"`
		Images  []string  `json:"images"`
		Usage   string    `json:"usage"`
		Related []Product `json:"related"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&detail))
	assert.Equal(t, "3", detail.ID)
	assert.Len(t, detail.Images, 3)
	assert.NotEmpty(t, detail.Usage)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "9", detail.Related[0].ID)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/unknown-slug", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestGetFilters(t *testing.T) {
	app := makeAppWithProductHandler(t)
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/filters", nil))
	require.NoError(t, err)

	var opts FilterOptions
	require.NoError(t, json.NewDecoder(res.Body).Decode(&opts))
	assert.Equal(t, []string{"Oily", "Dry", "Combination", "Sensitive", "Normal"}, opts.SkinTypes)
}
