package product

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes must run after handlers owning fixed
// /api/v1/products/<name> paths so :slug does not shadow them.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/filters", h.getFilters)
	app.Get("/api/v1/products/:slug", h.getProduct)
}

// productList is the catalog page response.
type productList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Filters  Filters   `json:"filters"`
	Sort     SortKey   `json:"sort"`
}

// productDetail carries the display defaults for optional fields; its
// top-level images/usage/bestUsed override the embedded product's.
type productDetail struct {
	Product
	Images   []string        `json:"images"`
	Usage    string          `json:"usage"`
	BestUsed string          `json:"bestUsed"`
	Savings  decimal.Decimal `json:"savings"`
	Related  []Product       `json:"related"`
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	filters := Filters{
		SkinTypes:  queryValues(c, "skinType", "skinTypes"),
		Categories: queryValues(c, "category", "categories"),
		Concerns:   queryValues(c, "concern", "concerns"),
	}
	key, _ := ParseSortKey(c.Query("sort"))

	products := h.service.Query(filters, key)
	return c.JSON(productList{Products: products, Total: len(products), Filters: filters, Sort: key})
}

func (h *Handler) getFilters(c *fiber.Ctx) error {
	return c.JSON(h.service.FilterOptions())
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.BySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(productDetail{
		Product:  p,
		Images:   p.Gallery(),
		Usage:    p.UsageOrDefault(),
		BestUsed: p.BestUsedOrDefault(),
		Savings:  p.Savings(),
		Related:  h.service.Related(p, 4),
	})
}

// queryValues collects a filter from repeated and comma separated query
// parameters under any of the given names.
func queryValues(c *fiber.Ctx, names ...string) []string {
	var out []string
	args := c.Context().QueryArgs()
	for _, name := range names {
		for _, raw := range args.PeekMulti(name) {
			for _, v := range strings.Split(string(raw), ",") {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
		}
	}
	return out
}
