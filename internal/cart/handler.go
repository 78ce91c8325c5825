package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/skincare-storefront/internal/product"
	"github.com/wichananm65/skincare-storefront/internal/session"
	"github.com/wichananm65/skincare-storefront/internal/validation"
)

// Catalog resolves product ids for cart lines.
type Catalog interface {
	GetByID(id string) (product.Product, error)
}

// Handler exposes the session cart over HTTP.
type Handler struct {
	service *Service
	catalog Catalog
}

func NewHandler(s *Service, catalog Catalog) *Handler {
	return &Handler{service: s, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Get("/api/v1/cart/count", h.getCount)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:id", h.updateItem)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartView struct {
	Items   []CartItem `json:"items"`
	Summary Summary    `json:"summary"`
}

func viewOf(st *Store) cartView {
	items := st.Items()
	return cartView{Items: items, Summary: SummarizeItems(items)}
}

// Quantities below one are clamped to one; the upper bound matches
// MaxQuantity.
type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity,omitempty" validate:"lte=99"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"lte=99"`
}

func (h *Handler) store(c *fiber.Ctx) (*Store, error) {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return nil, err
	}
	return h.service.Store(c.UserContext(), sessionID)
}

func storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, fiber.ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "cart unavailable"})
}

func invalid(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request", "errors": errs})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(viewOf(st))
}

func (h *Handler) getCount(c *fiber.Ctx) error {
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"count": st.ItemCount()})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validation.Fields(payload); len(errs) > 0 {
		return invalid(c, errs)
	}
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}

	p, err := h.catalog.GetByID(payload.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	st.Add(c.UserContext(), CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: payload.Quantity,
	})
	return c.Status(fiber.StatusOK).JSON(viewOf(st))
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validation.Fields(payload); len(errs) > 0 {
		return invalid(c, errs)
	}
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}
	st.UpdateQuantity(c.UserContext(), c.Params("id"), payload.Quantity)
	return c.JSON(viewOf(st))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}
	st.Remove(c.UserContext(), c.Params("id"))
	return c.JSON(viewOf(st))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	st, err := h.store(c)
	if err != nil {
		return storeError(c, err)
	}
	st.Clear(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
