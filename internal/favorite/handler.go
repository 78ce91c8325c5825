package favorite

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/skincare-storefront/internal/session"
	"github.com/wichananm65/skincare-storefront/internal/validation"
)

// Handler delegates favorite operations to the favorite service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.getFavorites)
	app.Post("/api/v1/favorites", h.addFavorite)
	app.Delete("/api/v1/favorites", h.removeFavorite)
}

type favoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *Handler) addFavorite(c *fiber.Ctx) error {
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validation.Fields(payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request", "errors": errs})
	}
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.AddFavorite(c.UserContext(), sessionID, payload.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrAlreadyFavorite):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in favorites"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"productId": payload.ProductID, "productIds": ids})
}

func (h *Handler) removeFavorite(c *fiber.Ctx) error {
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validation.Fields(payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request", "errors": errs})
	}
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.RemoveFavorite(c.UserContext(), sessionID, payload.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFavorite) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product not in favorites"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"productId": payload.ProductID, "productIds": ids})
}

func (h *Handler) getFavorites(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	favs, err := h.service.GetFavorites(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(favs)
}
