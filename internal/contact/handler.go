package contact

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/contact", h.submit)
}

type submitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	msg, err := h.service.Submit(c.UserContext(), Message{
		Name:     payload.Name,
		Email:    payload.Email,
		Subject:  payload.Subject,
		Category: payload.Category,
		Body:     payload.Message,
	})
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "errors": verr.Fields})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "request cancelled"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      msg.ID,
		"message": "Thank you for contacting us. We'll get back to you within 24 hours.",
	})
}
