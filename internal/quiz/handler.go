package quiz

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/skincare-storefront/internal/session"
	"github.com/wichananm65/skincare-storefront/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/quiz/questions", h.getQuestions)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/quiz", h.getState)
	app.Post("/api/v1/quiz/answers", h.answer)
	app.Post("/api/v1/quiz/next", h.next)
	app.Post("/api/v1/quiz/back", h.back)
	app.Post("/api/v1/quiz/restart", h.restart)
	app.Get("/api/v1/quiz/result", h.result)
}

type answerRequest struct {
	QuestionID int    `json:"questionId" validate:"required,gt=0"`
	OptionID   string `json:"optionId" validate:"required"`
}

func (h *Handler) getQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"questions": h.service.Questions()})
}

func (h *Handler) getState(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.service.State(sessionID))
}

func (h *Handler) answer(c *fiber.Ctx) error {
	payload := new(answerRequest)
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
	st, err := h.service.Answer(sessionID, payload.QuestionID, payload.OptionID)
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(st)
}

func (h *Handler) next(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	st, err := h.service.Advance(sessionID)
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(st)
}

func (h *Handler) back(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.service.Retreat(sessionID))
}

func (h *Handler) restart(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.service.Restart(sessionID))
}

func (h *Handler) result(c *fiber.Ctx) error {
	sessionID, err := session.IDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	rec, err := h.service.Result(sessionID)
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(rec)
}

func quizError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownQuestion), errors.Is(err, ErrUnknownOption),
		errors.Is(err, ErrUnanswered), errors.Is(err, ErrCompleted), errors.Is(err, ErrNotCompleted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
