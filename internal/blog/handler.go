package blog

import "github.com/gofiber/fiber/v2"

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/blog", h.listPosts)
	app.Get("/api/v1/blog/categories", h.getCategories)
	app.Get("/api/v1/blog/:slug", h.getPost)
}

func (h *Handler) listPosts(c *fiber.Ctx) error {
	return c.JSON(h.service.List(c.Query("search"), c.Query("category", AllCategories)))
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}

func (h *Handler) getPost(c *fiber.Ctx) error {
	post, err := h.service.BySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "post not found"})
	}
	return c.JSON(fiber.Map{
		"post":    post,
		"related": h.service.Related(post, 3),
	})
}
