package loja

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feiraonline/feira-backend/internal/vendor"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/stores/all", h.getAllStores)
	app.Get("/api/loja/:nome_loja", h.getStore)
	app.Get("/api/categorias/:nome_loja", h.getCategories)
}

func (h *Handler) getStore(c *fiber.Ctx) error {
	page, err := h.service.Store(c.Params("nome_loja"))
	if err != nil {
		if err == vendor.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "store not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(page)
}

func (h *Handler) getAllStores(c *fiber.Ctx) error {
	stores, err := h.service.Directory()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stores)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Params("nome_loja"))
	if err != nil {
		if err == vendor.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "store not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"categorias": categories})
}
