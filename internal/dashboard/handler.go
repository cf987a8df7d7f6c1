package dashboard

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/dashboard", h.getDashboard)
}

func (h *Handler) getDashboard(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	summary, err := h.service.Summary(vendorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}
