package product

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/feiraonline/feira-backend/internal/paging"
	"github.com/feiraonline/feira-backend/internal/vendor"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", h.createProduct)
	app.Get("/api/products/my", h.getMyProducts)
	app.Put("/api/products/:id", h.updateProduct)
	app.Delete("/api/products/:id", h.deleteProduct)
}

type productPayload struct {
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
	Categoria  string          `json:"categoria"`
	Imagem     *string         `json:"imagem,omitempty"`
}

func validateProductPayload(p *productPayload) map[string]string {
	errs := map[string]string{}
	if p.Nome == "" {
		errs["nome"] = "nome is required"
	}
	if p.Categoria == "" {
		errs["categoria"] = "categoria is required"
	}
	if p.Preco.IsNegative() {
		errs["preco"] = "preco must be >= 0"
	}
	if p.Quantidade < 0 {
		errs["quantidade"] = "quantidade must be >= 0"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(vendorID, Product{
		Nome:       payload.Nome,
		Descricao:  payload.Descricao,
		Preco:      payload.Preco,
		Quantidade: payload.Quantidade,
		Categoria:  payload.Categoria,
		Imagem:     payload.Imagem,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getMyProducts(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	page := paging.Parse(c.Query("skip"), c.Query("limit"))
	items, total, err := h.service.ListByVendor(vendorID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateProductPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(vendorID, c.Params("id"), Product{
		Nome:       payload.Nome,
		Descricao:  payload.Descricao,
		Preco:      payload.Preco,
		Quantidade: payload.Quantidade,
		Categoria:  payload.Categoria,
		Imagem:     payload.Imagem,
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrNotOwner:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "product belongs to another vendor"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Delete(vendorID, c.Params("id")); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrNotOwner:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "product belongs to another vendor"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
