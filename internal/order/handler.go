package order

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/feiraonline/feira-backend/internal/paging"
	"github.com/feiraonline/feira-backend/internal/product"
	"github.com/feiraonline/feira-backend/internal/vendor"
)

type Handler struct {
	service *Service
	loc     *time.Location
}

// NewHandler builds the order handler. loc is the timezone used to
// interpret date filters on the order list.
func NewHandler(service *Service, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	// checkout is customer-facing and requires no vendor token
	app.Post("/api/orders", h.createOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/orders/my", h.getMyOrders)
	app.Put("/api/orders/:id/status", h.updateStatus)
}

type createOrderRequest struct {
	VendorID        string          `json:"vendor_id"`
	ClienteNome     string          `json:"cliente_nome"`
	ClienteTelefone string          `json:"cliente_telefone"`
	ClienteEndereco string          `json:"cliente_endereco"`
	Observacoes     *string         `json:"observacoes,omitempty"`
	Items           []RequestedItem `json:"items"`
}

func validateOrderPayload(p *createOrderRequest) map[string]string {
	errs := map[string]string{}
	if p.VendorID == "" {
		errs["vendor_id"] = "vendor_id is required"
	}
	if p.ClienteNome == "" {
		errs["cliente_nome"] = "cliente_nome is required"
	}
	if p.ClienteTelefone == "" {
		errs["cliente_telefone"] = "cliente_telefone is required"
	}
	if p.ClienteEndereco == "" {
		errs["cliente_endereco"] = "cliente_endereco is required"
	}
	for _, it := range p.Items {
		if it.Quantidade <= 0 {
			errs["items"] = "quantidade must be positive for every item"
			break
		}
	}
	return errs
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateOrderPayload(payload); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.PlaceOrder(PlaceOrderRequest{
		VendorID:        payload.VendorID,
		ClienteNome:     payload.ClienteNome,
		ClienteTelefone: payload.ClienteTelefone,
		ClienteEndereco: payload.ClienteEndereco,
		Observacoes:     payload.Observacoes,
		Items:           payload.Items,
	})
	if err != nil {
		var stockErr *InsufficientStockError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.As(err, &stockErr):
			// distinguishable from generic validation failure so the
			// storefront can offer "reduce quantity"
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message":    stockErr.Error(),
				"product_id": stockErr.ProductID,
				"available":  stockErr.Available,
				"requested":  stockErr.Requested,
			})
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, product.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	f, ferr := h.filterFromQuery(c)
	if ferr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ferr.Error()})
	}

	page := paging.Parse(c.Query("skip"), c.Query("limit"))
	items, total, err := h.service.ListByVendor(vendorID, f, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	vendorID, err := vendor.GetVendorIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.AdvanceStatus(vendorID, c.Params("id"), Status(payload.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "order belongs to another vendor"})
		case errors.Is(err, ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

// filterFromQuery reads status/cliente/from/to. Dates are calendar days in
// the configured vendor-local timezone; from is the start of its day and to
// runs through the end of its day.
func (h *Handler) filterFromQuery(c *fiber.Ctx) (Filter, error) {
	f := Filter{
		Status:  Status(c.Query("status")),
		Cliente: c.Query("cliente"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return Filter{}, errors.New("unknown status filter")
	}

	if v := c.Query("from"); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			return Filter{}, errors.New("from must be YYYY-MM-DD")
		}
		f.From = day
	}
	if v := c.Query("to"); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			return Filter{}, errors.New("to must be YYYY-MM-DD")
		}
		f.To = day.AddDate(0, 0, 1)
	}
	return f, nil
}
