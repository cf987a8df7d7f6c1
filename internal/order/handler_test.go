package order

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/feiraonline/feira-backend/internal/product"
)

// makeApp wires the handler behind a middleware that turns the X-Vendor-ID
// header into the JWT claims the real middleware would produce.
func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Vendor-ID"); v != "" {
			claims := jwt.MapClaims{"vendor_id": v}
			tok := &jwt.Token{Claims: claims}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newTestHandler(products []product.Product) (*Handler, *product.InMemoryRepository, *InMemoryRepository) {
	catalog := product.NewInMemoryRepository(products)
	orders := NewInMemoryRepository(nil)
	h := NewHandler(NewService(orders, catalog), time.UTC)
	return h, catalog, orders
}

func seedTomate(qty int) []product.Product {
	return []product.Product{{
		ID:         "tomate",
		VendorID:   "v1",
		Nome:       "Tomate",
		Preco:      decimal.RequireFromString("8.00"),
		Quantidade: qty,
	}}
}

func TestCreateOrder(t *testing.T) {
	h, catalog, _ := newTestHandler(seedTomate(10))
	app := makeApp(h)

	body := `{"vendor_id":"v1","cliente_nome":"João","cliente_telefone":"11 99999-0000","cliente_endereco":"Rua A, 1","items":[{"product_id":"tomate","quantidade":3}]}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, b)
	}

	var created Order
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Status != StatusNovo {
		t.Fatalf("expected status novo, got %q", created.Status)
	}
	if !created.Total.Equal(decimal.RequireFromString("24.00")) {
		t.Fatalf("expected total 24.00, got %s", created.Total)
	}

	p, _ := catalog.GetByID("tomate")
	if p.Quantidade != 7 {
		t.Fatalf("expected stock 7 after checkout, got %d", p.Quantidade)
	}
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	h, _, _ := newTestHandler(seedTomate(10))
	app := makeApp(h)

	body := `{"vendor_id":"","cliente_nome":"","cliente_telefone":"x","cliente_endereco":"y","items":[{"product_id":"tomate","quantidade":0}]}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"vendor_id", "cliente_nome", "items"} {
		if payload.Errors[field] == "" {
			t.Fatalf("expected validation error for %s, got %v", field, payload.Errors)
		}
	}
}

func TestCreateOrder_InsufficientStockBody(t *testing.T) {
	h, catalog, _ := newTestHandler(seedTomate(7))
	app := makeApp(h)

	body := `{"vendor_id":"v1","cliente_nome":"João","cliente_telefone":"11 99999-0000","cliente_endereco":"Rua A, 1","items":[{"product_id":"tomate","quantidade":8}]}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}

	var payload struct {
		ProductID string `json:"product_id"`
		Available int    `json:"available"`
		Requested int    `json:"requested"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.ProductID != "tomate" || payload.Available != 7 || payload.Requested != 8 {
		t.Fatalf("unexpected conflict body: %+v", payload)
	}

	p, _ := catalog.GetByID("tomate")
	if p.Quantidade != 7 {
		t.Fatalf("stock must be untouched, got %d", p.Quantidade)
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	h, _, _ := newTestHandler(seedTomate(10))
	app := makeApp(h)

	body := `{"vendor_id":"v1","cliente_nome":"João","cliente_telefone":"11 99999-0000","cliente_endereco":"Rua A, 1","items":[{"product_id":"ghost","quantidade":1}]}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestGetMyOrders_FilteredAndPaged(t *testing.T) {
	h, _, _ := newTestHandler(seedTomate(100))
	app := makeApp(h)

	for i, nome := range []string{"Ana", "Bruno", "Ana Clara"} {
		body := fmt.Sprintf(`{"vendor_id":"v1","cliente_nome":"%s","cliente_telefone":"11 0000-000%d","cliente_endereco":"Rua A","items":[{"product_id":"tomate","quantidade":1}]}`, nome, i)
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil || res.StatusCode != fiber.StatusCreated {
			t.Fatalf("seed order %d failed: %v status %d", i, err, res.StatusCode)
		}
	}

	req := httptest.NewRequest("GET", "/api/orders/my?cliente=ana&limit=1", nil)
	req.Header.Set("X-Vendor-ID", "v1")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var page struct {
		Items []Order `json:"items"`
		Total int     `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected total 2 matches despite limit=1, got %d", page.Total)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected one item on the page, got %d", len(page.Items))
	}
}

func TestGetMyOrders_BadFilters(t *testing.T) {
	h, _, _ := newTestHandler(nil)
	app := makeApp(h)

	for _, q := range []string{"status=despachado", "from=01-02-2026", "to=nope"} {
		req := httptest.NewRequest("GET", "/api/orders/my?"+q, nil)
		req.Header.Set("X-Vendor-ID", "v1")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, res.StatusCode)
		}
	}
}

func TestGetMyOrders_RequiresToken(t *testing.T) {
	h, _, _ := newTestHandler(nil)
	app := makeApp(h)

	req := httptest.NewRequest("GET", "/api/orders/my", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	h, _, orders := newTestHandler(seedTomate(10))
	app := makeApp(h)

	seed := Order{ID: "o1", VendorID: "v1", Status: StatusNovo, Total: decimal.Zero, CreatedAt: time.Now().UTC()}
	if _, err := orders.Create(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	send := func(vendorID, orderID, status string) int {
		body := fmt.Sprintf(`{"status":"%s"}`, status)
		req := httptest.NewRequest("PUT", "/api/orders/"+orderID+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Vendor-ID", vendorID)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return res.StatusCode
	}

	if code := send("v2", "o1", "aceito"); code != fiber.StatusForbidden {
		t.Fatalf("foreign vendor: expected 403, got %d", code)
	}
	if code := send("v1", "ghost", "aceito"); code != fiber.StatusNotFound {
		t.Fatalf("unknown order: expected 404, got %d", code)
	}
	if code := send("v1", "o1", "entregue"); code != fiber.StatusConflict {
		t.Fatalf("illegal jump: expected 409, got %d", code)
	}
	if code := send("v1", "o1", "aceito"); code != fiber.StatusOK {
		t.Fatalf("legal transition: expected 200, got %d", code)
	}

	stored, err := orders.GetByID("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusAceito {
		t.Fatalf("expected persisted status aceito, got %q", stored.Status)
	}
}
