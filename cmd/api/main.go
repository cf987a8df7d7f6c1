package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/feiraonline/feira-backend/internal/config"
	"github.com/feiraonline/feira-backend/internal/dashboard"
	"github.com/feiraonline/feira-backend/internal/loja"
	"github.com/feiraonline/feira-backend/internal/order"
	"github.com/feiraonline/feira-backend/internal/product"
	"github.com/feiraonline/feira-backend/internal/vendor"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// monetary fields serialize as JSON numbers, matching the frontend
	decimal.MarshalJSONWithoutQuotes = true

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustEnsureSchema(db)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	vendorRepo := vendor.NewPostgresRepository(db)
	vendorService := vendor.NewService(vendorRepo)
	vendorHandler := vendor.NewHandler(vendorService, cfg.JWTSecret)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, productRepo)
	orderHandler := order.NewHandler(orderService, cfg.Location)

	dashboardService := dashboard.NewService(orderRepo, cfg.Location, cfg.DashboardIncludeCancelled)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	lojaHandler := loja.NewHandler(loja.NewService(vendorRepo, productRepo))

	app.Get("/api/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Sistema de Feirantes Online"})
	})

	// public surface: auth, checkout and storefront reads
	vendorHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	lojaHandler.RegisterPublicRoutes(app)

	// everything registered below requires a vendor token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	productHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	dashboardHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func mustEnsureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vendors (
			id TEXT PRIMARY KEY,
			nome TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			telefone TEXT NOT NULL DEFAULT '',
			senha TEXT NOT NULL,
			nome_loja TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL REFERENCES vendors (id),
			nome TEXT NOT NULL,
			descricao TEXT NOT NULL DEFAULT '',
			preco NUMERIC NOT NULL DEFAULT 0 CHECK (preco >= 0),
			quantidade INT NOT NULL DEFAULT 0 CHECK (quantidade >= 0),
			categoria TEXT NOT NULL DEFAULT '',
			imagem TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL REFERENCES vendors (id),
			cliente_nome TEXT NOT NULL,
			cliente_telefone TEXT NOT NULL,
			cliente_endereco TEXT NOT NULL,
			observacoes TEXT,
			items JSONB NOT NULL DEFAULT '[]',
			total NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_vendor ON products (vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_vendor ON orders (vendor_id, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
