package config

import (
	"os"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// Location is the timezone used to bucket orders into calendar days
	// on the dashboard and when filtering order lists by date.
	Location *time.Location

	// DashboardIncludeCancelled controls whether cancelled orders count
	// towards total_vendas / quantidade_pedidos. Defaults to true, which
	// matches the historical behaviour of the dashboard.
	DashboardIncludeCancelled bool
}

func Load() Config {
	addr := os.Getenv("FEIRA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tzName := os.Getenv("FEIRA_TZ")
	if tzName == "" {
		tzName = "America/Sao_Paulo"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}

	includeCancelled := true
	if v := os.Getenv("DASHBOARD_INCLUDE_CANCELLED"); v == "0" || v == "false" {
		includeCancelled = false
	}

	return Config{
		Addr:                      addr,
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		JWTSecret:                 os.Getenv("JWT_SECRET"),
		Location:                  loc,
		DashboardIncludeCancelled: includeCancelled,
	}
}
