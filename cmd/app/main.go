package main

import (
	"context"
	"log"

	"github.com/TanerSahin19/GriWear/external/redisstore"
	"github.com/TanerSahin19/GriWear/internal/config"
	"github.com/TanerSahin19/GriWear/internal/db"
	"github.com/TanerSahin19/GriWear/internal/middleware"
	"github.com/TanerSahin19/GriWear/internal/repository"
	"github.com/TanerSahin19/GriWear/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	rd "github.com/redis/go-redis/v9"
)

// formValidator plugs go-playground/validator into echo so handlers can call
// c.Validate on bound request structs.
type formValidator struct {
	validate *validator.Validate
}

func (v *formValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func main() {
	ctx := context.Background()

	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	middleware.Configure(cfg.JWTSecret)

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer rdb.Close()

	// ======================
	// REPOSITORIES + STORES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	lineRepo := repository.NewOrderLineRepository(pool)
	cartStore := redisstore.NewCartStore(rdb, cfg.CartTTL)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo)
	catalogSvc := services.NewCatalogService(productRepo)
	cartSvc := services.NewCartService(cartStore, productRepo)
	orderSvc := services.NewOrderService(pool, productRepo, orderRepo, lineRepo, cartStore)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Validator = &formValidator{validate: validator.New()}

	api := e.Group("/griwear")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, cfg.TokenTTL)
	registerCatalogRoutes(api, catalogSvc)
	registerCartRoutes(api, cartSvc)
	registerOrderRoutes(api, orderSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
