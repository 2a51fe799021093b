package main

import (
	"net/http"
	"strconv"

	"github.com/TanerSahin19/GriWear/internal/middleware"
	"github.com/TanerSahin19/GriWear/internal/model"
	"github.com/TanerSahin19/GriWear/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCatalogRoutes(g *echo.Group, cs *services.CatalogService) {
	p := g.Group("/products")

	p.GET("", func(c echo.Context) error {
		products, err := cs.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, products)
	})

	p.GET("/new", func(c echo.Context) error {
		products, err := cs.NewArrivals(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, products)
	})

	p.GET("/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		products, err := cs.Search(c.Request().Context(), q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"q": q, "products": products, "count": len(products)})
	})

	p.GET("/:slug", func(c echo.Context) error {
		product, err := cs.BySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, product)
	})

	cat := g.Group("/categories")

	cat.GET("", func(c echo.Context) error {
		categories, err := cs.Categories(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, categories)
	})

	cat.GET("/:slug/products", func(c echo.Context) error {
		category, products, err := cs.CategoryProducts(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"category": category, "products": products})
	})

	// admin product management
	admin := g.Group("/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.POST("/categories", func(c echo.Context) error {
		req := new(model.Category)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := cs.CreateCategory(c.Request().Context(), req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"categoryid": id})
	})

	admin.POST("/products", func(c echo.Context) error {
		req := new(model.Product)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := cs.CreateProduct(c.Request().Context(), req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"productid": id})
	})

	admin.PUT("/products/:productid", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(model.Product)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		req.ProductID = productID
		if err := cs.UpdateProduct(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	admin.DELETE("/products/:productid", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := cs.DeactivateProduct(c.Request().Context(), productID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deactivated"})
	})
}
