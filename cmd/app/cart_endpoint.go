package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/TanerSahin19/GriWear/internal/middleware"
	"github.com/TanerSahin19/GriWear/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const cartSessionCookie = "cart_session"

// cartKey yields the session key the cart is stored under: the user id when a
// valid JWT is present, otherwise a UUID cookie so guests can build a cart
// before logging in.
func cartKey(c echo.Context) string {
	if claims := middleware.TryGetClaimsFromAuthHeader(c); claims != nil {
		return fmt.Sprintf("u:%d", claims.UserID)
	}

	if cookie, err := c.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
		return "s:" + cookie.Value
	}

	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartSessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
	return "s:" + sid
}

// cartError maps cart gate rejections onto JSON warnings.
func cartError(c echo.Context, err error) error {
	var conflict *services.StockConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	}
	if errors.Is(err, services.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		cart, err := cs.View(c.Request().Context(), cartKey(c))
		if err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// badge counter
	p.GET("/count", func(c echo.Context) error {
		n, err := cs.Count(c.Request().Context(), cartKey(c))
		if err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"count": n})
	})

	// ADD one unit
	p.POST("/items/:productid", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := cs.Add(c.Request().Context(), cartKey(c), productID); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "added"})
	})

	// REMOVE item
	p.DELETE("/items/:productid", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := cs.Remove(c.Request().Context(), cartKey(c), productID); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		if err := cs.Clear(c.Request().Context(), cartKey(c)); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "cleared"})
	})
}
