package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TanerSahin19/GriWear/internal/middleware"
	"github.com/TanerSahin19/GriWear/internal/model"
	"github.com/TanerSahin19/GriWear/internal/services"

	"github.com/labstack/echo/v4"
)

// statusLabel and statusBadgeClass are presentation concerns kept out of the
// model: the storefront shows a human label and a bootstrap badge per status.
func statusLabel(s model.OrderStatus) string {
	switch s {
	case model.StatusPending:
		return "Preparing"
	case model.StatusShipped:
		return "Shipped"
	case model.StatusDelivered:
		return "Delivered"
	case model.StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

func statusBadgeClass(s model.OrderStatus) string {
	switch s {
	case model.StatusPending:
		return "text-bg-warning"
	case model.StatusShipped:
		return "text-bg-primary"
	case model.StatusDelivered:
		return "text-bg-success"
	case model.StatusCancelled:
		return "text-bg-secondary"
	}
	return "text-bg-dark"
}

type orderView struct {
	model.Order
	StatusLabel string `json:"status_label"`
	StatusBadge string `json:"status_badge"`
}

func viewOrder(o model.Order) orderView {
	return orderView{Order: o, StatusLabel: statusLabel(o.Status), StatusBadge: statusBadgeClass(o.Status)}
}

type bulkOrderRequest struct {
	OrderIDs []int64 `json:"order_ids"`
	Status   string  `json:"status,omitempty"`
}

// orderError maps settlement rejections onto HTTP responses. Conflicts and
// validation failures come back as user-facing warnings; anything else is an
// opaque 500, with rollback already guaranteed by the service.
func orderError(c echo.Context, err error) error {
	var conflict *services.StockConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// CHECKOUT: cart -> order, the authoritative stock gate
	p.POST("/checkout", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		form := new(services.CheckoutForm)
		if err := c.Bind(form); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(form); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "delivery details are invalid"})
		}

		orderID, err := os.Checkout(c.Request().Context(), cl.UserID, cartKey(c), *form)
		if err != nil {
			return orderError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"orderid": orderID,
			"status":  model.StatusPending,
		})
	})

	// MY ORDERS
	p.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		orders, err := os.MyOrders(c.Request().Context(), cl.UserID)
		if err != nil {
			return orderError(c, err)
		}
		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, viewOrder(o))
		}
		return c.JSON(http.StatusOK, views)
	})

	// badge counter
	p.GET("/count", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		n, err := os.OrdersCount(c.Request().Context(), cl.UserID)
		if err != nil {
			return orderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"count": n})
	})

	// ORDER DETAIL
	p.GET("/:orderid", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		order, lines, err := os.OrderDetail(c.Request().Context(), cl.UserID, orderID)
		if err != nil {
			return orderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"order": viewOrder(*order),
			"items": lines,
		})
	})

	// CANCEL: pending only, restores stock
	p.POST("/:orderid/cancel", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		if err := os.Cancel(c.Request().Context(), cl.UserID, orderID); err != nil {
			return orderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "order cancelled, stock restored"})
	})

	// admin bulk operations
	admin := g.Group("/admin/orders")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.POST("/cancel", func(c echo.Context) error {
		req := new(bulkOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		affected, err := os.BulkCancel(c.Request().Context(), req.OrderIDs)
		if err != nil {
			return orderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"requested": len(req.OrderIDs),
			"affected":  affected,
		})
	})

	admin.POST("/status", func(c echo.Context) error {
		req := new(bulkOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		status := model.OrderStatus(req.Status)
		affected, err := os.UpdateStatuses(c.Request().Context(), req.OrderIDs, status)
		if err != nil {
			return orderError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"requested": len(req.OrderIDs),
			"affected":  affected,
		})
	})
}
