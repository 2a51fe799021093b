package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/TanerSahin19/GriWear/internal/middleware"
	"github.com/TanerSahin19/GriWear/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		id, err := authSvc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{"userid": id})
	}
}

func loginHandler(authSvc *services.AuthService, tokenTTL time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}

		token, err := middleware.GenerateToken(user.UserID, user.Username, user.Role, tokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token":      token,
			"expires_in": int(tokenTTL.Seconds()),
			"user": echo.Map{
				"userid":   user.UserID,
				"username": user.Username,
				"role":     user.Role,
			},
		})
	}
}

// meHandler returns the authenticated user's info
func meHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		user, err := authSvc.Me(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusOK, user)
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokenTTL time.Duration) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc, tokenTTL))

	// authenticated
	me := auth.Group("/me")
	me.Use(middleware.JWTMiddleware())
	me.GET("", meHandler(authSvc))
}
