package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

const (
	maxBodySize        = "12M" // JSON bodies and hero image uploads alike
	healthCheckTimeout = 2 * time.Second
)

// HealthCheck reports whether a dependency is reachable, e.g. (*sqlx.DB).PingContext.
type HealthCheck func(ctx context.Context) error

func NewRouter(allowOrigins []string, health HealthCheck) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	allowCredentials := true
	for _, origin := range allowOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	e.Use(middleware.RequestID())
	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
		},
		ExposeHeaders:    []string{echo.HeaderXRequestID, "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: allowCredentials,
	}))

	e.GET("/health", healthHandler(health))
	return e
}

func healthHandler(check HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check == nil {
			return c.JSON(http.StatusOK, echo.Map{"ok": true})
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()
		if err := check(ctx); err != nil {
			c.Logger().Errorf("health check: %v", err)
			return c.JSON(http.StatusServiceUnavailable, util.Error("database unavailable"))
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}
