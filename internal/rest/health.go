package rest

import (
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	appName     string
	version     string
	environment string
	now         func() time.Time
}

func NewHealthHandler(appName, version, environment string) *HealthHandler {
	return &HealthHandler{
		appName:     appName,
		version:     version,
		environment: environment,
		now:         time.Now,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"message":     h.appName + " is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	}))
}

// Index lists the resource roots under /api.
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "مرحباً بك في API متجر Kledje",
		"version": h.version,
		"endpoints": map[string]string{
			"products": "/api/products",
			"orders":   "/api/orders",
			"offers":   "/api/offers",
			"settings": "/api/settings",
			"auth":     "/api/auth",
			"upload":   "/api/upload",
		},
	})
}
