package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/errors"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler serves the landing and liveness endpoints.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler that pings db.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root godoc
// @Summary Landing
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Hello Summer Camp!")
}

// Healthz godoc
// @Summary Liveness
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Failure 503 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.db(ctx); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
			Error:   true,
			Message: "database unavailable",
			Code:    "UNAVAILABLE",
		}).SetInternal(err)
	}
	return c.String(http.StatusOK, "ok")
}
