package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/service/serviceutils"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthHandler handles GET /healthz
func (h *HealthHandler) HealthHandler(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return serviceutils.ResponseError(c, http.StatusServiceUnavailable, "database unreachable", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}
