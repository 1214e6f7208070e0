package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// @Summary Check service health
// @Description Responds with "OK" once the lint API accepts requests.
// @Tags health
// @Accept plain
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func HealthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
