package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middlewares "github.com/Marvin-Brouwer/open-adr/api/middleware"
)

// @Summary Show lint settings
// @Description Returns the include patterns and allowed schemas the server lints with.
// @Tags lint
// @Produce json
// @Success 200 {object} config.Settings
// @Router /settings [get]
func SettingsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middlewares.GetConfig(c).ODR)
}
