package middlewares

import (
	"github.com/labstack/echo/v4"

	"github.com/Marvin-Brouwer/open-adr/types/config"
)

const CONFIG_CONTEXT_KEY = "Config"

func ConfigMiddleware(_config config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CONFIG_CONTEXT_KEY, _config)

			return next(c)
		}
	}
}

// GetConfig returns the config set by ConfigMiddleware, or the process config.
func GetConfig(c echo.Context) config.Config {
	if _config, ok := c.Get(CONFIG_CONTEXT_KEY).(config.Config); ok {
		return _config
	}
	return config.GetConfig()
}
