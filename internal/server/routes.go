package server

import (
	"github.com/OFFIS-RIT/wikigraph/internal/server/routes"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Graph routes
	e.GET("/search", routes.SearchHandler)
	e.GET("/schema/events", routes.EventSchemaHandler)
}
