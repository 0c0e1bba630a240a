package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/wikigraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

func EventSchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, graph.EventSchema())
}
