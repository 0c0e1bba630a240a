package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

const (
	MIMEApplicationNDJSON = "application/x-ndjson"

	maxSearchDepth = 10
)

// SearchHandler streams the events of one traversal as newline-delimited
// JSON. Validation failures are answered with 400 before the stream starts;
// afterwards every outcome is reported as an event.
func SearchHandler(c echo.Context) error {
	type searchParams struct {
		Company string `query:"company"`
		Depth   string `query:"depth"`
	}

	type searchRequest struct {
		Company string `validate:"required"`
		Depth   int    `validate:"min=0,max=10"`
	}

	app := c.(*middleware.AppContext).App

	params := new(searchParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	req := searchRequest{
		Company: strings.TrimSpace(params.Company),
		Depth:   parseDepth(params.Depth, app.Client.DefaultDepth()),
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
	}

	tr, err := app.Client.NewTraversal(graph.NewTraversalParams{
		Root:     req.Company,
		MaxDepth: req.Depth,
	})
	if err != nil {
		logger.Error("Failed to create traversal", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	logger.Info("[Search] Streaming traversal", "run_id", tr.ID(), "company", req.Company, "depth", req.Depth)

	c.Response().Header().Set(echo.HeaderContentType, MIMEApplicationNDJSON)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().WriteHeader(http.StatusOK)

	enc := json.NewEncoder(c.Response())
	for event := range tr.Stream(ctx) {
		if err := enc.Encode(event); err != nil {
			logger.Debug("[Search] Client went away", "run_id", tr.ID(), "err", err)
			return nil
		}
		c.Response().Flush()
	}

	return nil
}

// parseDepth keeps the default for absent or non-numeric values.
func parseDepth(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return depth
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Company":
				return "Missing company name"
			case "Depth":
				return "Depth must be between 0 and " + strconv.Itoa(maxSearchDepth)
			}
		}
	}
	return "Invalid request params"
}
