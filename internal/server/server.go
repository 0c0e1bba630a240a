package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/config"
	mid "github.com/OFFIS-RIT/wikigraph/internal/server/middleware"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
	"github.com/OFFIS-RIT/wikigraph/pkg/loader/web"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewGraphClient builds the traversal factory from cfg. Every traversal gets
// its own web loader so page caches never outlive a run.
func NewGraphClient(cfg config.Config) (*graph.GraphClient, error) {
	return graph.NewGraphClient(graph.NewGraphClientParams{
		MaxItems:     cfg.Crawl.MaxItems,
		Delay:        cfg.Crawl.Delay,
		DefaultDepth: cfg.Crawl.DefaultDepth,
		NewLoader: func() loader.PageLoader {
			return web.NewWebPageLoader(web.NewWebPageLoaderParams{
				BaseURL:   cfg.Wiki.BaseURL,
				UserAgent: cfg.Wiki.UserAgent,
				Timeout:   cfg.Wiki.Timeout,
				MaxTries:  cfg.Wiki.MaxTries,
			})
		},
	})
}

// New creates the echo instance with middleware and routes registered.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)
	return e
}

// Run serves HTTP until ctx is done and then shuts the server down
// gracefully.
func Run(ctx context.Context, cfg config.Config) error {
	client, err := NewGraphClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create graph client: %w", err)
	}

	e := New(&mid.App{Client: client, Config: cfg})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
