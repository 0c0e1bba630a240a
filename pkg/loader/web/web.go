package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const maxBodyBytes = 8 << 20

// WebPageLoader fetches encyclopedia pages over HTTP.
//
// Successful pages are cached by requested and resolved title, and concurrent
// requests for the same title share one round trip. A loader is meant to live
// for one traversal; its cache is never shared between runs.
type WebPageLoader struct {
	baseURL   string
	userAgent string
	maxTries  int
	client    *http.Client

	cache   map[string]loader.Page
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebPageLoaderParams configures a WebPageLoader.
//
// Client is optional; when nil a client with Timeout is created. MaxTries <= 1
// disables retries.
type NewWebPageLoaderParams struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	MaxTries  int
	Client    *http.Client
}

// NewWebPageLoader creates a new web page loader.
func NewWebPageLoader(params NewWebPageLoaderParams) *WebPageLoader {
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: params.Timeout}
	}
	return &WebPageLoader{
		baseURL:   params.BaseURL,
		userAgent: params.UserAgent,
		maxTries:  params.MaxTries,
		client:    client,
		cache:     make(map[string]loader.Page),
	}
}

// LoadPage fetches the page for title.
func (l *WebPageLoader) LoadPage(ctx context.Context, title string) (loader.Page, error) {
	if page, ok := l.cached(title); ok {
		return page, nil
	}

	result, err, _ := l.group.Do(title, func() (any, error) {
		if page, ok := l.cached(title); ok {
			return page, nil
		}

		page, err := util.RetryWithContextIf(ctx, l.maxTries, retryable, func(ctx context.Context) (loader.Page, error) {
			return l.fetch(ctx, title)
		})
		if err != nil {
			return loader.Page{}, err
		}

		l.cacheMu.Lock()
		l.cache[title] = page
		if resolved := page.ResolvedTitle(); resolved != title {
			l.cache[resolved] = page
		}
		l.cacheMu.Unlock()

		return page, nil
	})
	if err != nil {
		return loader.Page{}, err
	}

	return result.(loader.Page), nil
}

func (l *WebPageLoader) cached(title string) (loader.Page, bool) {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	page, ok := l.cache[title]
	return page, ok
}

func (l *WebPageLoader) fetch(ctx context.Context, title string) (loader.Page, error) {
	pageURL := loader.PageURL(l.baseURL, title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return loader.Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return loader.Page{}, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return loader.Page{}, loader.ErrPageNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return loader.Page{}, &loader.StatusError{Title: title, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return loader.Page{}, fmt.Errorf("failed to read body of %s: %w", pageURL, err)
	}

	requestedURL := req.URL.String()
	finalURL := requestedURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	logger.Debug("[Web] Fetched page", "title", title, "status", resp.StatusCode, "bytes", len(body))

	return loader.Page{
		Title:      title,
		Status:     resp.StatusCode,
		FinalURL:   finalURL,
		Redirected: finalURL != requestedURL,
		Body:       body,
	}, nil
}

func retryable(err error) bool {
	if errors.Is(err, loader.ErrPageNotFound) {
		return false
	}
	var statusErr *loader.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= 500 || statusErr.Status == http.StatusTooManyRequests
	}
	return true
}
