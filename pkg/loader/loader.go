package loader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrPageNotFound is returned by a PageLoader when the site reports that the
// requested page does not exist.
var ErrPageNotFound = errors.New("page not found")

// StatusError reports a non-2xx response other than 404.
type StatusError struct {
	Title  string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %q", e.Status, e.Title)
}

// Page is the raw result of fetching an encyclopedia page.
//
// FinalURL is the address after following redirects; Redirected is set when
// it differs from the requested address.
type Page struct {
	Title      string
	Status     int
	FinalURL   string
	Redirected bool
	Body       []byte
}

// ResolvedTitle returns the title of the page actually served, which is the
// requested title unless the site redirected.
func (p Page) ResolvedTitle() string {
	if !p.Redirected {
		return p.Title
	}
	if title := TitleFromURL(p.FinalURL); title != "" {
		return title
	}
	return p.Title
}

// PageLoader fetches pages by title.
//
// Implementations return ErrPageNotFound for missing pages, a *StatusError
// for other error statuses and a wrapped transport error otherwise.
type PageLoader interface {
	LoadPage(ctx context.Context, title string) (Page, error)
}

// TitleToPath converts a display title into the site's path segment.
func TitleToPath(title string) string {
	return url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
}

// TitleFromURL reverses TitleToPath on the last path segment of rawURL.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segment := path.Base(u.EscapedPath())
	if segment == "/" || segment == "." {
		return ""
	}
	unescaped, err := url.PathUnescape(segment)
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(unescaped, "_", " ")
}

// PageURL joins baseURL and the path form of title.
func PageURL(baseURL, title string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + TitleToPath(title)
}
