package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
)

// ErrPageNotFound is returned by a PageResolver when no page exists for a name.
var ErrPageNotFound = errors.New("page not found")

// PageResolver maps a free-text name to a canonical page title.
//
// Implementations return ErrPageNotFound when the page does not exist and any
// other error for transport failures.
type PageResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// WikiResolver resolves names by fetching the page and following redirects.
type WikiResolver struct {
	loader loader.PageLoader
}

func NewWikiResolver(l loader.PageLoader) *WikiResolver {
	return &WikiResolver{loader: l}
}

// Resolve returns the title of the page served for name.
func (r *WikiResolver) Resolve(ctx context.Context, name string) (string, error) {
	page, err := r.loader.LoadPage(ctx, name)
	if errors.Is(err, loader.ErrPageNotFound) {
		fetchTotal.WithLabelValues(operationResolve, resultNotFound).Inc()
		return "", ErrPageNotFound
	}
	if err != nil {
		fetchTotal.WithLabelValues(operationResolve, resultError).Inc()
		return "", fmt.Errorf("failed to resolve %q: %w", name, err)
	}

	fetchTotal.WithLabelValues(operationResolve, resultOK).Inc()
	return page.ResolvedTitle(), nil
}
