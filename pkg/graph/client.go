package graph

import (
	"errors"
	"time"

	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
)

const (
	DefaultMaxItems = 300
	DefaultDelay    = 100 * time.Millisecond
	DefaultMaxDepth = 2
)

// GraphClient holds the settings shared by all traversals and creates
// independent Traversal instances.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	maxItems     int
	delay        time.Duration
	defaultDepth int
	newLoader    func() loader.PageLoader
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// MaxItems caps the number of pages fetched by one traversal. Delay is the
// minimum spacing between two fetches of the same traversal. NewLoader is
// called once per traversal so that page caches never outlive a run.
type NewGraphClientParams struct {
	MaxItems     int
	Delay        time.Duration
	DefaultDepth int
	NewLoader    func() loader.PageLoader
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
//		MaxItems:     300,
//		Delay:        100 * time.Millisecond,
//		DefaultDepth: 2,
//		NewLoader: func() loader.PageLoader {
//			return web.NewWebPageLoader(web.NewWebPageLoaderParams{
//				BaseURL: "https://en.wikipedia.org/wiki/",
//				Timeout: 5 * time.Second,
//			})
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	if params.NewLoader == nil {
		return nil, errors.New("graph client requires a page loader factory")
	}
	if params.Delay < 0 {
		return nil, errors.New("delay must not be negative")
	}
	if params.DefaultDepth < 0 {
		return nil, errors.New("default depth must not be negative")
	}
	maxItems := params.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	return &GraphClient{
		maxItems:     maxItems,
		delay:        params.Delay,
		defaultDepth: params.DefaultDepth,
		newLoader:    params.NewLoader,
	}, nil
}

func (g *GraphClient) DefaultDepth() int {
	return g.defaultDepth
}

func (g *GraphClient) MaxItems() int {
	return g.maxItems
}

// NewTraversalParams describes one traversal. Resolver and Extractor are
// optional; by default both are backed by a fresh page loader.
type NewTraversalParams struct {
	Root      string
	MaxDepth  int
	Resolver  PageResolver
	Extractor RelationExtractor
}

// NewTraversal creates an independent traversal with its own registries,
// visited set and queue.
func (g *GraphClient) NewTraversal(params NewTraversalParams) (*Traversal, error) {
	resolver, extractor := params.Resolver, params.Extractor
	if resolver == nil || extractor == nil {
		l := g.newLoader()
		if resolver == nil {
			resolver = NewWikiResolver(l)
		}
		if extractor == nil {
			extractor = NewInfoboxExtractor(l)
		}
	}

	return newTraversal(traversalConfig{
		root:      params.Root,
		maxDepth:  params.MaxDepth,
		ceiling:   g.maxItems,
		delay:     g.delay,
		resolver:  resolver,
		extractor: extractor,
	})
}
