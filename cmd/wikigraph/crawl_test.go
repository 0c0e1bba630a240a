package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/wikigraph/internal/config"
	"github.com/OFFIS-RIT/wikigraph/internal/server"
	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"
)

func newTestClient(t *testing.T) *graph.GraphClient {
	t.Helper()

	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Acme_Corp" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<table class="infobox"><tr><th>Founder</th><td><a href="/wiki/Jane_Doe" title="Jane Doe">Jane</a></td></tr></table>`))
	}))
	t.Cleanup(wiki.Close)

	cfg := config.Default()
	cfg.Wiki.BaseURL = wiki.URL + "/wiki/"
	cfg.Crawl.Delay = 0

	client, err := server.NewGraphClient(cfg)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestCrawl(t *testing.T) {
	client := newTestClient(t)

	var out, status bytes.Buffer
	if err := crawl(context.Background(), client, "Acme Corp", 1, &out, &status); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	var g common.Graph
	if err := json.Unmarshal(out.Bytes(), &g); err != nil {
		t.Fatalf("failed to decode graph: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d and %d", len(g.Nodes), len(g.Edges))
	}
	if g.Edges[0].Kind != common.RelationFounded {
		t.Fatalf("expected FOUNDED edge, got %s", g.Edges[0].Kind)
	}
	if !strings.Contains(status.String(), "Graph generation complete!") {
		t.Fatalf("expected completion message, got %q", status.String())
	}
}

func TestCrawl_NotFound(t *testing.T) {
	client := newTestClient(t)

	var out, status bytes.Buffer
	err := crawl(context.Background(), client, "Nobody Inc", 1, &out, &status)
	if !errors.Is(err, graph.ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no graph output, got %q", out.String())
	}
	if !strings.Contains(status.String(), "Wikipedia page not found for 'Nobody Inc'") {
		t.Fatalf("expected not found message, got %q", status.String())
	}
}
