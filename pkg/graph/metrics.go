package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationResolve = "resolve"
	operationExtract = "extract"

	resultOK        = "ok"
	resultNotFound  = "not_found"
	resultError     = "error"
	resultNoInfobox = "no_infobox"
	resultComplete  = "complete"
	resultCanceled  = "canceled"
)

var (
	// fetchTotal counts collaborator calls by operation and outcome
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikigraph_fetch_total",
		Help: "Page fetches by operation and result",
	}, []string{"operation", "result"})

	// traversalTotal counts finished traversals by terminal state
	traversalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikigraph_traversals_total",
		Help: "Finished traversals by result",
	}, []string{"result"})

	traversalItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wikigraph_traversal_items",
		Help:    "Work items processed per traversal",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 300},
	})
)
