package graph

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/infobox"
	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/time/rate"
)

const (
	rootWeight    = 2.0
	relatedWeight = 1.0

	streamBufferSize = 16
)

var (
	// ErrRootNotFound is returned by Run when the root name cannot be resolved.
	ErrRootNotFound = errors.New("root page not found")
	// ErrTraversalReused is returned when Run is called twice.
	ErrTraversalReused = errors.New("traversal already started")
)

type State string

const (
	StateIdle          State = "idle"
	StateResolvingRoot State = "resolving_root"
	StateDrainingQueue State = "draining_queue"
	StateFinalizing    State = "finalizing"
	StateComplete      State = "complete"
	StateError         State = "error"
	StateCanceled      State = "canceled"
)

type workItem struct {
	name   string
	parent string
	depth  int
}

type traversalConfig struct {
	root      string
	maxDepth  int
	ceiling   int
	delay     time.Duration
	resolver  PageResolver
	extractor RelationExtractor
}

// Traversal crawls outward from one root entity. It owns its registries,
// visited set and queue and must not be shared or reused.
type Traversal struct {
	id        string
	root      string
	maxDepth  int
	ceiling   int
	resolver  PageResolver
	extractor RelationExtractor
	throttle  *rate.Limiter

	entities  *EntityRegistry
	edges     *EdgeRegistry
	visited   map[string]struct{}
	queue     *list.List
	processed int
	state     State
}

func newTraversal(cfg traversalConfig) (*Traversal, error) {
	root := strings.TrimSpace(cfg.root)
	if root == "" {
		return nil, errors.New("root name must not be empty")
	}
	if cfg.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", cfg.maxDepth)
	}
	if cfg.ceiling <= 0 {
		cfg.ceiling = DefaultMaxItems
	}

	limit := rate.Inf
	if cfg.delay > 0 {
		limit = rate.Every(cfg.delay)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate traversal id: %w", err)
	}

	entities := NewEntityRegistry()
	return &Traversal{
		id:        id,
		root:      root,
		maxDepth:  cfg.maxDepth,
		ceiling:   cfg.ceiling,
		resolver:  cfg.resolver,
		extractor: cfg.extractor,
		throttle:  rate.NewLimiter(limit, 1),
		entities:  entities,
		edges:     NewEdgeRegistry(entities),
		visited:   make(map[string]struct{}),
		queue:     list.New(),
		state:     StateIdle,
	}, nil
}

func (t *Traversal) ID() string {
	return t.id
}

func (t *Traversal) State() State {
	return t.state
}

// Processed returns the number of work items that were fetched.
func (t *Traversal) Processed() int {
	return t.processed
}

// Run resolves the root and drains the work queue, calling emit for every
// event. Only a failed root resolution produces an error event; every other
// collaborator failure is logged and skipped. When ctx is canceled between
// work items Run stops without a terminal event and returns ctx.Err().
func (t *Traversal) Run(ctx context.Context, emit func(Event)) error {
	if t.state != StateIdle {
		return ErrTraversalReused
	}
	if emit == nil {
		emit = func(Event) {}
	}
	start := time.Now()

	t.state = StateResolvingRoot
	emit(LogEvent(fmt.Sprintf("Verifying page for '%s'...", t.root)))

	title, err := t.resolver.Resolve(ctx, t.root)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return t.cancel(ctxErr)
		}
		if errors.Is(err, ErrPageNotFound) {
			logger.Info("[Graph] Root page not found", "run_id", t.id, "name", t.root)
		} else {
			logger.Warn("[Graph] Root resolution failed", "run_id", t.id, "name", t.root, "err", err)
		}
		t.state = StateError
		traversalTotal.WithLabelValues(resultError).Inc()
		emit(ErrorEvent(fmt.Sprintf("Wikipedia page not found for '%s'", t.root)))
		return fmt.Errorf("%w: %s", ErrRootNotFound, t.root)
	}

	logger.Info("[Graph] Starting traversal", "run_id", t.id, "root", title, "max_depth", t.maxDepth)

	t.entities.GetOrCreate(title, common.EntityKindCompany, rootWeight)
	t.queue.PushBack(workItem{name: title, depth: 0})
	t.state = StateDrainingQueue

	for t.queue.Len() > 0 && t.processed < t.ceiling {
		if err := ctx.Err(); err != nil {
			return t.cancel(err)
		}

		item := t.queue.Remove(t.queue.Front()).(workItem)
		emit(ProgressEvent(
			100*t.processed/t.ceiling,
			fmt.Sprintf("[%d/%d] Fetching: %s...", item.depth, t.maxDepth, item.name),
		))

		if item.depth > t.maxDepth {
			continue
		}
		if _, ok := t.visited[item.name]; ok {
			continue
		}

		if err := t.throttle.Wait(ctx); err != nil {
			return t.cancel(err)
		}

		t.expand(ctx, item)
		t.processed++
	}

	t.state = StateFinalizing
	edges := t.edges.Edges()
	if err := t.entities.FinalizeWeights(edges); err != nil {
		return fmt.Errorf("failed to finalize weights: %w", err)
	}

	t.state = StateComplete
	traversalTotal.WithLabelValues(resultComplete).Inc()
	traversalItems.Observe(float64(t.processed))
	logger.Info("[Graph] Traversal complete",
		"run_id", t.id,
		"nodes", t.entities.Len(),
		"edges", len(edges),
		"processed", t.processed,
		"truncated", t.queue.Len() > 0,
		"duration", time.Since(start),
	)

	emit(CompleteEvent("Graph generation complete!", common.Graph{
		Nodes: t.entities.Entities(),
		Edges: edges,
	}))
	return nil
}

// Stream runs the traversal in a goroutine and delivers its events on a
// bounded channel that is closed after the last event.
func (t *Traversal) Stream(ctx context.Context) <-chan Event {
	events := make(chan Event, streamBufferSize)
	go func() {
		defer close(events)
		err := t.Run(ctx, func(ev Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		if err != nil && !errors.Is(err, ErrRootNotFound) {
			logger.Debug("[Graph] Traversal stopped", "run_id", t.id, "err", err)
		}
	}()
	return events
}

func (t *Traversal) cancel(err error) error {
	t.state = StateCanceled
	traversalTotal.WithLabelValues(resultCanceled).Inc()
	logger.Info("[Graph] Traversal canceled", "run_id", t.id, "processed", t.processed)
	return err
}

func (t *Traversal) expand(ctx context.Context, item workItem) {
	t.visited[item.name] = struct{}{}

	if item.parent != "" {
		t.edges.Add(item.parent, item.name, common.RelationOwns)
	}

	relations, err := t.extractor.Extract(ctx, item.name)
	if err != nil {
		if errors.Is(err, infobox.ErrNoInfobox) || errors.Is(err, loader.ErrPageNotFound) {
			logger.Debug("[Graph] No relations", "run_id", t.id, "title", item.name, "err", err)
		} else {
			logger.Warn("[Graph] Extraction failed", "run_id", t.id, "title", item.name, "err", err)
		}
		return
	}

	relations.Each(func(kind common.RelationKind, name string) {
		entityKind := common.EntityKindCompany
		if kind.PersonRelation() {
			entityKind = common.EntityKindPerson
			name = personName(name)
		}
		if name == "" {
			return
		}

		t.entities.GetOrCreate(name, entityKind, relatedWeight)

		switch kind {
		case common.RelationFounded, common.RelationKeyPersonOf:
			t.edges.Add(name, item.name, kind)
		case common.RelationParentOf:
			t.edges.Add(name, item.name, common.RelationOwns)
		case common.RelationOwns:
			t.edges.Add(item.name, name, common.RelationOwns)
		}

		if entityKind != common.EntityKindCompany || item.depth+1 > t.maxDepth {
			return
		}
		if _, ok := t.visited[name]; ok {
			return
		}

		next := workItem{name: name, parent: item.name, depth: item.depth + 1}
		if kind == common.RelationParentOf {
			t.queue.PushFront(next)
		} else {
			t.queue.PushBack(next)
		}
	})
}

// personName drops everything from the first parenthesis on.
func personName(name string) string {
	before, _, _ := strings.Cut(name, "(")
	return strings.TrimSpace(before)
}
