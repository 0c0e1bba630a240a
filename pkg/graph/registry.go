package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

// ErrAlreadyFinalized is returned when weights are finalized a second time.
var ErrAlreadyFinalized = errors.New("weights already finalized")

type entityKey struct {
	name string
	kind common.EntityKind
}

// EntityRegistry deduplicates entities by (name, kind) and hands out
// sequential ids starting at 0. Node order is discovery order.
type EntityRegistry struct {
	nodes     []common.Entity
	byKey     map[entityKey]int
	byName    map[string]int
	finalized bool
}

func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{
		byKey:  make(map[entityKey]int),
		byName: make(map[string]int),
	}
}

// GetOrCreate returns the id registered for (name, kind), creating the entity
// with weight when it does not exist yet.
func (r *EntityRegistry) GetOrCreate(name string, kind common.EntityKind, weight float64) int {
	key := entityKey{name: name, kind: kind}
	if id, ok := r.byKey[key]; ok {
		return id
	}

	id := len(r.nodes)
	r.nodes = append(r.nodes, common.Entity{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Weight: weight,
	})
	r.byKey[key] = id
	if _, ok := r.byName[name]; !ok {
		r.byName[name] = id
	}
	return id
}

// Lookup returns the id of the first entity registered under name, whatever
// its kind.
func (r *EntityRegistry) Lookup(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *EntityRegistry) Get(id int) (common.Entity, bool) {
	if id < 0 || id >= len(r.nodes) {
		return common.Entity{}, false
	}
	return r.nodes[id], true
}

func (r *EntityRegistry) Len() int {
	return len(r.nodes)
}

// Entities returns a copy of the nodes in discovery order.
func (r *EntityRegistry) Entities() []common.Entity {
	out := make([]common.Entity, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// FinalizeWeights sets every weight to max(base(kind), degree*0.5), where
// degree counts each edge once per endpoint it touches.
func (r *EntityRegistry) FinalizeWeights(edges []common.Relationship) error {
	if r.finalized {
		return ErrAlreadyFinalized
	}

	degree := make([]int, len(r.nodes))
	for _, e := range edges {
		if e.SourceID < 0 || e.SourceID >= len(degree) || e.TargetID < 0 || e.TargetID >= len(degree) {
			return fmt.Errorf("edge %s references unknown entity", e.ID)
		}
		degree[e.SourceID]++
		degree[e.TargetID]++
	}

	for i := range r.nodes {
		r.nodes[i].Weight = math.Max(r.nodes[i].Kind.BaseWeight(), float64(degree[i])*0.5)
	}
	r.finalized = true
	return nil
}

type edgeKey struct {
	source int
	target int
	kind   common.RelationKind
}

// EdgeRegistry deduplicates relations by (source, target, kind). Endpoints
// are resolved through the EntityRegistry by name.
type EdgeRegistry struct {
	entities *EntityRegistry
	edges    []common.Relationship
	seen     map[edgeKey]struct{}
}

func NewEdgeRegistry(entities *EntityRegistry) *EdgeRegistry {
	return &EdgeRegistry{
		entities: entities,
		seen:     make(map[edgeKey]struct{}),
	}
}

// Add stores the relation source -> target and reports whether a new edge was
// created. Unknown endpoints, self references and duplicates are ignored.
// PARENT_OF is stored as OWNS with the same direction; kinds whose direction
// is not significant are stored with the smaller id first.
func (r *EdgeRegistry) Add(source, target string, kind common.RelationKind) bool {
	sourceID, ok := r.entities.Lookup(source)
	if !ok {
		return false
	}
	targetID, ok := r.entities.Lookup(target)
	if !ok {
		return false
	}
	if sourceID == targetID {
		return false
	}

	if kind == common.RelationParentOf {
		kind = common.RelationOwns
	}
	if !kind.DirectionSignificant() && sourceID > targetID {
		sourceID, targetID = targetID, sourceID
	}

	key := edgeKey{source: sourceID, target: targetID, kind: kind}
	if _, ok := r.seen[key]; ok {
		return false
	}

	r.edges = append(r.edges, common.Relationship{
		ID:       fmt.Sprintf("e%d", len(r.edges)),
		SourceID: sourceID,
		TargetID: targetID,
		Kind:     kind,
	})
	r.seen[key] = struct{}{}
	return true
}

func (r *EdgeRegistry) Len() int {
	return len(r.edges)
}

// Edges returns a copy of the relations in insertion order.
func (r *EdgeRegistry) Edges() []common.Relationship {
	out := make([]common.Relationship, len(r.edges))
	copy(out, r.edges)
	return out
}
