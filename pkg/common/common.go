package common

// EntityKind classifies a node in the ownership graph.
type EntityKind string

const (
	EntityKindCompany EntityKind = "company"
	EntityKindPerson  EntityKind = "person"
)

// BaseWeight is the lower bound of an entity's final weight.
func (k EntityKind) BaseWeight() float64 {
	if k == EntityKindCompany {
		return 2.0
	}
	return 1.0
}

// RelationKind is the label of an edge.
type RelationKind string

const (
	RelationOwns        RelationKind = "OWNS"
	RelationParentOf    RelationKind = "PARENT_OF"
	RelationFounded     RelationKind = "FOUNDED"
	RelationKeyPersonOf RelationKind = "KEY_PERSON_OF"
)

// DirectionSignificant reports whether the discovered direction of an edge
// of this kind is kept. Every other kind is stored with the smaller entity
// id first.
func (k RelationKind) DirectionSignificant() bool {
	switch k {
	case RelationOwns, RelationParentOf, RelationFounded, RelationKeyPersonOf:
		return true
	}
	return false
}

// PersonRelation reports whether the related side of this kind is a person.
func (k RelationKind) PersonRelation() bool {
	return k == RelationFounded || k == RelationKeyPersonOf
}

// Graph is the node/edge set handed to rendering layers.
type Graph struct {
	Nodes []Entity       `json:"nodes"`
	Edges []Relationship `json:"edges"`
}

// Entity represents a company or a person. IDs are assigned sequentially
// from 0 within one traversal and carry no meaning across runs.
type Entity struct {
	ID     int        `json:"id"`
	Name   string     `json:"label"`
	Weight float64    `json:"weight"`
	Kind   EntityKind `json:"kind"`
}

// Relationship represents a typed, directed edge between two entities.
//
// ID is a display identifier ("e0", "e1", ...) in insertion order.
type Relationship struct {
	ID       string       `json:"id"`
	SourceID int          `json:"source_id"`
	TargetID int          `json:"target_id"`
	Kind     RelationKind `json:"label"`
}
