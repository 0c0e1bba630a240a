package graph

import "github.com/OFFIS-RIT/wikigraph/pkg/common"

// Relations maps relation kinds to related entity names. Kinds keep the order
// in which they were first added and names keep their insertion order.
type Relations struct {
	kinds []common.RelationKind
	names map[common.RelationKind][]string
}

// Add appends names under kind. Calls without names are ignored.
func (r *Relations) Add(kind common.RelationKind, names ...string) {
	if len(names) == 0 {
		return
	}
	if r.names == nil {
		r.names = make(map[common.RelationKind][]string)
	}
	if _, ok := r.names[kind]; !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.names[kind] = append(r.names[kind], names...)
}

func (r Relations) Kinds() []common.RelationKind {
	return r.kinds
}

func (r Relations) Names(kind common.RelationKind) []string {
	return r.names[kind]
}

// Len returns the total number of names across all kinds.
func (r Relations) Len() int {
	n := 0
	for _, names := range r.names {
		n += len(names)
	}
	return n
}

// Each calls fn for every (kind, name) pair in order.
func (r Relations) Each(fn func(kind common.RelationKind, name string)) {
	for _, kind := range r.kinds {
		for _, name := range r.names[kind] {
			fn(kind, name)
		}
	}
}
