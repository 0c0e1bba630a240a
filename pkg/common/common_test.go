package common

import "testing"

func TestRelationKind_DirectionSignificant(t *testing.T) {
	tests := []struct {
		kind RelationKind
		want bool
	}{
		{RelationOwns, true},
		{RelationParentOf, true},
		{RelationFounded, true},
		{RelationKeyPersonOf, true},
		{RelationKind("PARTNER_OF"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.DirectionSignificant(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEntityKind_BaseWeight(t *testing.T) {
	if got := EntityKindCompany.BaseWeight(); got != 2.0 {
		t.Fatalf("expected 2.0 for company, got %v", got)
	}
	if got := EntityKindPerson.BaseWeight(); got != 1.0 {
		t.Fatalf("expected 1.0 for person, got %v", got)
	}
}
