package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rel(source, target string) ClassRelation {
	return ClassRelation{Source: source, Target: target, Kind: Aggregation}
}

func TestDedupeTargetOnly(t *testing.T) {
	edges := []ClassRelation{
		rel("A", "Pet"),
		rel("B", "pet"),
		rel("A", "Error"),
		rel("C", "PET"),
	}
	got := Dedupe(edges, TargetOnly)
	assert.Equal(t, []ClassRelation{rel("A", "Pet"), rel("A", "Error")}, got)
}

func TestDedupeSourceAndTarget(t *testing.T) {
	edges := []ClassRelation{
		rel("Order", "Pet"),
		rel("Store", "Pet"),
		rel("order", "PET"),
		rel("Store", "Error"),
	}
	got := Dedupe(edges, SourceAndTarget)
	assert.Equal(t, []ClassRelation{rel("Order", "Pet"), rel("Store", "Pet"), rel("Store", "Error")}, got)
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	first := ClassRelation{Source: "A", Target: "B", Kind: Inheritance, FieldName: "first"}
	second := ClassRelation{Source: "A", Target: "B", Kind: Aggregation, FieldName: "second"}
	got := Dedupe([]ClassRelation{first, second}, SourceAndTarget)
	assert.Equal(t, []ClassRelation{first}, got)
}

func TestDedupeUniqueInputUnchanged(t *testing.T) {
	edges := []ClassRelation{rel("A", "B"), rel("B", "C"), rel("C", "A")}
	for _, mode := range []CompareMode{TargetOnly, SourceAndTarget} {
		t.Run(mode.String(), func(t *testing.T) {
			assert.Equal(t, edges, Dedupe(edges, mode))
		})
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	edges := []ClassRelation{rel("A", "B"), rel("a", "b"), rel("B", "C"), rel("A", "C")}
	for _, mode := range []CompareMode{TargetOnly, SourceAndTarget} {
		t.Run(mode.String(), func(t *testing.T) {
			once := Dedupe(edges, mode)
			assert.Equal(t, once, Dedupe(once, mode))
		})
	}
}

func TestDedupeEmptyFieldsNeverCollapse(t *testing.T) {
	edges := []ClassRelation{rel("A", ""), rel("A", ""), rel("", "B"), rel("", "B")}

	assert.Equal(t, edges, Dedupe(edges, SourceAndTarget))
	assert.Equal(t, []ClassRelation{rel("A", ""), rel("A", ""), rel("", "B")}, Dedupe(edges, TargetOnly))
}

func TestDedupeEmptyInput(t *testing.T) {
	got := Dedupe[ClassRelation](nil, TargetOnly)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDedupeDoesNotAliasInput(t *testing.T) {
	edges := []ClassRelation{rel("A", "B")}
	got := Dedupe(edges, TargetOnly)
	got[0].Target = "changed"
	assert.Equal(t, "B", edges[0].Target)
}

func TestDedupeEntityRelations(t *testing.T) {
	edges := []EntityRelation{
		{Source: "Order", Target: "Pet", SourceField: "pet"},
		{Source: "Order", Target: "Pet", SourceField: "pets"},
	}
	assert.Len(t, Dedupe(edges, SourceAndTarget), 1)
}

func TestCompareModeString(t *testing.T) {
	assert.Equal(t, "targetOnly", TargetOnly.String())
	assert.Equal(t, "sourceAndTarget", SourceAndTarget.String())
	assert.Equal(t, "unknown", CompareMode(42).String())
}
