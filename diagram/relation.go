package diagram

import "github.com/erraggy/oas2puml/parser"

// RelationKind classifies a class diagram edge.
type RelationKind string

const (
	// Inheritance is an "is-a" edge, drawn --|>.
	Inheritance RelationKind = "inheritance"
	// Aggregation is a "has-a" edge, drawn o--.
	Aggregation RelationKind = "aggregation"
)

// Cardinality labels for class diagram edges.
const (
	CardinalityOneToMany  = "1..*"
	CardinalityNoneToMany = "0..*"
	CardinalityOneToOne   = "1..1"
	CardinalityNoneToOne  = "0..1"
)

// SuperClass returns the synthetic superclass label of a wrapper schema:
// "ArrayList[X]" for an array of X and "Map[X]" for an object whose
// additionalProperties is X. Any other schema has no superclass.
func SuperClass(schema parser.Schema) string {
	switch s := schema.(type) {
	case *parser.ArraySchema:
		if ref := parser.ItemsRef(s); ref != nil {
			return "ArrayList[" + ref.SimpleRef() + "]"
		}
	case *parser.ObjectSchema:
		if ref, ok := s.AdditionalProperties.(*parser.RefSchema); ok {
			return "Map[" + ref.SimpleRef() + "]"
		}
	}
	return ""
}

// relationKind is the kind of every edge owned by schema.
func relationKind(owner parser.Schema) RelationKind {
	if SuperClass(owner) != "" {
		return Inheritance
	}
	return Aggregation
}

// isPureEnum reports whether schema only enumerates literal values.
func isPureEnum(schema parser.Schema) bool {
	obj, ok := schema.(*parser.ObjectSchema)
	return ok && obj.IsEnum() && !obj.HasProperties() && obj.AdditionalProperties == nil
}

// description returns a schema's description, tolerating nil.
func description(schema parser.Schema) string {
	if schema == nil {
		return ""
	}
	return schema.Description()
}
