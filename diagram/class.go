package diagram

import (
	"github.com/erraggy/oas2puml/internal/naming"
	"github.com/erraggy/oas2puml/parser"
)

// ClassDiagram is the UML class of one definition.
type ClassDiagram struct {
	Name        string          `json:"className" yaml:"className"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Members     []ClassMember   `json:"fields" yaml:"fields"`
	Relations   []ClassRelation `json:"childClass" yaml:"childClass"`
	// IsModelClass is false for pure enumerations.
	IsModelClass bool `json:"isClass" yaml:"isClass"`
	// SuperClass is the synthetic "ArrayList[X]" or "Map[X]" label of a
	// wrapper definition.
	SuperClass string `json:"superClass,omitempty" yaml:"superClass,omitempty"`
}

// ClassMember is one attribute of a class.
type ClassMember struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	DataType string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	// ClassName is the referenced definition, if any.
	ClassName   string `json:"className,omitempty" yaml:"className,omitempty"`
	Cardinality string `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
}

// ClassRelation is a directed class or interface edge.
type ClassRelation struct {
	Source      string       `json:"sourceClass" yaml:"sourceClass"`
	Target      string       `json:"targetClass" yaml:"targetClass"`
	Kind        RelationKind `json:"kind" yaml:"kind"`
	Cardinality string       `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
	// FieldName is the member the edge originates from. It is empty for
	// wrapper slots and interface edges.
	FieldName string `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
}

// EdgeSource implements Edge.
func (r ClassRelation) EdgeSource() string { return r.Source }

// EdgeTarget implements Edge.
func (r ClassRelation) EdgeTarget() string { return r.Target }

// IsInheritance reports whether the edge is an inheritance edge.
func (r ClassRelation) IsInheritance() bool { return r.Kind == Inheritance }

// IsAggregation reports whether the edge is an aggregation edge.
func (r ClassRelation) IsAggregation() bool { return r.Kind == Aggregation }

// ClassProjection builds class diagrams.
type ClassProjection struct {
	// IncludeCardinality labels named reference members and their edges with
	// 1..* (required) or 0..* (optional).
	IncludeCardinality bool
}

var _ Projection[ClassDiagram, ClassMember, ClassRelation] = ClassProjection{}

// CreateDiagram implements Projection. Relations are stamped with name as
// their source.
func (p ClassProjection) CreateDiagram(name string, schema parser.Schema, members []ClassMember, relations []ClassRelation) ClassDiagram {
	for i := range relations {
		relations[i].Source = name
	}
	return ClassDiagram{
		Name:         name,
		Description:  description(schema),
		Members:      members,
		Relations:    relations,
		IsModelClass: !isPureEnum(schema),
		SuperClass:   SuperClass(schema),
	}
}

// CreateMember implements Projection.
func (p ClassProjection) CreateMember(m Member) ClassMember {
	member := ClassMember{Name: m.Name, DataType: m.DataType, ClassName: m.RefName}
	// Wrapper slots have no name and never carry a cardinality.
	if p.IncludeCardinality && m.RefName != "" && m.Name != "" {
		member.Cardinality = CardinalityNoneToMany
		if m.Required() {
			member.Cardinality = CardinalityOneToMany
		}
	}
	return member
}

// AddRelation implements Projection. Only the first edge from an owner to a
// given target is kept.
func (p ClassProjection) AddRelation(m Member, member ClassMember, owner parser.Schema, relations []ClassRelation) []ClassRelation {
	for _, existing := range relations {
		if naming.EqualFold(existing.Target, member.ClassName) {
			return relations
		}
	}
	return append(relations, ClassRelation{
		Target:      member.ClassName,
		Kind:        relationKind(owner),
		Cardinality: member.Cardinality,
		FieldName:   m.Name,
	})
}
