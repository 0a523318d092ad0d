package diagram

import (
	"strings"

	"github.com/erraggy/oas2puml/internal/naming"
	"github.com/erraggy/oas2puml/parser"
)

// EntityDiagram is the ER entity of one definition.
type EntityDiagram struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	KeyFields   []EntityField    `json:"keyFields" yaml:"keyFields"`
	Fields      []EntityField    `json:"fields" yaml:"fields"`
	Relations   []EntityRelation `json:"relations" yaml:"relations"`
}

// EntityField is one attribute of an entity.
type EntityField struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	DataType string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	// EntityName is the referenced definition, if any.
	EntityName string `json:"entityName,omitempty" yaml:"entityName,omitempty"`
	Required   bool   `json:"required" yaml:"required"`
}

// EntityRelation is a directed ER edge.
type EntityRelation struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	// Required is true when the originating field is required.
	Required bool `json:"required" yaml:"required"`
	// Many is true when the originating field is a collection.
	Many        bool   `json:"many" yaml:"many"`
	SourceField string `json:"sourceField,omitempty" yaml:"sourceField,omitempty"`
}

// EdgeSource implements Edge.
func (r EntityRelation) EdgeSource() string { return r.Source }

// EdgeTarget implements Edge.
func (r EntityRelation) EdgeTarget() string { return r.Target }

// EntityProjection builds entity-relationship diagrams. Every
// relation-worthy field yields its own edge; fields pointing at the same
// entity are told apart by SourceField.
type EntityProjection struct{}

var _ Projection[EntityDiagram, EntityField, EntityRelation] = EntityProjection{}

// CreateDiagram implements Projection. Fields are split into key fields and
// regular fields, and relations are stamped with name as their source.
func (EntityProjection) CreateDiagram(name string, schema parser.Schema, members []EntityField, relations []EntityRelation) EntityDiagram {
	d := EntityDiagram{
		Name:        name,
		Description: description(schema),
		KeyFields:   []EntityField{},
		Fields:      []EntityField{},
		Relations:   relations,
	}
	for _, f := range members {
		if IsKeyField(name, f.Name) {
			d.KeyFields = append(d.KeyFields, f)
		} else {
			d.Fields = append(d.Fields, f)
		}
	}
	for i := range d.Relations {
		d.Relations[i].Source = name
	}
	return d
}

// CreateMember implements Projection.
func (EntityProjection) CreateMember(m Member) EntityField {
	return EntityField{
		Name:       m.Name,
		DataType:   m.DataType,
		EntityName: m.RefName,
		Required:   m.Required(),
	}
}

// AddRelation implements Projection. Every ref field adds its own edge, so
// two fields naming the same entity yield two relations; unlike class
// relations they are not de-duplicated by target.
func (EntityProjection) AddRelation(_ Member, field EntityField, _ parser.Schema, relations []EntityRelation) []EntityRelation {
	return append(relations, EntityRelation{
		Target:      field.EntityName,
		Required:    field.Required,
		Many:        strings.HasSuffix(field.DataType, "[]"),
		SourceField: field.Name,
	})
}

// IsKeyField reports whether field names the identifier of entity: "id",
// "_id" or "key", or the entity name followed by "id", "_id", "key" or
// "_key". Matching ignores case.
func IsKeyField(entity, field string) bool {
	if field == "" {
		return false
	}
	for _, key := range []string{"id", "_id", "key"} {
		if naming.EqualFold(field, key) {
			return true
		}
	}
	for _, suffix := range []string{"id", "_id", "key", "_key"} {
		if naming.EqualFold(field, entity+suffix) {
			return true
		}
	}
	return false
}
