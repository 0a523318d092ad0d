package parser

import (
	"slices"
	"strings"
)

// Schema is a node of a Swagger schema graph.
//
// The set of implementations is closed: [*ObjectSchema], [*ArraySchema],
// [*ComposedSchema] and [*RefSchema]. Consumers dispatch with a type switch.
type Schema interface {
	// Description returns the schema's description text, if any.
	Description() string

	schemaNode()
}

// ObjectSchema is an object, primitive or enumeration schema.
//
// Primitive properties are ObjectSchemas with a non-object Type and no
// Properties. A schema with Enum values and no properties is an enumeration.
type ObjectSchema struct {
	Type   string
	Format string
	Desc   string
	// Properties are kept in document order.
	Properties *OrderedMap[Schema]
	Required   []string
	// AdditionalProperties is set when the schema declares a schema-valued
	// additionalProperties (a map of that schema).
	AdditionalProperties Schema
	// Enum holds the literal values rendered as strings.
	Enum []string
}

// Description implements Schema.
func (s *ObjectSchema) Description() string { return s.Desc }

// IsRequired reports whether name is listed in the schema's required set.
func (s *ObjectSchema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// HasProperties reports whether the schema declares at least one property.
func (s *ObjectSchema) HasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}

// IsEnum reports whether the schema carries enumeration values.
func (s *ObjectSchema) IsEnum() bool {
	return s != nil && len(s.Enum) > 0
}

// ArraySchema is a "type: array" schema.
type ArraySchema struct {
	Desc  string
	Items Schema
}

// Description implements Schema.
func (s *ArraySchema) Description() string { return s.Desc }

// ComposedSchema is an allOf schema.
//
// Every $ref entry of allOf is a parent, in listed order. Inline allOf
// entries and properties declared next to allOf are merged into Child.
type ComposedSchema struct {
	Desc    string
	Child   *ObjectSchema
	Parents []*RefSchema
}

// Description implements Schema.
func (s *ComposedSchema) Description() string { return s.Desc }

// RefSchema is a $ref to another schema.
type RefSchema struct {
	Ref string
}

// Description implements Schema.
func (s *RefSchema) Description() string { return "" }

// SimpleRef returns the referenced definition name: the last path segment of
// a JSON pointer such as "#/definitions/Pet", or the ref itself when it is
// not a pointer.
func (s *RefSchema) SimpleRef() string {
	if s == nil {
		return ""
	}
	if !strings.Contains(s.Ref, "#") {
		return s.Ref
	}
	return s.Ref[strings.LastIndex(s.Ref, "/")+1:]
}

func (*ObjectSchema) schemaNode()   {}
func (*ArraySchema) schemaNode()    {}
func (*ComposedSchema) schemaNode() {}
func (*RefSchema) schemaNode()      {}

// ItemsRef returns the $ref of an array schema's items, or nil when s is not
// an array of references.
func ItemsRef(s Schema) *RefSchema {
	arr, ok := s.(*ArraySchema)
	if !ok {
		return nil
	}
	ref, _ := arr.Items.(*RefSchema)
	return ref
}
