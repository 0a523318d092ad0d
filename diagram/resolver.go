package diagram

import (
	"github.com/erraggy/oas2puml/internal/naming"
	"github.com/erraggy/oas2puml/oaserrors"
	"github.com/erraggy/oas2puml/parser"
)

const definitionsPrefix = "#/definitions/"

// Member is one field or relationship slot of a definition.
type Member struct {
	// Name is the property name or enum literal. It is empty for the single
	// slot of an array or map wrapper.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// DataType is the display type, e.g. "String", "Pet" or "Pet[]".
	DataType string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	// RefName is the referenced definition name. It is set only when the
	// definition exists, which makes the member relation-worthy.
	RefName string `json:"refName,omitempty" yaml:"refName,omitempty"`
	// OwnerName is the definition the member belongs to.
	OwnerName string `json:"ownerName" yaml:"ownerName"`
	// Owner is the schema whose required set decides Required. It is nil for
	// enum literals and wrapper slots.
	Owner *parser.ObjectSchema `json:"-" yaml:"-"`
}

// Required reports whether the member is listed in its owner's required set.
func (m Member) Required() bool {
	return m.Name != "" && m.Owner.IsRequired(m.Name)
}

// Resolver turns definitions into ordered member lists.
type Resolver struct {
	// Definitions are the document's named schemas.
	Definitions *parser.OrderedMap[parser.Schema]
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// NewResolver creates a Resolver over a document's definitions.
func NewResolver(doc *parser.Document) *Resolver {
	r := &Resolver{}
	if doc != nil {
		r.Definitions = doc.Definitions
	}
	return r
}

func (r *Resolver) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// Resolve returns the members of the definition called name.
//
// The only error is an *oaserrors.UnsupportedShapeError (or a circular
// *oaserrors.ReferenceError for self-composing allOf chains); either aborts
// the whole transformation.
func (r *Resolver) Resolve(name string, schema parser.Schema) ([]Member, error) {
	var members []Member
	var err error
	switch s := schema.(type) {
	case *parser.ObjectSchema:
		members, err = r.objectMembers(name, s)
	case *parser.ArraySchema:
		if ref := parser.ItemsRef(s); ref != nil {
			members = []Member{{RefName: r.known(name, ref), OwnerName: name}}
		}
	case *parser.ComposedSchema:
		members, err = r.composedMembers(name, s)
	case *parser.RefSchema:
		r.log().Debug("definition is a bare reference, no members", "schema", name, "ref", s.Ref)
	}
	if err != nil {
		return nil, err
	}
	r.log().Debug("resolved members", "schema", name, "members", len(members))
	return members, nil
}

// known returns the simple name of ref when it names a definition, and ""
// otherwise. An unknown target is not an error: the member is still emitted,
// only without a relation.
func (r *Resolver) known(owner string, ref *parser.RefSchema) string {
	target := ref.SimpleRef()
	if r.Definitions.Has(target) {
		return target
	}
	r.log().Debug("reference does not name a definition", "schema", owner, "ref", ref.Ref)
	return ""
}

func (r *Resolver) objectMembers(name string, obj *parser.ObjectSchema) ([]Member, error) {
	switch {
	case obj.HasProperties():
		return r.propertyMembers(name, obj.Properties, obj)
	case obj.AdditionalProperties != nil:
		if ref, ok := obj.AdditionalProperties.(*parser.RefSchema); ok {
			return []Member{{RefName: r.known(name, ref), OwnerName: name}}, nil
		}
		return nil, nil
	case obj.IsEnum():
		members := make([]Member, 0, len(obj.Enum))
		for _, literal := range obj.Enum {
			members = append(members, Member{Name: literal, OwnerName: name})
		}
		return members, nil
	}
	return nil, nil
}

// composedMembers merges the child's properties with every parent's, keeping
// the first definition of a shared property name. Required-ness is judged
// against the last parent.
func (r *Resolver) composedMembers(name string, cs *parser.ComposedSchema) ([]Member, error) {
	merged := parser.NewOrderedMap[parser.Schema]()
	if cs.Child != nil {
		merged = cs.Child.Properties.Clone()
	}
	if len(cs.Parents) == 0 {
		return r.propertyMembers(name, merged, cs.Child)
	}

	var owner *parser.ObjectSchema
	for _, parent := range cs.Parents {
		flat, err := r.flatten(parent.SimpleRef(), map[string]bool{name: true})
		if err != nil {
			return nil, err
		}
		if flat != nil {
			for prop, s := range flat.Properties.All() {
				merged.SetIfAbsent(prop, s)
			}
		}
		owner = flat
	}
	return r.propertyMembers(name, merged, owner)
}

// flatten returns the definition called name as a single object schema,
// folding nested compositions into one property map. The result of a
// composed definition has no required set. It returns nil for a missing
// definition or one without properties (an array, for instance).
func (r *Resolver) flatten(name string, visiting map[string]bool) (*parser.ObjectSchema, error) {
	schema, ok := r.Definitions.Get(name)
	if !ok {
		r.log().Debug("allOf parent does not name a definition", "ref", name)
		return nil, nil
	}
	if visiting[name] {
		return nil, &oaserrors.ReferenceError{
			Ref:        definitionsPrefix + name,
			RefType:    "definition",
			IsCircular: true,
			Message:    "allOf composes itself",
		}
	}
	visiting[name] = true
	defer delete(visiting, name)

	switch s := schema.(type) {
	case *parser.ObjectSchema:
		return s, nil
	case *parser.RefSchema:
		return r.flatten(s.SimpleRef(), visiting)
	case *parser.ComposedSchema:
		// A composed parent contributes properties but no required set.
		flat := &parser.ObjectSchema{Type: "object", Desc: s.Desc, Properties: parser.NewOrderedMap[parser.Schema]()}
		if s.Child != nil {
			flat.Properties = s.Child.Properties.Clone()
		}
		for _, parent := range s.Parents {
			p, err := r.flatten(parent.SimpleRef(), visiting)
			if err != nil {
				return nil, err
			}
			if p == nil {
				continue
			}
			for prop, ps := range p.Properties.All() {
				flat.Properties.SetIfAbsent(prop, ps)
			}
		}
		return flat, nil
	}
	return nil, nil
}

// propertyMembers converts a property map into members, one per property.
func (r *Resolver) propertyMembers(name string, props *parser.OrderedMap[parser.Schema], owner *parser.ObjectSchema) ([]Member, error) {
	members := make([]Member, 0, props.Len())
	for prop, schema := range props.All() {
		m := Member{Name: prop, OwnerName: name, Owner: owner}
		switch p := schema.(type) {
		case *parser.ArraySchema:
			switch items := p.Items.(type) {
			case *parser.RefSchema:
				m.DataType = naming.ToTitleCase(items.SimpleRef()) + "[]"
				m.RefName = r.known(name, items)
			case *parser.ObjectSchema:
				if items.Type != "string" {
					return nil, &oaserrors.UnsupportedShapeError{Schema: name, Property: prop, Shape: "array of " + typeName(items)}
				}
				m.DataType = naming.ToTitleCase(items.Type) + "[]"
			default:
				return nil, &oaserrors.UnsupportedShapeError{Schema: name, Property: prop, Shape: "array of " + shapeName(p.Items)}
			}
		case *parser.RefSchema:
			m.DataType = naming.ToTitleCase(p.SimpleRef())
			m.RefName = r.known(name, p)
		case *parser.ObjectSchema:
			t := p.Format
			if t == "" {
				t = typeName(p)
			}
			m.DataType = naming.ToTitleCase(t)
		default:
			return nil, &oaserrors.UnsupportedShapeError{Schema: name, Property: prop, Shape: shapeName(schema)}
		}
		members = append(members, m)
	}
	return members, nil
}

// typeName returns the declared type of obj, defaulting to "object".
func typeName(obj *parser.ObjectSchema) string {
	if obj.Type == "" {
		return "object"
	}
	return obj.Type
}

// shapeName describes a schema variant for error messages.
func shapeName(s parser.Schema) string {
	switch v := s.(type) {
	case nil:
		return "unspecified items"
	case *parser.ObjectSchema:
		return typeName(v)
	case *parser.ArraySchema:
		return "array"
	case *parser.ComposedSchema:
		return "inline allOf"
	case *parser.RefSchema:
		return "reference"
	}
	return "unknown"
}
