package parser

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oas2puml/oaserrors"
)

const (
	parametersPrefix = "#/parameters/"
	responsesPrefix  = "#/responses/"
)

// decoder turns a yaml.Node tree into a Document. Working on the node tree
// rather than Go maps keeps every mapping in document order.
type decoder struct {
	path string
	log  Logger

	parameters *OrderedMap[*Parameter]
	responses  *OrderedMap[*Response]
}

// errorf builds a ParseError positioned at n.
func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	err := &oaserrors.ParseError{Path: d.path, Message: fmt.Sprintf(format, args...)}
	if n != nil {
		err.Line = n.Line
		err.Column = n.Column
	}
	return err
}

// stringField returns the scalar value of f[key] or a ParseError when the
// node is present but not a scalar.
func (d *decoder) stringField(f map[string]*yaml.Node, key string) (string, error) {
	n, ok := f[key]
	if !ok {
		return "", nil
	}
	s, ok := scalarValue(n)
	if !ok {
		return "", d.errorf(n, "%s must be a scalar", key)
	}
	return s, nil
}

// stringList decodes a sequence of scalars.
func (d *decoder) stringList(n *yaml.Node, what string) ([]string, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "%s must be a sequence", what)
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		s, ok := scalarValue(item)
		if !ok {
			return nil, d.errorf(item, "%s entries must be scalars", what)
		}
		out = append(out, s)
	}
	return out, nil
}

// document decodes the root node.
func (d *decoder) document(root *yaml.Node) (*Document, error) {
	n := deref(root)
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, d.errorf(n, "empty document")
		}
		n = deref(n.Content[0])
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "document root must be a mapping")
	}

	f := fields(n)
	version, err := d.stringField(f, "swagger")
	if err != nil {
		return nil, err
	}
	if version == "" {
		if oas, ok := scalarValue(f["openapi"]); ok && oas != "" {
			return nil, d.errorf(f["openapi"], "unsupported OpenAPI version %s: only Swagger 2.0 documents are supported", oas)
		}
		return nil, d.errorf(n, "missing swagger version field")
	}
	if version != "2.0" {
		return nil, d.errorf(f["swagger"], "unsupported swagger version %s: only 2.0 is supported", version)
	}

	doc := &Document{
		Swagger:     version,
		Definitions: NewOrderedMap[Schema](),
		Parameters:  NewOrderedMap[*Parameter](),
		Responses:   NewOrderedMap[*Response](),
		Paths:       NewOrderedMap[*PathItem](),
	}
	if doc.Host, err = d.stringField(f, "host"); err != nil {
		return nil, err
	}
	if doc.BasePath, err = d.stringField(f, "basePath"); err != nil {
		return nil, err
	}
	if info, ok := f["info"]; ok {
		if doc.Info, err = d.info(info); err != nil {
			return nil, err
		}
	}

	for name, node := range pairs(f["definitions"]) {
		s, err := d.schema(node)
		if err != nil {
			return nil, err
		}
		doc.Definitions.Set(name, s)
	}

	// Reusable parameters and responses are decoded before paths so that
	// operation references can be inlined.
	for name, node := range pairs(f["parameters"]) {
		p, err := d.parameterBody(node)
		if err != nil {
			return nil, err
		}
		doc.Parameters.Set(name, p)
	}
	for name, node := range pairs(f["responses"]) {
		r, err := d.responseBody(node)
		if err != nil {
			return nil, err
		}
		doc.Responses.Set(name, r)
	}
	d.parameters = doc.Parameters
	d.responses = doc.Responses

	for path, node := range pairs(f["paths"]) {
		if isExtensionKey(path) {
			continue
		}
		item, err := d.pathItem(node)
		if err != nil {
			return nil, err
		}
		doc.Paths.Set(path, item)
	}

	d.log.Debug("decoded document",
		"definitions", doc.Definitions.Len(),
		"paths", doc.Paths.Len())
	return doc, nil
}

func (d *decoder) info(n *yaml.Node) (*Info, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "info must be a mapping")
	}
	f := fields(n)
	info := &Info{}
	var err error
	if info.Title, err = d.stringField(f, "title"); err != nil {
		return nil, err
	}
	if info.Version, err = d.stringField(f, "version"); err != nil {
		return nil, err
	}
	if info.Description, err = d.stringField(f, "description"); err != nil {
		return nil, err
	}
	return info, nil
}

// schema decodes a schema node. Precedence: $ref, allOf, array, object.
func (d *decoder) schema(n *yaml.Node) (Schema, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "schema must be a mapping")
	}
	f := fields(n)

	if ref, ok := f["$ref"]; ok {
		s, ok := scalarValue(ref)
		if !ok || s == "" {
			return nil, d.errorf(ref, "$ref must be a non-empty string")
		}
		return &RefSchema{Ref: s}, nil
	}

	desc, err := d.stringField(f, "description")
	if err != nil {
		return nil, err
	}

	if allOf, ok := f["allOf"]; ok {
		return d.composed(n, allOf, desc)
	}

	typ, err := d.stringField(f, "type")
	if err != nil {
		return nil, err
	}
	items, hasItems := f["items"]
	if typ == "array" || hasItems {
		arr := &ArraySchema{Desc: desc}
		if hasItems && !isNull(items) {
			if arr.Items, err = d.schema(items); err != nil {
				return nil, err
			}
		}
		return arr, nil
	}

	return d.object(f, typ, desc)
}

// object decodes the object/primitive/enum form of a schema.
func (d *decoder) object(f map[string]*yaml.Node, typ, desc string) (*ObjectSchema, error) {
	obj := &ObjectSchema{Type: typ, Desc: desc}
	var err error
	if obj.Format, err = d.stringField(f, "format"); err != nil {
		return nil, err
	}

	if props, ok := f["properties"]; ok && !isNull(props) {
		if props.Kind != yaml.MappingNode {
			return nil, d.errorf(props, "properties must be a mapping")
		}
		obj.Properties = NewOrderedMap[Schema]()
		for name, node := range pairs(props) {
			s, err := d.schema(node)
			if err != nil {
				return nil, err
			}
			obj.Properties.Set(name, s)
		}
	}

	if obj.Required, err = d.stringList(f["required"], "required"); err != nil {
		return nil, err
	}

	// additionalProperties may also be a boolean, which carries no type.
	if ap, ok := f["additionalProperties"]; ok && deref(ap).Kind == yaml.MappingNode {
		if obj.AdditionalProperties, err = d.schema(ap); err != nil {
			return nil, err
		}
	}

	if enum, ok := f["enum"]; ok {
		if obj.Enum, err = d.stringList(enum, "enum"); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// composed decodes an allOf schema. Inline entries and sibling properties
// are folded into the child; the first declaration of a property wins.
func (d *decoder) composed(n, allOf *yaml.Node, desc string) (*ComposedSchema, error) {
	allOf = deref(allOf)
	if allOf.Kind != yaml.SequenceNode {
		return nil, d.errorf(allOf, "allOf must be a sequence")
	}

	cs := &ComposedSchema{Desc: desc}
	mergeChild := func(obj *ObjectSchema) {
		if cs.Child == nil {
			cs.Child = &ObjectSchema{Type: "object", Properties: NewOrderedMap[Schema]()}
		}
		for name, s := range obj.Properties.All() {
			cs.Child.Properties.SetIfAbsent(name, s)
		}
		for _, r := range obj.Required {
			if !cs.Child.IsRequired(r) {
				cs.Child.Required = append(cs.Child.Required, r)
			}
		}
		if cs.Child.Desc == "" {
			cs.Child.Desc = obj.Desc
		}
	}

	for _, entry := range allOf.Content {
		s, err := d.schema(entry)
		if err != nil {
			return nil, err
		}
		switch v := s.(type) {
		case *RefSchema:
			cs.Parents = append(cs.Parents, v)
		case *ObjectSchema:
			mergeChild(v)
		case *ComposedSchema:
			cs.Parents = append(cs.Parents, v.Parents...)
			if v.Child != nil {
				mergeChild(v.Child)
			}
		case *ArraySchema:
			d.log.Debug("ignoring array entry in allOf", "line", entry.Line)
		}
	}

	// Properties declared next to allOf belong to the child as well.
	f := fields(n)
	if _, ok := f["properties"]; ok {
		sibling, err := d.object(f, "object", "")
		if err != nil {
			return nil, err
		}
		mergeChild(sibling)
	}
	return cs, nil
}

func (d *decoder) pathItem(n *yaml.Node) (*PathItem, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "path item must be a mapping")
	}
	item := &PathItem{}
	for key, node := range pairs(n) {
		switch {
		case key == "parameters":
			params, err := d.parameterList(node)
			if err != nil {
				return nil, err
			}
			item.Parameters = params
		case key == "$ref":
			d.log.Debug("skipping path item $ref", "line", node.Line)
		case isExtensionKey(key):
		case !isMethod(key):
			d.log.Debug("skipping unknown path item field", "field", key, "line", node.Line)
		default:
			op, err := d.operation(node)
			if err != nil {
				return nil, err
			}
			item.setOperation(key, op)
		}
	}
	return item, nil
}

func (d *decoder) operation(n *yaml.Node) (*Operation, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "operation must be a mapping")
	}
	f := fields(n)
	op := &Operation{Responses: NewOrderedMap[*Response]()}
	var err error
	if op.Tags, err = d.stringList(f["tags"], "tags"); err != nil {
		return nil, err
	}
	if op.Summary, err = d.stringField(f, "summary"); err != nil {
		return nil, err
	}
	if op.Description, err = d.stringField(f, "description"); err != nil {
		return nil, err
	}
	if op.OperationID, err = d.stringField(f, "operationId"); err != nil {
		return nil, err
	}
	if op.Parameters, err = d.parameterList(f["parameters"]); err != nil {
		return nil, err
	}
	for code, node := range pairs(f["responses"]) {
		if isExtensionKey(code) {
			continue
		}
		r, err := d.response(node)
		if err != nil {
			return nil, err
		}
		op.Responses.Set(code, r)
	}
	return op, nil
}

func (d *decoder) parameterList(n *yaml.Node) ([]*Parameter, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "parameters must be a sequence")
	}
	out := make([]*Parameter, 0, len(n.Content))
	for _, entry := range n.Content {
		p, err := d.parameter(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// parameter decodes an operation parameter, inlining "#/parameters/" refs.
func (d *decoder) parameter(n *yaml.Node) (*Parameter, error) {
	ref, err := d.localRef(n, parametersPrefix, "parameter")
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return d.parameterBody(n)
	}
	p, ok := d.parameters.Get(ref)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: parametersPrefix + ref, RefType: "parameter", Message: "not found"}
	}
	return p, nil
}

func (d *decoder) parameterBody(n *yaml.Node) (*Parameter, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "parameter must be a mapping")
	}
	f := fields(n)
	p := &Parameter{}
	var err error
	if p.Name, err = d.stringField(f, "name"); err != nil {
		return nil, err
	}
	if p.In, err = d.stringField(f, "in"); err != nil {
		return nil, err
	}
	if p.Description, err = d.stringField(f, "description"); err != nil {
		return nil, err
	}
	if p.Type, err = d.stringField(f, "type"); err != nil {
		return nil, err
	}
	if p.Format, err = d.stringField(f, "format"); err != nil {
		return nil, err
	}
	if req, ok := f["required"]; ok {
		if p.Required, ok = boolValue(req); !ok {
			return nil, d.errorf(req, "required must be a boolean")
		}
	}
	if items, ok := f["items"]; ok && !isNull(items) {
		if p.Items, err = d.schema(items); err != nil {
			return nil, err
		}
	}
	if schema, ok := f["schema"]; ok && !isNull(schema) {
		if p.Schema, err = d.schema(schema); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// response decodes an operation response, inlining "#/responses/" refs.
func (d *decoder) response(n *yaml.Node) (*Response, error) {
	ref, err := d.localRef(n, responsesPrefix, "response")
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return d.responseBody(n)
	}
	r, ok := d.responses.Get(ref)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: responsesPrefix + ref, RefType: "response", Message: "not found"}
	}
	return r, nil
}

func (d *decoder) responseBody(n *yaml.Node) (*Response, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "response must be a mapping")
	}
	f := fields(n)
	r := &Response{}
	var err error
	if r.Description, err = d.stringField(f, "description"); err != nil {
		return nil, err
	}
	if schema, ok := f["schema"]; ok && !isNull(schema) {
		if r.Schema, err = d.schema(schema); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// localRef returns the component name referenced by n's $ref, or "" when n
// has no $ref. Only refs under prefix are accepted.
func (d *decoder) localRef(n *yaml.Node, prefix, refType string) (string, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return "", nil
	}
	refNode, ok := fields(n)["$ref"]
	if !ok {
		return "", nil
	}
	ref, ok := scalarValue(refNode)
	if !ok || ref == "" {
		return "", d.errorf(refNode, "$ref must be a non-empty string")
	}
	if !strings.HasPrefix(ref, prefix) {
		return "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: refType,
			Message: "only local " + prefix + " references are supported",
		}
	}
	return strings.TrimPrefix(ref, prefix), nil
}
