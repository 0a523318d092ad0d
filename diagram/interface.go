package diagram

import (
	"strconv"
	"strings"

	"github.com/erraggy/oas2puml/internal/httputil"
	"github.com/erraggy/oas2puml/internal/naming"
	"github.com/erraggy/oas2puml/oaserrors"
	"github.com/erraggy/oas2puml/parser"
)

// InterfaceDiagram is the UML interface generated for one operation.
type InterfaceDiagram struct {
	Name string `json:"interfaceName" yaml:"interfaceName"`
	// ErrorClass is the comma-joined list of error response schemas.
	ErrorClass string             `json:"errorClass,omitempty" yaml:"errorClass,omitempty"`
	Methods    []MethodDefinition `json:"methods" yaml:"methods"`
	Relations  []ClassRelation    `json:"childClass" yaml:"childClass"`
}

// MethodDefinition is a single interface method.
type MethodDefinition struct {
	// Signature is "operationId(Type name,Type name)".
	Signature  string `json:"methodDefinition" yaml:"methodDefinition"`
	ReturnType string `json:"returnType" yaml:"returnType"`
}

// interfaceBuilder derives interface diagrams from operations.
type interfaceBuilder struct {
	resolver *Resolver
}

// diagrams returns one interface diagram per operation, walking paths in
// document order and operations in method order.
func (b *interfaceBuilder) diagrams(paths *parser.OrderedMap[*parser.PathItem]) ([]InterfaceDiagram, error) {
	var out []InterfaceDiagram
	for uri, item := range paths.All() {
		for method, op := range item.Operations() {
			d, err := b.diagram(uri, method, op)
			if err != nil {
				return nil, err
			}
			b.resolver.log().Debug("built interface", "path", uri, "method", method, "interface", d.Name)
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *interfaceBuilder) diagram(uri, method string, op *parser.Operation) (InterfaceDiagram, error) {
	params, err := methodParameters(method, op)
	if err != nil {
		return InterfaceDiagram{}, err
	}

	d := InterfaceDiagram{
		Name:       InterfaceName(op, uri),
		ErrorClass: errorClassLabel(op),
		Methods: []MethodDefinition{{
			Signature:  operationName(method, op) + "(" + params + ")",
			ReturnType: returnType(method, op),
		}},
	}

	relations := b.responseRelations(op)
	relations = append(relations, b.inputRelations(op)...)
	if d.ErrorClass != "" {
		relations = append(relations, ClassRelation{Target: d.ErrorClass, Kind: Inheritance})
	}
	d.Relations = Dedupe(relations, TargetOnly)
	for i := range d.Relations {
		d.Relations[i].Source = d.Name
	}
	return d, nil
}

// InterfaceName names the interface of an operation: the first tag with its
// spaces removed, else the operation id, else the path without braces or
// backslashes; title-cased and suffixed with "Api".
func InterfaceName(op *parser.Operation, uri string) string {
	var name string
	switch {
	case len(op.Tags) > 0:
		name = naming.StripSpaces(op.Tags[0])
	case op.OperationID != "":
		name = op.OperationID
	default:
		name = strings.NewReplacer("{", "", "}", "", `\`, "").Replace(uri)
	}
	return naming.ToTitleCase(name) + "Api"
}

// operationName is the method name used in signatures. Operations without
// an id fall back to their HTTP method.
func operationName(method string, op *parser.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return method
}

// returnType derives the method's return type from its success responses.
// When several success responses qualify, the last one wins.
func returnType(method string, op *parser.Operation) string {
	result := "void"
	for code, resp := range op.Responses.All() {
		if ok, _ := httputil.ClassifyResponseCode(code); !ok || resp == nil {
			continue
		}
		switch s := resp.Schema.(type) {
		case *parser.RefSchema:
			result = naming.ToTitleCase(s.SimpleRef())
		case *parser.ArraySchema:
			if ref := parser.ItemsRef(s); ref != nil {
				result = naming.ToTitleCase(ref.SimpleRef()) + "[]"
			}
		case *parser.ObjectSchema:
			if (s.Type == "" || s.Type == "object") && s.AdditionalProperties == nil {
				result = naming.ToTitleCase(operationName(method, op)) + "Generated"
			}
		}
	}
	return result
}

// errorClassLabel joins the referenced schemas of failure responses with
// ",". A name already contained in the label is not added again.
func errorClassLabel(op *parser.Operation) string {
	var label strings.Builder
	for code, resp := range op.Responses.All() {
		if _, failure := httputil.ClassifyResponseCode(code); !failure || resp == nil {
			continue
		}
		ref, ok := resp.Schema.(*parser.RefSchema)
		if !ok {
			continue
		}
		name := ref.SimpleRef()
		if strings.Contains(label.String(), name) {
			continue
		}
		if label.Len() > 0 {
			label.WriteString(",")
		}
		label.WriteString(name)
	}
	return label.String()
}

// responseRelations links success responses that reference definitions.
func (b *interfaceBuilder) responseRelations(op *parser.Operation) []ClassRelation {
	var relations []ClassRelation
	for code, resp := range op.Responses.All() {
		if ok, _ := httputil.ClassifyResponseCode(code); !ok || resp == nil {
			continue
		}
		if target := b.schemaTarget(resp.Schema); target != "" {
			relations = append(relations, ClassRelation{Target: target, Kind: Aggregation})
		}
	}
	return relations
}

// inputRelations links body parameters that reference definitions.
func (b *interfaceBuilder) inputRelations(op *parser.Operation) []ClassRelation {
	var relations []ClassRelation
	for _, param := range op.Parameters {
		if param.In != parser.InBody {
			continue
		}
		if target := b.schemaTarget(param.Schema); target != "" {
			relations = append(relations, ClassRelation{Target: target, Kind: Aggregation})
		}
	}
	return relations
}

// schemaTarget returns the definition referenced by a $ref or an array of
// $ref, provided it exists.
func (b *interfaceBuilder) schemaTarget(schema parser.Schema) string {
	ref, ok := schema.(*parser.RefSchema)
	if !ok {
		ref = parser.ItemsRef(schema)
	}
	if ref == nil {
		return ""
	}
	return b.resolver.known("", ref)
}

// methodParameters renders the comma-joined parameter list of a signature.
// Header parameters are left out.
func methodParameters(method string, op *parser.Operation) (string, error) {
	descriptors := make([]string, 0, len(op.Parameters))
	for _, param := range op.Parameters {
		typ, err := parameterType(param)
		if err != nil {
			err.Schema = operationName(method, op)
			return "", err
		}
		if typ == "" {
			continue
		}
		descriptors = append(descriptors, typ+" "+param.Name)
	}
	return strings.Join(descriptors, ","), nil
}

// parameterType returns the display type of a parameter, or "" for
// parameters that are not shown.
func parameterType(param *parser.Parameter) (string, *oaserrors.UnsupportedShapeError) {
	switch param.In {
	case parser.InPath, parser.InFormData:
		return primitiveType(param.Type), nil
	case parser.InQuery:
		switch items := param.Items.(type) {
		case *parser.RefSchema:
			return naming.ToTitleCase(items.SimpleRef()) + "[]", nil
		case *parser.ObjectSchema:
			if items.Type == "string" {
				return naming.ToTitleCase(items.Type) + "[]", nil
			}
		}
		return primitiveType(param.Type), nil
	case parser.InBody:
		switch s := param.Schema.(type) {
		case *parser.RefSchema:
			return naming.ToTitleCase(s.SimpleRef()), nil
		case *parser.ArraySchema:
			switch items := s.Items.(type) {
			case *parser.RefSchema:
				return naming.ToTitleCase(items.SimpleRef()) + "[]", nil
			case *parser.ObjectSchema:
				return naming.ToTitleCase(typeName(items)) + "[]", nil
			}
			return "Object[]", nil
		}
		return "Object", nil
	case parser.InHeader:
		return "", nil
	}
	return "", &oaserrors.UnsupportedShapeError{Property: param.Name, Shape: "parameter in " + strconv.Quote(param.In)}
}

// primitiveType title-cases a parameter type, defaulting to "Object".
func primitiveType(t string) string {
	if t == "" {
		return "Object"
	}
	return naming.ToTitleCase(t)
}
