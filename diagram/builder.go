package diagram

import (
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/oas2puml/parser"
)

// Builder runs the diagram pipeline over a parsed document.
type Builder struct {
	// IncludeCardinality labels class diagram edges with 1..* or 0..*.
	// Default: true
	IncludeCardinality bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// NewBuilder creates a Builder with default settings.
func NewBuilder() *Builder {
	return &Builder{IncludeCardinality: true}
}

func (b *Builder) log() parser.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return parser.NopLogger{}
}

func (b *Builder) resolver(doc *parser.Document) *Resolver {
	r := NewResolver(doc)
	r.Logger = b.Logger
	return r
}

// ClassView is the class/interface projection of a document.
type ClassView struct {
	Title   string
	Version string
	// ModelOnly is set when interfaces were not generated.
	ModelOnly         bool
	ClassDiagrams     []ClassDiagram
	InterfaceDiagrams []InterfaceDiagram
	// ClassRelations holds every class and interface edge, de-duplicated by
	// source and target.
	ClassRelations []ClassRelation
}

// EntityView is the entity-relationship projection of a document.
type EntityView struct {
	Title          string
	Version        string
	EntityDiagrams []EntityDiagram
	// EntityRelations concatenates the relations of every entity in order.
	EntityRelations []EntityRelation
}

// View is implemented by ClassView and EntityView.
type View interface {
	Properties() Properties
}

// Build produces the view selected by typ.
func (b *Builder) Build(doc *parser.Document, typ Type) (View, error) {
	switch typ {
	case TypeFull, TypeModel:
		view, err := b.ClassView(doc, typ == TypeModel)
		if err != nil {
			return nil, err
		}
		return view, nil
	case TypeEntity:
		view, err := b.EntityView(doc)
		if err != nil {
			return nil, err
		}
		return view, nil
	}
	// Names such as "" or "Entity" are normalized first.
	parsed, err := ParseType(string(typ))
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	return b.Build(doc, parsed)
}

var errNilDocument = errors.New("diagram: nil document")

// ClassView builds class diagrams for every definition and, unless
// modelOnly is set, interface diagrams for every operation.
func (b *Builder) ClassView(doc *parser.Document, modelOnly bool) (*ClassView, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	start := time.Now()
	r := b.resolver(doc)

	classes, err := Project(r, ClassProjection{IncludeCardinality: b.IncludeCardinality})
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}

	view := &ClassView{
		Title:         doc.Title(),
		Version:       doc.Version(),
		ModelOnly:     modelOnly,
		ClassDiagrams: classes,
	}

	var relations []ClassRelation
	for _, c := range classes {
		relations = append(relations, c.Relations...)
	}
	if !modelOnly {
		ib := &interfaceBuilder{resolver: r}
		if view.InterfaceDiagrams, err = ib.diagrams(doc.Paths); err != nil {
			return nil, fmt.Errorf("diagram: %w", err)
		}
		for _, d := range view.InterfaceDiagrams {
			relations = append(relations, d.Relations...)
		}
	}
	view.ClassRelations = Dedupe(relations, SourceAndTarget)

	b.log().Info("built class view",
		"classes", len(view.ClassDiagrams),
		"interfaces", len(view.InterfaceDiagrams),
		"relations", len(view.ClassRelations),
		"elapsed", time.Since(start))
	return view, nil
}

// EntityView builds one entity per definition.
func (b *Builder) EntityView(doc *parser.Document) (*EntityView, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	start := time.Now()
	entities, err := Project(b.resolver(doc), EntityProjection{})
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}

	view := &EntityView{
		Title:           doc.Title(),
		Version:         doc.Version(),
		EntityDiagrams:  entities,
		EntityRelations: []EntityRelation{},
	}
	for _, e := range entities {
		view.EntityRelations = append(view.EntityRelations, e.Relations...)
	}

	b.log().Info("built entity view",
		"entities", len(view.EntityDiagrams),
		"relations", len(view.EntityRelations),
		"elapsed", time.Since(start))
	return view, nil
}
