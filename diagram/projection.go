package diagram

import "github.com/erraggy/oas2puml/parser"

// Projection turns resolved members into one diagram view.
//
// D is the view's diagram type, M its member type and R its relation type.
// The traversal over definitions is shared; a projection only decides how
// diagrams, members and edges are shaped.
type Projection[D, M, R any] interface {
	// CreateDiagram assembles the diagram of definition name.
	CreateDiagram(name string, schema parser.Schema, members []M, relations []R) D
	// CreateMember converts a resolved member.
	CreateMember(m Member) M
	// AddRelation appends the edge for a relation-worthy member to relations
	// and returns the result. owner is the definition the member belongs to.
	AddRelation(m Member, member M, owner parser.Schema, relations []R) []R
}

// Project runs p over every definition in document order.
func Project[D, M, R any](r *Resolver, p Projection[D, M, R]) ([]D, error) {
	diagrams := make([]D, 0, r.Definitions.Len())
	for name, schema := range r.Definitions.All() {
		resolved, err := r.Resolve(name, schema)
		if err != nil {
			return nil, err
		}

		members := make([]M, 0, len(resolved))
		relations := make([]R, 0)
		for _, m := range resolved {
			member := p.CreateMember(m)
			members = append(members, member)
			if m.RefName != "" {
				relations = p.AddRelation(m, member, schema, relations)
			}
		}
		diagrams = append(diagrams, p.CreateDiagram(name, schema, members, relations))
	}
	return diagrams, nil
}
