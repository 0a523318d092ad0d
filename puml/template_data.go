package puml

import "github.com/erraggy/oas2puml/diagram"

// ClassData is the data passed to the class view template.
type ClassData struct {
	Title      string
	Version    string
	Classes    []diagram.ClassDiagram
	Interfaces []InterfaceGroup
	Relations  []diagram.ClassRelation
}

// InterfaceGroup is one interface block. Operations sharing an interface
// name contribute their methods to the same block.
type InterfaceGroup struct {
	Name    string
	Methods []diagram.MethodDefinition
}

// EntityData is the data passed to the entity view template.
type EntityData struct {
	Title     string
	Version   string
	Entities  []diagram.EntityDiagram
	Relations []diagram.EntityRelation
}

// groupInterfaces merges interfaces by name, keeping first-seen order.
func groupInterfaces(diagrams []diagram.InterfaceDiagram) []InterfaceGroup {
	groups := make([]InterfaceGroup, 0, len(diagrams))
	index := make(map[string]int, len(diagrams))
	for _, d := range diagrams {
		i, ok := index[d.Name]
		if !ok {
			i = len(groups)
			index[d.Name] = i
			groups = append(groups, InterfaceGroup{Name: d.Name})
		}
		groups[i].Methods = append(groups[i].Methods, d.Methods...)
	}
	return groups
}
