// Package puml renders diagram property maps as PlantUML source.
//
// The class view becomes class, enum and interface blocks followed by the
// relation lines; the entity view becomes entity blocks joined by
// crow's-foot relations.
//
//	view, _ := diagram.NewBuilder().Build(doc, diagram.TypeFull)
//	src, err := puml.Source(view.Properties())
//
// Names that are not plain identifiers, such as a joined error label
// "Error,NotFound", are quoted so PlantUML accepts them.
package puml
