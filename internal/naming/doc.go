// Package naming provides the case conversion and case-insensitive
// comparison helpers shared by the diagram builders.
//
// Display names in diagrams are title-cased with [ToTitleCase]. Relation
// targets, sources and key-field names are compared with [EqualFold], which
// applies full Unicode case folding.
package naming
