// Package diagram turns a parsed Swagger document into diagram models.
//
// The pipeline is the same for every view:
//
//  1. [Resolver] walks each definition and produces its ordered [Member] list,
//     resolving references, arrays, allOf compositions, maps and enums.
//  2. A [Projection] converts members into view-specific members and infers
//     relation edges from every member that references another definition.
//  3. [Dedupe] collapses duplicate edges under one of two [CompareMode] rules.
//
// Two projections are provided. [ClassProjection] builds UML class diagrams
// and, from the document's operations, interface diagrams with methods,
// return types and error classes. [EntityProjection] builds
// entity-relationship diagrams with key fields split from regular fields.
//
// [Builder] runs the whole pipeline and returns a [ClassView] or an
// [EntityView]; either can be flattened into the [Properties] map consumed by
// the puml renderer.
//
// # Relation kind
//
// A class edge is an inheritance edge when the schema that owns the member is
// itself an array or map wrapper (see [SuperClass]), and an aggregation edge
// otherwise. The check is made on the owner, never on the target.
package diagram
