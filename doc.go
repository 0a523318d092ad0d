// Package oas2puml turns Swagger 2.0 API descriptions into PlantUML diagrams.
//
// A document's schema definitions and operations are resolved into typed
// members and relations, then projected into one of two views:
//
//   - a class view: one class per definition plus one interface per API
//     tag, with inheritance and aggregation edges
//   - an entity-relationship view: one entity per definition, key fields
//     split from regular fields, edges flagged required and many
//
// # Packages
//
//   - parser: order-preserving Swagger 2.0 loader
//   - diagram: type resolution, relation inference, edge de-duplication and
//     both projections
//   - puml: PlantUML source rendering
//   - render: PlantUML server client for SVG/PNG images
//   - generator: the end-to-end pipeline with file output
//   - oaserrors: structured error types
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("swagger.yaml"),
//		generator.WithDiagramType(diagram.TypeFull),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("out"); err != nil {
//		log.Fatal(err)
//	}
//
// The command line tool lives in cmd/oas2puml:
//
//	oas2puml generate -o out --type entity swagger.yaml
//
// and "oas2puml mcp" serves the same pipeline as Model Context Protocol tools.
package oas2puml
