// Package parser loads Swagger 2.0 documents into an order-preserving model.
//
// Documents can be read from files, http(s) URLs, readers or byte slices, in
// YAML or JSON. Decoding walks the yaml.Node tree directly so definitions,
// properties, paths and responses keep the order they were written in; the
// diagrams built from a document are therefore deterministic.
//
// Schemas are modelled as a closed set of variants:
//
//   - [ObjectSchema]: objects, primitives, maps (additionalProperties) and enums
//   - [ArraySchema]: arrays with their item schema
//   - [ComposedSchema]: allOf compositions split into $ref parents and an inline child
//   - [RefSchema]: references to named definitions
//
// Local "#/parameters/..." and "#/responses/..." references on operations are
// inlined while decoding. Schema references are kept as [RefSchema] values and
// resolved by the diagram builders.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("swagger.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for name := range result.Document.Definitions.All() {
//		fmt.Println(name)
//	}
package parser
