// Package oaserrors provides structured error types for oas2puml.
//
// Import path: github.com/erraggy/oas2puml/oaserrors
//
// Callers can use [errors.Is] and [errors.As] to tell apart a broken input
// document, a schema shape the diagram builder cannot express, a bad
// configuration, and a failed image render.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [ReferenceError]: unresolvable local references and circular compositions
//   - [UnsupportedShapeError]: a schema or parameter shape with no diagram form
//   - [ConfigError]: invalid configuration or input options
//   - [RenderError]: PlantUML image rendering failures
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrUnsupportedShape]: Matches any [UnsupportedShapeError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrRender]: Matches any [RenderError]
//
// # Usage Examples
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("swagger.yaml"))
//	if errors.Is(err, oaserrors.ErrUnsupportedShape) {
//	    // The document uses a property shape that cannot be diagrammed
//	}
//
//	var shapeErr *oaserrors.UnsupportedShapeError
//	if errors.As(err, &shapeErr) {
//	    fmt.Printf("cannot diagram %s.%s\n", shapeErr.Schema, shapeErr.Property)
//	}
package oaserrors
