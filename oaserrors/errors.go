package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a composition that refers back to itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrUnsupportedShape indicates a schema shape the diagram builder cannot express.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrRender indicates a diagram image could not be rendered.
	ErrRender = errors.New("render error")
)

// ParseError represents a failure to parse a Swagger document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType names the section the reference points into: "parameter", "response" or "definition"
	RefType string
	// IsCircular is true if the reference leads back to the schema that made it
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// UnsupportedShapeError reports a property or parameter whose shape has no
// member representation. It aborts the whole transformation: no partial
// diagram set is ever returned alongside it.
type UnsupportedShapeError struct {
	// Schema is the owning schema name, or the operation identifier for parameters
	Schema string
	// Property is the property or parameter name (empty for the schema itself)
	Property string
	// Shape describes what was found, e.g. "array of integer"
	Shape string
}

// Error returns a human-readable error message.
func (e *UnsupportedShapeError) Error() string {
	msg := "unsupported shape"
	if e.Schema != "" {
		msg += " in " + e.Schema
		if e.Property != "" {
			msg += "." + e.Property
		}
	} else if e.Property != "" {
		msg += " in " + e.Property
	}
	if e.Shape != "" {
		msg += ": " + e.Shape
	}
	return msg
}

// Unwrap returns nil as UnsupportedShapeError has no underlying cause.
func (e *UnsupportedShapeError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// RenderError represents a failure to turn PlantUML source into an image.
type RenderError struct {
	// Format is the requested image format ("svg" or "png")
	Format string
	// StatusCode is the HTTP status returned by the rendering server (0 if none)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RenderError) Error() string {
	msg := "render error"
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
