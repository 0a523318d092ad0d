package parser

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InBody     = "body"
	InFormData = "formData"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	// Type, Format and Items apply to every location except body.
	Type   string
	Format string
	Items  Schema
	// Schema is the payload schema of a body parameter.
	Schema Schema
}
