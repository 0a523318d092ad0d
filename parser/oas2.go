package parser

// Document is a parsed Swagger 2.0 document.
type Document struct {
	Swagger  string
	Info     *Info
	Host     string
	BasePath string
	// Definitions maps schema names to schemas in document order.
	Definitions *OrderedMap[Schema]
	// Parameters and Responses hold the reusable components that operations
	// reference with "#/parameters/..." and "#/responses/...".
	Parameters *OrderedMap[*Parameter]
	Responses  *OrderedMap[*Response]
	// Paths maps path templates to path items in document order.
	Paths *OrderedMap[*PathItem]
}

// Info is the document's info object.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Title returns the document title, or "" when there is no info object.
func (d *Document) Title() string {
	if d == nil || d.Info == nil {
		return ""
	}
	return d.Info.Title
}

// Version returns the API version, or "" when there is no info object.
func (d *Document) Version() string {
	if d == nil || d.Info == nil {
		return ""
	}
	return d.Info.Version
}

// Definition looks up a named schema.
func (d *Document) Definition(name string) (Schema, bool) {
	if d == nil {
		return nil, false
	}
	return d.Definitions.Get(name)
}
