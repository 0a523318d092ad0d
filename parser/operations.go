package parser

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string
	Summary     string
	Description string
	OperationID string
	Parameters  []*Parameter
	// Responses maps status codes ("200", "404", "default") to responses in
	// document order.
	Responses *OrderedMap[*Response]
}

// Response describes a single response from an API operation.
type Response struct {
	Description string
	Schema      Schema
}
