package mcpserver

import (
	"context"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/parser"
)

type parseInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The Swagger 2.0 document to parse"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N definition names"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of definition names to return"`
}

type parseOutput struct {
	Version         string   `json:"version"`
	Title           string   `json:"title"`
	APIVersion      string   `json:"api_version,omitempty"`
	Description     string   `json:"description,omitempty"`
	Host            string   `json:"host,omitempty"`
	BasePath        string   `json:"base_path,omitempty"`
	Format          string   `json:"format"`
	PathCount       int      `json:"path_count"`
	OperationCount  int      `json:"operation_count"`
	DefinitionCount int      `json:"definition_count"`
	Interfaces      []string `json:"interfaces,omitempty"`
	Definitions     []string `json:"definitions,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	doc := result.Document
	output := parseOutput{
		Version:         result.Version,
		Title:           doc.Title(),
		APIVersion:      doc.Version(),
		Host:            doc.Host,
		BasePath:        doc.BasePath,
		Format:          string(result.SourceFormat),
		PathCount:       result.Stats.PathCount,
		OperationCount:  result.Stats.OperationCount,
		DefinitionCount: result.Stats.SchemaCount,
		Interfaces:      interfaceNames(doc),
		Definitions:     paginate(doc.Definitions.Keys(), input.Offset, input.Limit),
	}
	if doc.Info != nil {
		output.Description = doc.Info.Description
	}
	return nil, output, nil
}

// interfaceNames lists the distinct interface names of the document's
// operations in path order.
func interfaceNames(doc *parser.Document) []string {
	var names []string
	for uri, item := range doc.Paths.All() {
		for _, op := range item.Operations() {
			if name := diagram.InterfaceName(op, uri); !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}
